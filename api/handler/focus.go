package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/focusflow/backend/pkg/httpcontext"
	focusUC "github.com/focusflow/backend/usecase/focus"
)

type FocusHandler struct {
	baseHandler
	manager *focusUC.Manager
}

func NewFocusHandler(manager *focusUC.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) *FocusHandler {
	return &FocusHandler{
		baseHandler: newBaseHandler(adapter, logger),
		manager:     manager,
	}
}

// @Summary Start a focus session for a task
// @Tags focus
// @Router /api/v1/focus/{taskId}/start [post]
func (h *FocusHandler) Start(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID, _ := ctx.UserValue("taskId").(string)
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.manager.StartSession(stdCtx, userID, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, status)
}

// @Summary Pause the running focus session
// @Tags focus
// @Router /api/v1/focus/pause [post]
func (h *FocusHandler) Pause(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	status, err := h.manager.PauseSession(userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Resume a paused focus session
// @Tags focus
// @Router /api/v1/focus/resume [post]
func (h *FocusHandler) Resume(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	status, err := h.manager.ResumeSession(userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Stop the focus session (finalizes like completion)
// @Tags focus
// @Router /api/v1/focus/stop [post]
func (h *FocusHandler) Stop(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.manager.StopSession(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Current focus session status
// @Tags focus
// @Router /api/v1/focus [get]
func (h *FocusHandler) Status(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	status, err := h.manager.SessionStatus(userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}
