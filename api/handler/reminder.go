package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/focusflow/backend/internal/services/reminder"
	"github.com/focusflow/backend/pkg/httpcontext"
)

type ReminderHandler struct {
	baseHandler
	worker *reminder.Worker
}

func NewReminderHandler(worker *reminder.Worker, adapter *httpcontext.Adapter, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		worker:      worker,
	}
}

// @Summary Currently surfaced reminder, if any
// @Tags reminders
// @Router /api/v1/reminders/active [get]
func (h *ReminderHandler) Active(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}
	// Returns data:null when nothing is due; absence is not an error.
	h.respondSuccess(ctx, http.StatusOK, h.worker.Active())
}

// @Summary Dismiss the surfaced reminder
// @Tags reminders
// @Router /api/v1/reminders/dismiss [post]
func (h *ReminderHandler) Dismiss(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}
	h.worker.Dismiss()
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
