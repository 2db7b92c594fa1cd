// Package httpcontext bridges fasthttp's request context into a stdlib
// context carrying a deadline and a request id.
package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/focusflow/backend/pkg/logger"
)

// Adapter stamps each request with an id and a per-request deadline.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach returns a deadline-bound context for the request. The request id is
// taken from the X-Request-ID header when the caller supplied one, minted
// otherwise, and always echoed back on the response.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	id := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, id)
	ctx.Response.Header.Set("X-Request-ID", id)

	return stdCtx, cancel
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if ctx != nil {
		if header := strings.TrimSpace(string(ctx.Request.Header.Peek("X-Request-ID"))); header != "" {
			return header
		}
	}
	return uuid.NewString()
}
