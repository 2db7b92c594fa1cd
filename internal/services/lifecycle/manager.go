// Package lifecycle coordinates ordered teardown of the app's long-lived
// components: the HTTP server, the focus sweep, the reminder worker, the
// health monitor and the store.
package lifecycle

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StopFunc is a graceful stop callback for one component.
type StopFunc func(ctx context.Context) error

type hook struct {
	name string
	stop StopFunc
}

// Manager runs registered stop hooks in reverse registration order, so the
// outermost component (the HTTP server) goes down first and the store last.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	hooks []hook
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
	}
}

// Register adds a stop hook under a component name.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, stop: stop})
}

// RegisterCloser registers a plain io.Closer, such as the KV store.
func (m *Manager) RegisterCloser(name string, closer io.Closer) {
	if closer == nil {
		return
	}
	m.Register(name, func(context.Context) error {
		return closer.Close()
	})
}

// Shutdown runs every hook in reverse order under one shared deadline.
// A failing hook is logged and joined into the result but never blocks the
// hooks behind it.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result error
	for i := len(m.hooks) - 1; i >= 0; i-- {
		h := m.hooks[i]
		started := time.Now()
		if err := h.stop(ctx); err != nil {
			m.logger.Error("component stop failed",
				zap.String("component", h.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Info("component stopped",
			zap.String("component", h.name),
			zap.Duration("took", time.Since(started)))
	}
	return result
}

// Listen invokes cancel on the first SIGTERM or SIGINT. A second signal
// aborts the process immediately, skipping the graceful path.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()

		sig = <-sigCh
		m.logger.Warn("second signal, aborting", zap.String("signal", sig.String()))
		os.Exit(1)
	}()
}
