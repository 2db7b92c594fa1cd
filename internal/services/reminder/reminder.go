// Package reminder implements the background poll that surfaces due task
// reminders. It is a stateless scan, not a scheduler: nothing about "already
// shown" survives the process, so a restart during the trailing window shows
// the reminder again.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

type Worker struct {
	accounts repository.AccountRepository
	tasks    repository.TaskRepository
	logger   *zap.Logger
	window   time.Duration
	now      func() time.Time

	mu          sync.RWMutex
	active      *domain.Task
	dismissedID string
	running     bool

	cron *cron.Cron
}

func NewWorker(accounts repository.AccountRepository, tasks repository.TaskRepository, interval, window time.Duration, logger *zap.Logger) *Worker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if window <= 0 {
		window = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Worker{
		accounts: accounts,
		tasks:    tasks,
		logger:   logger,
		window:   window,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = w.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		w.Poll(ctx)
	})

	return w
}

// WithClock overrides the time source. Intended for tests.
func (w *Worker) WithClock(now func() time.Time) *Worker {
	if now != nil {
		w.now = now
	}
	return w
}

// Start launches the poll scheduler.
func (w *Worker) Start() {
	w.cron.Start()
	w.mu.Lock()
	w.running = true
	w.mu.Unlock()
	w.logger.Info("reminder worker started")
}

// Stop gracefully stops the scheduler.
func (w *Worker) Stop(ctx context.Context) {
	stopCtx := w.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	w.logger.Info("reminder worker stopped")
}

// Running reports whether the scheduler is active.
func (w *Worker) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Poll scans the current session user's tasks and surfaces the first one
// whose reminder fired within the trailing window. With no active session
// the surfaced reminder is cleared.
func (w *Worker) Poll(ctx context.Context) {
	user, err := w.accounts.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			w.logger.Warn("reminder poll failed", zap.Error(err))
		}
		w.setActive(nil)
		return
	}

	tasks, err := w.tasks.List(ctx, user.ID)
	if err != nil {
		w.logger.Warn("reminder poll failed",
			zap.String("user_id", user.ID), zap.Error(err))
		return
	}

	now := w.now()
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range tasks {
		t := &tasks[i]
		if !t.ReminderDue(now, w.window) || t.ID == w.dismissedID {
			continue
		}
		if w.active == nil || w.active.ID != t.ID {
			w.logger.Info("reminder surfaced",
				zap.String("user_id", user.ID), zap.String("task_id", t.ID))
		}
		w.active = t
		return
	}
	w.active = nil
}

// Active returns the surfaced reminder, or nil.
func (w *Worker) Active() *domain.Task {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// Dismiss hides the surfaced reminder for the rest of the process lifetime.
func (w *Worker) Dismiss() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active != nil {
		w.dismissedID = w.active.ID
	}
	w.active = nil
}

func (w *Worker) setActive(t *domain.Task) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = t
}
