package focus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

// Status is a point-in-time snapshot of a user's focus session.
type Status struct {
	TaskID           string `json:"taskId"`
	State            State  `json:"state"`
	DurationSeconds  int    `json:"durationSeconds"`
	RemainingSeconds int    `json:"remainingSeconds"`
}

type session struct {
	taskID    string
	timer     *Timer
	finalized bool
}

// Manager owns at most one live focus session per user. A background sweep
// finalizes sessions whose countdown reached zero, so the focus-session
// counter increments exactly once even when no client is polling.
type Manager struct {
	tasks    repository.TaskRepository
	stats    repository.StatsRepository
	logger   *zap.Logger
	duration time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session

	cron *cron.Cron
}

func NewManager(tasks repository.TaskRepository, stats repository.StatsRepository, duration, sweepInterval time.Duration, logger *zap.Logger) *Manager {
	if duration <= 0 {
		duration = 1500 * time.Second
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		tasks:    tasks,
		stats:    stats,
		logger:   logger,
		duration: duration,
		now:      time.Now,
		sessions: make(map[string]*session),
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(sweepInterval.Seconds()))
	_, _ = m.cron.AddFunc(schedule, m.sweep)

	return m
}

// WithClock overrides the time source. Intended for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	if now != nil {
		m.now = now
	}
	return m
}

// Start launches the sweep scheduler.
func (m *Manager) Start() {
	m.cron.Start()
	m.logger.Info("focus sweep started")
}

// Stop gracefully stops the scheduler.
func (m *Manager) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	m.logger.Info("focus sweep stopped")
}

// ActiveCount returns the number of sessions not yet finalized.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, s := range m.sessions {
		if !s.finalized {
			count++
		}
	}
	return count
}

// StartSession begins a countdown against one of the user's tasks. A session
// still running or paused blocks a new one; a finished session is replaced.
func (m *Manager) StartSession(ctx context.Context, userID, taskID string) (*Status, error) {
	tasks, err := m.tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range tasks {
		if tasks[i].ID == taskID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrTaskNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[userID]; ok && !existing.finalized {
		return nil, domain.ErrFocusActive
	}

	s := &session{
		taskID: taskID,
		timer:  NewTimer(m.duration),
	}
	now := m.now()
	s.timer.Start(now)
	m.sessions[userID] = s

	m.logger.Info("focus session started",
		zap.String("user_id", userID), zap.String("task_id", taskID))
	return m.statusLocked(s, now), nil
}

// PauseSession freezes the countdown.
func (m *Manager) PauseSession(userID string) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, domain.ErrFocusNotFound
	}
	now := m.now()
	if !s.timer.Pause(now) {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "session is not running", nil)
	}
	return m.statusLocked(s, now), nil
}

// ResumeSession continues a paused countdown, preserving elapsed time.
func (m *Manager) ResumeSession(userID string) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, domain.ErrFocusNotFound
	}
	now := m.now()
	if !s.timer.Resume(now) {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "session is not paused", nil)
	}
	return m.statusLocked(s, now), nil
}

// StopSession aborts the countdown and finalizes it like a natural finish:
// the focus-session counter goes up by one. Stopping an already-completed
// session discards it without counting again.
func (m *Manager) StopSession(ctx context.Context, userID string) (*Status, error) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrFocusNotFound
	}
	now := m.now()
	stopped := s.timer.Stop()
	finalize := stopped && !s.finalized
	if finalize {
		s.finalized = true
	}
	status := m.statusLocked(s, now)
	delete(m.sessions, userID)
	m.mu.Unlock()

	if finalize {
		if err := m.recordCompletion(ctx, userID); err != nil {
			return nil, err
		}
	}
	return status, nil
}

// SessionStatus reports the current countdown value. A completed-and-read
// terminal status stays available until stopped or replaced.
func (m *Manager) SessionStatus(userID string) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, domain.ErrFocusNotFound
	}
	return m.statusLocked(s, m.now()), nil
}

// sweep finalizes expired sessions. Runs on the cron cadence.
func (m *Manager) sweep() {
	now := m.now()

	m.mu.Lock()
	var done []string
	for userID, s := range m.sessions {
		if !s.finalized && s.timer.Expired(now) {
			s.timer.Complete()
			s.finalized = true
			done = append(done, userID)
		}
	}
	m.mu.Unlock()

	for _, userID := range done {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := m.recordCompletion(ctx, userID); err != nil {
			m.logger.Error("failed to record focus completion",
				zap.String("user_id", userID), zap.Error(err))
		}
		cancel()
	}
}

// recordCompletion increments the user's focus-session counter. Callers
// guard against double finalization, so the increment happens exactly once
// per session.
func (m *Manager) recordCompletion(ctx context.Context, userID string) error {
	stats, err := m.stats.Get(ctx, userID)
	if err != nil {
		return err
	}
	stats.FocusSessions++
	if err := m.stats.Save(ctx, userID, stats); err != nil {
		return err
	}
	m.logger.Info("focus session recorded",
		zap.String("user_id", userID), zap.Int("total", stats.FocusSessions))
	return nil
}

func (m *Manager) statusLocked(s *session, now time.Time) *Status {
	return &Status{
		TaskID:           s.taskID,
		State:            s.timer.State(),
		DurationSeconds:  int(s.timer.Duration().Seconds()),
		RemainingSeconds: int(s.timer.Remaining(now).Seconds()),
	}
}
