package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/focusflow/backend/internal/infrastructure/kv"
)

// FocusTracker reports how many focus sessions are currently live.
type FocusTracker interface {
	ActiveCount() int
}

// WorkerHealth reports whether a background worker is running.
type WorkerHealth interface {
	Running() bool
}

// Monitor periodically probes the store and background workers so the
// health endpoint answers without touching them on the request path.
type Monitor struct {
	store    kv.Store
	focus    FocusTracker
	reminder WorkerHealth

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(store kv.Store, focus FocusTracker, reminder WorkerHealth, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		focus:    focus,
		reminder: reminder,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Store:     m.checkStore(),
		LastCheck: time.Now(),
	}
	if m.reminder != nil {
		status.ReminderWorker = m.reminder.Running()
	}
	if m.focus != nil {
		status.ActiveFocus = m.focus.ActiveCount()
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkStore() bool {
	if m.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.store.Ping(ctx); err != nil {
		m.logger.Warn("store health check failed", zap.Error(err))
		return false
	}
	return true
}
