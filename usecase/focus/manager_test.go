package focus

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	kvInfra "github.com/focusflow/backend/internal/infrastructure/kv"
	"github.com/focusflow/backend/repository"
	kvRepo "github.com/focusflow/backend/repository/kv"
)

type managerFixture struct {
	manager *Manager
	tasks   repository.TaskRepository
	stats   repository.StatsRepository
	clock   *fakeClock
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time          { return c.current }
func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	store, err := kvInfra.OpenBolt(filepath.Join(t.TempDir(), "test.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tasks := kvRepo.NewTaskRepository(store, "", zap.NewNop())
	stats := kvRepo.NewStatsRepository(store, "", zap.NewNop())
	clock := &fakeClock{current: time.Unix(1700000000, 0)}

	manager := NewManager(tasks, stats, 1500*time.Second, time.Second, zap.NewNop())
	manager.WithClock(clock.Now)

	return &managerFixture{manager: manager, tasks: tasks, stats: stats, clock: clock}
}

func (f *managerFixture) seedTask(t *testing.T, userID, taskID string) {
	t.Helper()
	require.NoError(t, f.tasks.Replace(context.Background(), userID, []domain.Task{
		{ID: taskID, Title: "deep work", Category: domain.CategoryWork, Priority: domain.PriorityMid},
	}))
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")

	status, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", status.TaskID)
	require.Equal(t, StateRunning, status.State)
	require.Equal(t, 1500, status.DurationSeconds)
	require.Equal(t, 1500, status.RemainingSeconds)
	require.Equal(t, 1, f.manager.ActiveCount())
}

func TestStartSessionUnknownTask(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)

	_, err := f.manager.StartSession(ctx, "u1", "missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStartSessionBlockedWhileActive(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")

	_, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)

	_, err = f.manager.StartSession(ctx, "u1", "t1")
	require.ErrorIs(t, err, domain.ErrFocusActive)

	// paused still counts as active
	_, err = f.manager.PauseSession("u1")
	require.NoError(t, err)
	_, err = f.manager.StartSession(ctx, "u1", "t1")
	require.ErrorIs(t, err, domain.ErrFocusActive)
}

func TestPauseResumeArithmetic(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")

	_, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)

	f.clock.Advance(100 * time.Second)
	status, err := f.manager.PauseSession("u1")
	require.NoError(t, err)
	require.Equal(t, StatePaused, status.State)
	require.Equal(t, 1400, status.RemainingSeconds)

	// remaining time holds while paused
	f.clock.Advance(time.Hour)
	status, err = f.manager.SessionStatus("u1")
	require.NoError(t, err)
	require.Equal(t, 1400, status.RemainingSeconds)

	status, err = f.manager.ResumeSession("u1")
	require.NoError(t, err)
	require.Equal(t, StateRunning, status.State)

	f.clock.Advance(50 * time.Second)
	status, err = f.manager.SessionStatus("u1")
	require.NoError(t, err)
	require.Equal(t, 1350, status.RemainingSeconds)
}

func TestPauseResumeInvalidState(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")

	_, err := f.manager.PauseSession("u1")
	require.ErrorIs(t, err, domain.ErrFocusNotFound)
	_, err = f.manager.ResumeSession("u1")
	require.ErrorIs(t, err, domain.ErrFocusNotFound)

	_, err = f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)

	// resuming a running session is rejected
	_, err = f.manager.ResumeSession("u1")
	require.Error(t, err)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSweepRecordsCompletionOnce(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")

	_, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)

	f.clock.Advance(1500 * time.Second)
	f.manager.sweep()
	f.manager.sweep()

	stats, err := f.stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 1, stats.FocusSessions)

	// the finished session stays visible until stopped
	status, err := f.manager.SessionStatus("u1")
	require.NoError(t, err)
	require.Equal(t, StateCompleted, status.State)
	require.Zero(t, status.RemainingSeconds)
	require.Zero(t, f.manager.ActiveCount())
}

func TestStopRecordsCompletion(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")

	_, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)

	f.clock.Advance(300 * time.Second)
	status, err := f.manager.StopSession(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, StateStopped, status.State)

	stats, err := f.stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 1, stats.FocusSessions)

	_, err = f.manager.SessionStatus("u1")
	require.ErrorIs(t, err, domain.ErrFocusNotFound)
}

func TestStopAfterSweepDoesNotDoubleCount(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")

	_, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)

	f.clock.Advance(1500 * time.Second)
	f.manager.sweep()

	_, err = f.manager.StopSession(ctx, "u1")
	require.NoError(t, err)

	stats, err := f.stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 1, stats.FocusSessions)
}

func TestNewSessionAfterFinish(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")

	_, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)

	f.clock.Advance(1500 * time.Second)
	f.manager.sweep()

	// a finalized session no longer blocks a new one
	status, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)
	require.Equal(t, StateRunning, status.State)
	require.Equal(t, 1500, status.RemainingSeconds)
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	ctx := context.Background()
	f := newManagerFixture(t)
	f.seedTask(t, "u1", "t1")
	f.seedTask(t, "u2", "t2")

	_, err := f.manager.StartSession(ctx, "u1", "t1")
	require.NoError(t, err)
	_, err = f.manager.StartSession(ctx, "u2", "t2")
	require.NoError(t, err)
	require.Equal(t, 2, f.manager.ActiveCount())

	_, err = f.manager.StopSession(ctx, "u1")
	require.NoError(t, err)

	status, err := f.manager.SessionStatus("u2")
	require.NoError(t, err)
	require.Equal(t, StateRunning, status.State)
}
