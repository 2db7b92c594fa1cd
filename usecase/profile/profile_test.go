package profile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	kvInfra "github.com/focusflow/backend/internal/infrastructure/kv"
	"github.com/focusflow/backend/repository"
	kvRepo "github.com/focusflow/backend/repository/kv"
)

type fixture struct {
	uc       *UseCase
	accounts repository.AccountRepository
	tasks    repository.TaskRepository
	stats    repository.StatsRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := kvInfra.OpenBolt(filepath.Join(t.TempDir(), "test.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	accounts := kvRepo.NewAccountRepository(store, "", zap.NewNop())
	tasks := kvRepo.NewTaskRepository(store, "", zap.NewNop())
	stats := kvRepo.NewStatsRepository(store, "", zap.NewNop())

	return &fixture{
		uc:       New(accounts, tasks, stats, zap.NewNop()),
		accounts: accounts,
		tasks:    tasks,
		stats:    stats,
	}
}

func (f *fixture) seedUser(t *testing.T, id string) {
	t.Helper()
	err := f.accounts.SaveUsers(context.Background(), []domain.User{
		{ID: id, Name: "Ana", Email: id + "@example.com", PassHash: "secret-hash"},
	})
	require.NoError(t, err)
}

func TestSummaryHidesPassHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")

	summary, err := f.uc.Summary(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", summary.User.ID)
	require.Empty(t, summary.User.PassHash)

	// the stored record is untouched
	users, err := f.accounts.Users(ctx)
	require.NoError(t, err)
	require.Equal(t, "secret-hash", users[0].PassHash)
}

func TestSummaryCompletionRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")

	require.NoError(t, f.tasks.Replace(ctx, "u1", []domain.Task{
		{ID: "t1", Title: "a", Completed: true},
		{ID: "t2", Title: "b", Completed: true},
		{ID: "t3", Title: "c"},
	}))

	summary, err := f.uc.Summary(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 67, summary.CompletionRate)
}

func TestSummaryEmptyListIsZeroRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")

	summary, err := f.uc.Summary(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, summary.CompletionRate)
	require.Zero(t, summary.Stats.CompletedCount)
	require.Zero(t, summary.Stats.FocusSessions)
}

func TestSummaryIncludesStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1")

	require.NoError(t, f.stats.Save(ctx, "u1", &domain.Stats{
		CompletedCount: 4,
		StreakDays:     2,
		FocusSessions:  7,
	}))

	summary, err := f.uc.Summary(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 4, summary.Stats.CompletedCount)
	require.Equal(t, 2, summary.Stats.StreakDays)
	require.Equal(t, 7, summary.Stats.FocusSessions)
}

func TestSummaryUnknownUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.uc.Summary(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
