package profile

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/repository"
)

// Summary is the profile view: the user, their counters and the completion
// rate derived from the live task list.
type Summary struct {
	User           domain.User  `json:"user"`
	Stats          domain.Stats `json:"stats"`
	CompletionRate int          `json:"completionRate"`
}

type UseCase struct {
	accounts repository.AccountRepository
	tasks    repository.TaskRepository
	stats    repository.StatsRepository
	logger   *zap.Logger
}

func New(accounts repository.AccountRepository, tasks repository.TaskRepository, stats repository.StatsRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		accounts: accounts,
		tasks:    tasks,
		stats:    stats,
		logger:   logger,
	}
}

func (uc *UseCase) Summary(ctx context.Context, userID string) (*Summary, error) {
	users, err := uc.accounts.Users(ctx)
	if err != nil {
		return nil, err
	}
	var user *domain.User
	for i := range users {
		if users[i].ID == userID {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	stats, err := uc.stats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		User:  *user,
		Stats: *stats,
	}
	summary.User.PassHash = ""

	if len(tasks) > 0 {
		completed := 0
		for i := range tasks {
			if tasks[i].Completed {
				completed++
			}
		}
		summary.CompletionRate = int(math.Round(float64(completed) / float64(len(tasks)) * 100))
	}
	return summary, nil
}
