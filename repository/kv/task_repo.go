package kv

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/internal/infrastructure/kv"
	appLogger "github.com/focusflow/backend/pkg/logger"
	"github.com/focusflow/backend/repository"
)

type taskRepository struct {
	store  kv.Store
	keys   keys
	logger *zap.Logger
}

// NewTaskRepository creates the KV-backed task store.
func NewTaskRepository(store kv.Store, prefix string, logger *zap.Logger) repository.TaskRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &taskRepository{
		store:  store,
		keys:   newKeys(prefix),
		logger: logger,
	}
}

func (r *taskRepository) List(ctx context.Context, userID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := getJSON(ctx, r.store, r.keys.tasks(userID), &tasks)
	switch {
	case err == nil:
		return tasks, nil
	case errors.Is(err, kv.ErrKeyNotFound):
		return r.migrateLegacy(ctx, userID)
	case errors.Is(err, ErrCorruptRecord):
		appLogger.WithRequestID(ctx, r.logger).Warn("task list unreadable, starting empty",
			zap.String("user_id", userID), zap.Error(err))
		return nil, nil
	default:
		return nil, err
	}
}

func (r *taskRepository) Replace(ctx context.Context, userID string, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return putJSON(ctx, r.store, r.keys.tasks(userID), tasks)
}

// migrateLegacy moves the pre-account unscoped task list into the user's
// namespace. One-time and irreversible: the legacy key is removed once its
// contents are persisted under the scoped key.
func (r *taskRepository) migrateLegacy(ctx context.Context, userID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := getJSON(ctx, r.store, legacyTasksKey, &tasks)
	switch {
	case errors.Is(err, kv.ErrKeyNotFound):
		return nil, nil
	case errors.Is(err, ErrCorruptRecord):
		appLogger.WithRequestID(ctx, r.logger).Warn("legacy task data unreadable, skipping migration", zap.Error(err))
		return nil, nil
	case err != nil:
		return nil, err
	}

	if err := r.Replace(ctx, userID, tasks); err != nil {
		return nil, err
	}
	if err := r.store.Delete(ctx, legacyTasksKey); err != nil {
		return nil, err
	}
	r.logger.Info("migrated legacy task data",
		zap.String("user_id", userID), zap.Int("tasks", len(tasks)))
	return tasks, nil
}
