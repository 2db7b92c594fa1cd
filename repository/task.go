package repository

import (
	"context"

	"github.com/focusflow/backend/domain"
)

// TaskRepository stores each user's full task list as one record. There is
// no partial-update primitive: mutations read the list, replace one element
// and write the whole list back.
type TaskRepository interface {
	List(ctx context.Context, userID string) ([]domain.Task, error)
	Replace(ctx context.Context, userID string, tasks []domain.Task) error
}
