package repository

import (
	"context"

	"github.com/focusflow/backend/domain"
)

// AccountRepository is the durable registry of users plus the single
// current-session pointer.
type AccountRepository interface {
	Users(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error

	// CurrentUser returns domain.ErrSessionNotFound when logged out.
	CurrentUser(ctx context.Context) (*domain.User, error)
	SetCurrentUser(ctx context.Context, user *domain.User) error
	ClearCurrentUser(ctx context.Context) error
}
