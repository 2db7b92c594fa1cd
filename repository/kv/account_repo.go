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

type accountRepository struct {
	store  kv.Store
	keys   keys
	logger *zap.Logger
}

// NewAccountRepository creates the KV-backed account registry.
func NewAccountRepository(store kv.Store, prefix string, logger *zap.Logger) repository.AccountRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &accountRepository{
		store:  store,
		keys:   newKeys(prefix),
		logger: logger,
	}
}

func (r *accountRepository) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := getJSON(ctx, r.store, r.keys.users(), &users)
	switch {
	case err == nil:
		return users, nil
	case errors.Is(err, kv.ErrKeyNotFound):
		return nil, nil
	case errors.Is(err, ErrCorruptRecord):
		appLogger.WithRequestID(ctx, r.logger).Warn("user registry unreadable, starting empty", zap.Error(err))
		return nil, nil
	default:
		return nil, err
	}
}

func (r *accountRepository) SaveUsers(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	return putJSON(ctx, r.store, r.keys.users(), users)
}

func (r *accountRepository) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := getJSON(ctx, r.store, r.keys.currentUser(), &user)
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, kv.ErrKeyNotFound):
		return nil, domain.ErrSessionNotFound
	case errors.Is(err, ErrCorruptRecord):
		// Unreadable pointer means logged out; drop it so the next read
		// does not hit the same record again.
		appLogger.WithRequestID(ctx, r.logger).Warn("session pointer unreadable, clearing", zap.Error(err))
		_ = r.store.Delete(ctx, r.keys.currentUser())
		return nil, domain.ErrSessionNotFound
	default:
		return nil, err
	}
}

func (r *accountRepository) SetCurrentUser(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	return putJSON(ctx, r.store, r.keys.currentUser(), user)
}

func (r *accountRepository) ClearCurrentUser(ctx context.Context) error {
	return r.store.Delete(ctx, r.keys.currentUser())
}
