// Package auth implements the account store: registration, credential
// verification and the persisted single-session pointer.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/pkg/passhash"
	"github.com/focusflow/backend/repository"
)

type UseCase struct {
	accounts repository.AccountRepository
	hasher   passhash.Hasher
	logger   *zap.Logger
	now      func() time.Time
}

func New(accounts repository.AccountRepository, hasher passhash.Hasher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = passhash.SHA256Hasher{}
	}
	return &UseCase{
		accounts: accounts,
		hasher:   hasher,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// Register creates an account, persists it and makes it the current session.
// The email must be unused across the registry (compared in normalized form).
func (uc *UseCase) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidPayload
	}
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, domain.ErrInvalidPayload
	}

	users, err := uc.accounts.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].HasEmail(normalized) {
			return nil, domain.ErrEmailInUse
		}
	}

	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "hashing failed", err)
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     normalized,
		PassHash:  hash,
		CreatedAt: uc.now(),
	}

	users = append(users, user)
	if err := uc.accounts.SaveUsers(ctx, users); err != nil {
		return nil, err
	}
	if err := uc.accounts.SetCurrentUser(ctx, &user); err != nil {
		return nil, err
	}

	uc.logger.Info("account registered", zap.String("user_id", user.ID))
	return &user, nil
}

// Authenticate verifies credentials and makes the matched user the current
// session. Unknown email and wrong password fail identically so callers
// cannot probe which accounts exist. The session pointer is untouched on
// failure.
func (uc *UseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	normalized := domain.NormalizeEmail(email)

	users, err := uc.accounts.Users(ctx)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	for i := range users {
		if users[i].HasEmail(normalized) {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !uc.hasher.Verify(password, user.PassHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.accounts.SetCurrentUser(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("session started", zap.String("user_id", user.ID))
	return user, nil
}

// EndSession clears the session pointer only; account and task data stay
// persisted.
func (uc *UseCase) EndSession(ctx context.Context) error {
	return uc.accounts.ClearCurrentUser(ctx)
}

// CurrentSession returns the active user, or domain.ErrSessionNotFound when
// logged out. This is the sole gate for protected views.
func (uc *UseCase) CurrentSession(ctx context.Context) (*domain.User, error) {
	return uc.accounts.CurrentUser(ctx)
}

// FindUser looks a user up by id in the registry.
func (uc *UseCase) FindUser(ctx context.Context, id string) (*domain.User, error) {
	users, err := uc.accounts.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}
