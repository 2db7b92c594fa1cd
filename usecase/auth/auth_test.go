package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	kvInfra "github.com/focusflow/backend/internal/infrastructure/kv"
	"github.com/focusflow/backend/pkg/passhash"
	"github.com/focusflow/backend/repository"
	kvRepo "github.com/focusflow/backend/repository/kv"
)

func newUseCase(t *testing.T) (*UseCase, repository.AccountRepository) {
	t.Helper()
	store, err := kvInfra.OpenBolt(filepath.Join(t.TempDir(), "test.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	accounts := kvRepo.NewAccountRepository(store, "", zap.NewNop())
	return New(accounts, passhash.SHA256Hasher{}, zap.NewNop()), accounts
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	user, err := uc.Register(ctx, "  Ana  ", " Ana@Example.COM ", "supersecret")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "Ana", user.Name)
	require.Equal(t, "ana@example.com", user.Email)
	require.NotEmpty(t, user.PassHash)
	require.NotEqual(t, "supersecret", user.PassHash)
	require.False(t, user.CreatedAt.IsZero())

	// registration starts a session
	current, err := uc.CurrentSession(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, current.ID)
}

func TestRegisterEmailInUse(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.Register(ctx, "Ana", "ana@example.com", "supersecret")
	require.NoError(t, err)

	// same address differing only in case and whitespace
	_, err = uc.Register(ctx, "Other", "  ANA@Example.com ", "anothersecret")
	require.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestRegisterWeakPassword(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.Register(ctx, "Ana", "ana@example.com", "short")
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	// seven characters is still too short
	_, err = uc.Register(ctx, "Ana", "ana@example.com", "1234567")
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	// eight is the minimum
	_, err = uc.Register(ctx, "Ana", "ana@example.com", "12345678")
	require.NoError(t, err)
}

func TestRegisterInvalidInput(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.Register(ctx, "   ", "ana@example.com", "supersecret")
	require.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = uc.Register(ctx, "Ana", "   ", "supersecret")
	require.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	registered, err := uc.Register(ctx, "Ana", "ana@example.com", "supersecret")
	require.NoError(t, err)
	require.NoError(t, uc.EndSession(ctx))

	user, err := uc.Authenticate(ctx, "ANA@example.com", "supersecret")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	current, err := uc.CurrentSession(ctx)
	require.NoError(t, err)
	require.Equal(t, registered.ID, current.ID)
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.Register(ctx, "Ana", "ana@example.com", "supersecret")
	require.NoError(t, err)
	require.NoError(t, uc.EndSession(ctx))

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@example.com", "supersecret"},
		{"wrong password", "ana@example.com", "wrongsecret"},
		{"both wrong", "ghost@example.com", "wrongsecret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Authenticate(ctx, tt.email, tt.password)
			// identical failure regardless of which part was wrong
			require.ErrorIs(t, err, domain.ErrInvalidCredentials)

			// failed attempts never start a session
			_, err = uc.CurrentSession(ctx)
			require.ErrorIs(t, err, domain.ErrSessionNotFound)
		})
	}
}

func TestEndSessionKeepsData(t *testing.T) {
	ctx := context.Background()
	uc, accounts := newUseCase(t)

	registered, err := uc.Register(ctx, "Ana", "ana@example.com", "supersecret")
	require.NoError(t, err)

	require.NoError(t, uc.EndSession(ctx))

	_, err = uc.CurrentSession(ctx)
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	// the registry outlives the session pointer
	users, err := accounts.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	user, err := uc.Authenticate(ctx, "ana@example.com", "supersecret")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
}

func TestFindUser(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	registered, err := uc.Register(ctx, "Ana", "ana@example.com", "supersecret")
	require.NoError(t, err)

	found, err := uc.FindUser(ctx, registered.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", found.Name)

	_, err = uc.FindUser(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
