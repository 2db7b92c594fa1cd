package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func runRequest(t *testing.T, authHeader string) (*fasthttp.RequestCtx, string) {
	t.Helper()

	var forwardedUser string
	handler := SessionAuth(testSecret, zap.NewNop())(func(ctx *fasthttp.RequestCtx) {
		forwardedUser = string(ctx.Request.Header.Peek("X-User-ID"))
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/api/v1/tasks")
	if authHeader != "" {
		ctx.Request.Header.Set("Authorization", authHeader)
	}
	handler(ctx)
	return ctx, forwardedUser
}

func TestSessionTokenRoundtrip(t *testing.T) {
	token, err := NewSessionToken(testSecret, "focusflow", "user-42", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ctx, userID := runRequest(t, "Bearer "+token)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "user-42", userID)
}

func TestSessionAuthBareToken(t *testing.T) {
	token, err := NewSessionToken(testSecret, "focusflow", "user-42", time.Hour)
	require.NoError(t, err)

	// a token without the Bearer prefix is still accepted
	ctx, userID := runRequest(t, token)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.Equal(t, "user-42", userID)
}

func TestSessionAuthMissingHeader(t *testing.T) {
	ctx, userID := runRequest(t, "")
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.Empty(t, userID)
}

func TestSessionAuthGarbageToken(t *testing.T) {
	ctx, userID := runRequest(t, "Bearer not-a-token")
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.Empty(t, userID)
}

func TestSessionAuthWrongSecret(t *testing.T) {
	token, err := NewSessionToken("other-secret", "focusflow", "user-42", time.Hour)
	require.NoError(t, err)

	ctx, userID := runRequest(t, "Bearer "+token)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	require.Empty(t, userID)
}

func TestSessionAuthExpiredToken(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    "focusflow",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	ctx, _ := runRequest(t, "Bearer "+token)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}
