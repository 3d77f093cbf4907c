package security

import (
	"testing"
	"time"

	"github.com/forkcast/v1/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret-which-is-long-enough",
			JWTExpiration:     time.Hour,
			RefreshExpiration: 24 * time.Hour,
			BCryptCost:        bcrypt.MinCost,
		},
	}
	// Revocation checks fail open when Redis is unreachable, so token
	// round trips need no running server.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return NewAuthService(cfg, zap.NewNop(), client)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	auth := newTestAuthService(t)

	token, err := auth.GenerateAccessToken("user-123", "jo@example.com", "session-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, "session-abc", claims.SessionID)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestValidateToken_RejectsWrongType(t *testing.T) {
	auth := newTestAuthService(t)

	refresh, err := auth.GenerateRefreshToken("user-123", "session-abc")
	require.NoError(t, err)

	_, err = auth.ValidateToken(refresh, AccessToken)
	assert.Error(t, err)
}

func TestValidateToken_RejectsForeignSignature(t *testing.T) {
	auth := newTestAuthService(t)
	other := newTestAuthService(t)
	other.jwtSecret = []byte("a-completely-different-secret")

	token, err := other.generateToken("user-123", "", "session-abc", AccessToken, time.Hour)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token, AccessToken)
	assert.Error(t, err)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.ValidateToken("not.a.token", AccessToken)
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	auth := newTestAuthService(t)

	hash, err := auth.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, auth.VerifyPassword(hash, "correct horse battery"))
	assert.Error(t, auth.VerifyPassword(hash, "wrong password"))
}
