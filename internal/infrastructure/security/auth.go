// Package security provides JWT authentication with Redis-backed
// sessions and token revocation.
package security

import (
	"context"
	"fmt"
	"time"

	"github.com/forkcast/v1/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and validates tokens and manages sessions.
type AuthService struct {
	config      *config.Config
	logger      *zap.Logger
	redisClient *redis.Client
	jwtSecret   []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *AuthService {
	return &AuthService{
		config:      cfg,
		logger:      logger,
		redisClient: redisClient,
		jwtSecret:   []byte(cfg.Auth.JWTSecret),
	}
}

// TokenType represents different types of JWT tokens
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims represents JWT claims structure
type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	TokenType TokenType `json:"token_type"`
	SessionID string    `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionInfo represents one login session
type SessionInfo struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Active    bool      `json:"active"`
}

// GenerateAccessToken creates a new access token bound to a session.
func (a *AuthService) GenerateAccessToken(userID, email, sessionID string) (string, error) {
	return a.generateToken(userID, email, sessionID, AccessToken, a.config.Auth.JWTExpiration)
}

// GenerateRefreshToken creates a new refresh token bound to a session.
func (a *AuthService) GenerateRefreshToken(userID, sessionID string) (string, error) {
	return a.generateToken(userID, "", sessionID, RefreshToken, a.config.Auth.RefreshExpiration)
}

func (a *AuthService) generateToken(userID, email, sessionID string, tokenType TokenType, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "forkcast",
			Subject:   userID,
			Audience:  []string{"forkcast-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates and parses a JWT token of the expected type,
// rejecting revoked tokens.
func (a *AuthService) ValidateToken(tokenString string, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedType, claims.TokenType)
	}

	if revoked, err := a.isTokenRevoked(claims.ID); err != nil {
		a.logger.Warn("Failed to check token revocation", zap.Error(err))
	} else if revoked {
		return nil, fmt.Errorf("token has been revoked")
	}

	return claims, nil
}

// RevokeToken adds a token id to the revocation list until the longest
// possible token lifetime has passed.
func (a *AuthService) RevokeToken(tokenID string) error {
	ctx := context.Background()
	key := fmt.Sprintf("revoked_token:%s", tokenID)
	return a.redisClient.Set(ctx, key, "revoked", a.config.Auth.RefreshExpiration).Err()
}

// CreateSession records a new login session in Redis.
func (a *AuthService) CreateSession(userID string) (*SessionInfo, error) {
	sessionID := uuid.New().String()
	now := time.Now()

	session := &SessionInfo{
		UserID:    userID,
		SessionID: sessionID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.config.Auth.RefreshExpiration),
		Active:    true,
	}

	ctx := context.Background()
	sessionKey := fmt.Sprintf("session:%s", sessionID)

	if err := a.redisClient.HSet(ctx, sessionKey, map[string]interface{}{
		"user_id":    session.UserID,
		"created_at": session.CreatedAt.Unix(),
		"expires_at": session.ExpiresAt.Unix(),
		"active":     "true",
	}).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	a.redisClient.Expire(ctx, sessionKey, a.config.Auth.RefreshExpiration)

	return session, nil
}

// ValidateSession checks that a session exists, belongs to the user, and
// is still active.
func (a *AuthService) ValidateSession(sessionID, userID string) (*SessionInfo, error) {
	ctx := context.Background()
	sessionKey := fmt.Sprintf("session:%s", sessionID)

	result, err := a.redisClient.HGetAll(ctx, sessionKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("session not found")
	}
	if result["user_id"] != userID {
		return nil, fmt.Errorf("session user mismatch")
	}

	return &SessionInfo{
		UserID:    result["user_id"],
		SessionID: sessionID,
		Active:    result["active"] == "true",
	}, nil
}

// EndSession deactivates a session so its tokens stop validating.
func (a *AuthService) EndSession(sessionID string) error {
	ctx := context.Background()
	sessionKey := fmt.Sprintf("session:%s", sessionID)
	return a.redisClient.HSet(ctx, sessionKey, "active", "false").Err()
}

// HashPassword securely hashes a password using bcrypt.
func (a *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.config.Auth.BCryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against its hash.
func (a *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (a *AuthService) isTokenRevoked(tokenID string) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf("revoked_token:%s", tokenID)

	exists, err := a.redisClient.Exists(ctx, key).Result()
	return exists > 0, err
}
