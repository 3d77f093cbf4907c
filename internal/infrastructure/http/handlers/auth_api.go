package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/forkcast/v1/internal/infrastructure/http/middleware"
	"github.com/forkcast/v1/internal/infrastructure/monitoring"
	"github.com/forkcast/v1/internal/infrastructure/security"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthAPIHandlers handles authentication API requests
type AuthAPIHandlers struct {
	userService inbound.UserService
	authService *security.AuthService
	metrics     *monitoring.MetricsCollector
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance
func NewAuthAPIHandlers(
	userService inbound.UserService,
	authService *security.AuthService,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		authService: authService,
		metrics:     metrics,
		validate:    validator.New(),
		logger:      logger,
	}
}

// RegisterRequest represents user registration request
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response with tokens
type AuthResponse struct {
	Success      bool              `json:"success"`
	AccessToken  string            `json:"access_token,omitempty"`
	RefreshToken string            `json:"refresh_token,omitempty"`
	ExpiresIn    int64             `json:"expires_in,omitempty"`
	User         *inbound.UserView `json:"user,omitempty"`
	Error        string            `json:"error,omitempty"`
	Message      string            `json:"message,omitempty"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	view, err := h.userService.Register(r.Context(), inbound.RegisterCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.metrics.RecordUserRegistered()

	writeJSON(w, h.logger, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "User registered successfully",
		User:    view,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	view, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	session, err := h.authService.CreateSession(view.ID.String())
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	access, err := h.authService.GenerateAccessToken(view.ID.String(), view.Email, session.SessionID)
	if err != nil {
		h.logger.Error("Failed to generate access token", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}
	refresh, err := h.authService.GenerateRefreshToken(view.ID.String(), session.SessionID)
	if err != nil {
		h.logger.Error("Failed to generate refresh token", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, AuthResponse{
		Success:      true,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(session.ExpiresAt).Seconds()),
		Message:      "Login successful",
		User:         view,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthAPIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := middleware.SessionFromContext(r.Context()); ok {
		if err := h.authService.EndSession(sessionID); err != nil {
			h.logger.Warn("Failed to end session", zap.Error(err))
		}
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Logout successful",
	})
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthAPIHandlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.RefreshToken == "" {
		writeError(w, h.logger, http.StatusBadRequest, "refresh_token is required")
		return
	}

	claims, err := h.authService.ValidateToken(req.RefreshToken, security.RefreshToken)
	if err != nil {
		writeError(w, h.logger, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	if session, err := h.authService.ValidateSession(claims.SessionID, claims.UserID); err != nil || !session.Active {
		writeError(w, h.logger, http.StatusUnauthorized, "Invalid session")
		return
	}

	access, err := h.authService.GenerateAccessToken(claims.UserID, claims.Email, claims.SessionID)
	if err != nil {
		h.logger.Error("Failed to generate access token", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, AuthResponse{
		Success:     true,
		AccessToken: access,
		Message:     "Token refreshed successfully",
	})
}

// GetProfile handles GET /api/v1/auth/profile
func (h *AuthAPIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || caller.IsGuest() {
		writeUnauthorized(w, h.logger)
		return
	}

	view, err := h.userService.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    view,
	})
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *AuthAPIHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok || caller.IsGuest() {
		writeUnauthorized(w, h.logger)
		return
	}

	var req struct {
		Name string `json:"name" validate:"required,min=2,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	view, err := h.userService.UpdateProfile(r.Context(), caller.UserID, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    view,
		Message: "Profile updated successfully",
	})
}
