// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/forkcast/v1/internal/domain/mealplan"
	"github.com/forkcast/v1/internal/domain/shopping"
	"github.com/forkcast/v1/internal/domain/user"
	apperrors "github.com/forkcast/v1/pkg/errors"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError writes a standard error response
func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// writeUnauthorized reports a request with no usable caller identity.
func writeUnauthorized(w http.ResponseWriter, logger *zap.Logger) {
	appErr := apperrors.NewUnauthorizedError("Not authenticated")
	writeError(w, logger, appErr.StatusCode(), appErr.Message)
}

// writeServiceError maps application and domain errors onto HTTP
// statuses. Domain sentinels keep their user-facing messages; anything
// unrecognized is a 500 with a generic body.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, mealplan.ErrNoMeals):
		writeError(w, logger, http.StatusBadRequest, "No meals found for this week")
		return
	case errors.Is(err, shopping.ErrItemNotOwned):
		writeError(w, logger, http.StatusNotFound, "Item not found")
		return
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, logger, http.StatusUnauthorized, "Invalid email or password")
		return
	case errors.Is(err, user.ErrAccountDisabled):
		writeError(w, logger, http.StatusForbidden, "Account is disabled")
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode()
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", zap.Error(err))
			writeError(w, logger, status, "Internal server error")
			return
		}
		writeError(w, logger, status, appErr.Message)
		return
	}

	logger.Error("Request failed", zap.Error(err))
	writeError(w, logger, http.StatusInternalServerError, "Internal server error")
}

// parseWeekStart reads the week_start query parameter, defaulting to the
// current week when absent. Any parseable date is normalized to its
// Monday.
func parseWeekStart(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("week_start")
	if raw == "" {
		return mealplan.WeekStartOf(time.Now()), nil
	}
	return mealplan.ParseWeekStart(raw)
}
