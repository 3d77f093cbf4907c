// Package middleware provides Chi-compatible middleware for the API server
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/forkcast/v1/internal/infrastructure/monitoring"
	"github.com/forkcast/v1/internal/infrastructure/security"
	"github.com/forkcast/v1/internal/ports/inbound"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	callerKey  contextKey = "caller"
	sessionKey contextKey = "session_id"
)

// GuestIDHeader carries the client-generated id identifying a visitor
// without an account.
const GuestIDHeader = "X-Guest-ID"

// Logger creates a Chi-compatible logging middleware
func Logger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger.Info("API Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status_code", wrapped.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.String("user_agent", r.UserAgent()),
			)
		})
	}
}

// Metrics records request counts and latencies per route.
func Metrics(collector *monitoring.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			collector.RecordHTTPRequest(r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
		})
	}
}

// Security adds security headers for API responses
func Security() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// CORS adds CORS headers for API endpoints
func CORS() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*") // Configure appropriately for production
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+GuestIDHeader)
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// JSONOnly forces all responses to be JSON for the pure API
func JSONOnly() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			if r.Method == "POST" || r.Method == "PUT" || r.Method == "PATCH" {
				contentType := r.Header.Get("Content-Type")
				if !strings.Contains(contentType, "application/json") {
					w.WriteHeader(http.StatusUnsupportedMediaType)
					fmt.Fprint(w, `{"error":"Content-Type must be application/json"}`)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Identify resolves the caller for routes that serve both account
// holders and guests. A Bearer token wins over a guest id when both are
// present; a request with neither is rejected.
func Identify(authService *security.AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				caller, sessionID, ok := resolveToken(w, r, authService, authHeader)
				if !ok {
					return
				}
				ctx := context.WithValue(r.Context(), callerKey, caller)
				ctx = context.WithValue(ctx, sessionKey, sessionID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if guestID := r.Header.Get(GuestIDHeader); guestID != "" {
				caller := inbound.Caller{GuestID: guestID}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, caller)))
				return
			}

			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprintf(w, `{"error":"Authorization or %s header required"}`, GuestIDHeader)
		})
	}
}

// AuthenticateAPI provides JWT-only authentication for account routes.
func AuthenticateAPI(authService *security.AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":"Authorization header required"}`)
				return
			}

			caller, sessionID, ok := resolveToken(w, r, authService, authHeader)
			if !ok {
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			ctx = context.WithValue(ctx, sessionKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveToken validates a Bearer token and its session, writing the
// error response itself on failure.
func resolveToken(w http.ResponseWriter, r *http.Request, authService *security.AuthService, authHeader string) (inbound.Caller, string, bool) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"Invalid authorization header format"}`)
		return inbound.Caller{}, "", false
	}

	claims, err := authService.ValidateToken(parts[1], security.AccessToken)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"Invalid or expired token"}`)
		return inbound.Caller{}, "", false
	}

	session, err := authService.ValidateSession(claims.SessionID, claims.UserID)
	if err != nil || !session.Active {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"Invalid session"}`)
		return inbound.Caller{}, "", false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"Invalid token subject"}`)
		return inbound.Caller{}, "", false
	}

	return inbound.Caller{UserID: userID}, claims.SessionID, true
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// WithCaller returns a context carrying the given caller.
func WithCaller(ctx context.Context, caller inbound.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext extracts the resolved caller from the request context.
func CallerFromContext(ctx context.Context) (inbound.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(inbound.Caller)
	return caller, ok
}

// SessionFromContext extracts the session id from the request context.
func SessionFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey).(string)
	return sessionID, ok
}
