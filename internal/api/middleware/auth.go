package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/goodluckfit/fitauth/internal/api/apierr"
	"github.com/goodluckfit/fitauth/internal/model"
	"github.com/goodluckfit/fitauth/internal/token"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// Auth creates authentication middleware. The token is verified before any
// handler logic runs; expired or malformed tokens short-circuit with a 401.
func Auth(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			userID, err := issuer.Verify(raw)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetUserID returns the authenticated user ID from the request context
func GetUserID(ctx context.Context) model.UserID {
	id, _ := ctx.Value(userIDContextKey).(model.UserID)
	return id
}

// MustGetUserID returns the authenticated user ID or panics
func MustGetUserID(ctx context.Context) model.UserID {
	id := GetUserID(ctx)
	if id == "" {
		panic("no user in context - auth middleware not applied?")
	}
	return id
}
