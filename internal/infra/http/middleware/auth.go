package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/leadpilot/leadpilot/internal/entity"
)

type contextKey string

const userContextKey contextKey = "auth:user"

// Auth resolves the authenticated user from the X-User-ID header and stores
// it in the request context. Identity verification happens at the gateway;
// this layer only rejects requests with no resolvable account.
func Auth(users entity.UserRepositoryInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				unauthorized(w, "missing X-User-ID header")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				unauthorized(w, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, or nil outside Auth.
func UserFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userContextKey).(*entity.User)
	return user
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
