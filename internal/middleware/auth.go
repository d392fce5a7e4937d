package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nvtrung/forum-api/internal/auth"
)

type key string

const usernameKey key = "username"

// RequireAuth gates mutating routes behind a valid credential proof. The
// resolved username goes into the request context; handlers must take identity
// from there and never from the request body.
//
// Status mapping: no proof at all is 403; a proof that is present but expired
// or unverifiable is 401.
func RequireAuth(a auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := a.Authenticate(r)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrNoProof):
					authError(w, "authentication required", http.StatusForbidden)
				case errors.Is(err, auth.ErrExpired):
					authError(w, "credentials expired", http.StatusUnauthorized)
				default:
					authError(w, "invalid credentials", http.StatusUnauthorized)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), principal.Username)))
		})
	}
}

// WithUsername returns a context carrying the authenticated username the same
// way RequireAuth stores it.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// Username returns the authenticated username set by RequireAuth, or "" when
// the request did not pass through the gate.
func Username(ctx context.Context) string {
	if u, ok := ctx.Value(usernameKey).(string); ok {
		return u
	}
	return ""
}

func authError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
