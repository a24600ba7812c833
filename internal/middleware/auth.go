package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/messagely/messagely-backend/internal/services"
)

type contextKey string

const principalKey contextKey = "principal"

// RequireAuth verifies the bearer token on every request and stores the
// authenticated username in the request context. A missing, malformed,
// tampered or expired token is rejected with 401 before any handler or
// access rule runs.
func RequireAuth(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "Missing token")
				return
			}

			username, err := tokens.Verify(token)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Principal returns the authenticated username stored by RequireAuth.
func Principal(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(principalKey).(string)
	return username, ok && username != ""
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
