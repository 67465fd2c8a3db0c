// Package api implements the Skald REST API using chi.
package api

import (
	"net/http"
	"strings"

	"github.com/starford/skald/internal/auth"
)

// RequireAuth returns the auth gate middleware for protected routes.
//
// Token extraction order is fixed: the session cookie is checked first, the
// "Authorization: Bearer <token>" header is the fallback. A request with
// neither is rejected with 401 before anything else happens; token
// verification is pure computation, so rejected requests never reach the
// store. On success the verified identity is attached to the request
// context for downstream handlers.
//
// All verification failures (malformed, bad signature, expired) collapse
// into one client-visible response so the reason cannot be probed.
func RequireAuth(codec *auth.Codec, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cookieName)
			if token == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody("missing token"))
				return
			}

			claims, err := codec.Verify(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("invalid or expired token"))
				return
			}
			userID, err := claims.UserID()
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("invalid or expired token"))
				return
			}

			identity := auth.Identity{UserID: userID, Email: claims.Email}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

func extractToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
