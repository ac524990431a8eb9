package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const identityKey contextKeyType = "identity"

// TokenCookieName is the cookie the storefront clients carry the JWT in.
const TokenCookieName = "token"

// Identity is the authenticated principal attached to a request context.
// Request handlers that run behind the permissive gate must treat it as
// optional.
type Identity struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// TokenVerifier validates a raw token string and returns the identity it
// encodes. The auth package supplies the JWT-backed implementation.
type TokenVerifier func(token string) (*Identity, error)

// ExtractToken pulls the bearer token from the request: the token cookie is
// consulted first, then the Authorization header.
func ExtractToken(r *http.Request) string {
	if c, err := r.Cookie(TokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}

	return ""
}

// RequireAuth is the strict auth gate: requests without a valid token are
// rejected with 401; otherwise the decoded identity enters the context.
func RequireAuth(verify TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				writeAuthError(w, "you must be logged in")
				return
			}

			identity, err := verify(token)
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuth is the permissive auth gate: it attempts the same decode as
// RequireAuth but never rejects. Anonymous and invalid-token requests continue
// with no identity in context.
func OptionalAuth(verify TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				if identity, err := verify(token); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), identity))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext extracts the request identity, reporting whether one is
// present.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok && identity != nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
