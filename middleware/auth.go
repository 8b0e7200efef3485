package middleware

import (
	"context"
	"net/http"
	"strings"

	"sleeper-league-bot/interfaces"
	"sleeper-league-bot/services"
)

// ClaimsContextKey is the key used to store token claims in request context
type ClaimsContextKey string

const ClaimsKey ClaimsContextKey = "claims"

// AuthMiddleware handles bearer token authentication
type AuthMiddleware struct {
	auth interfaces.Authenticator
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(auth interfaces.Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth rejects requests without a valid operator token
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="operator"`)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) claimsFromRequest(r *http.Request) (*services.JWTClaims, error) {
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
		return m.auth.ValidateToken(strings.TrimSpace(parts[1]))
	}

	if cookie, err := r.Cookie("auth_token"); err == nil && cookie.Value != "" {
		return m.auth.ValidateToken(cookie.Value)
	}
	return nil, http.ErrNoCookie
}

// GetClaimsFromContext retrieves the operator claims from request context
func GetClaimsFromContext(r *http.Request) *services.JWTClaims {
	if claims, ok := r.Context().Value(ClaimsKey).(*services.JWTClaims); ok {
		return claims
	}
	return nil
}
