package api

import (
	"net/http"
	"strings"
)

// AuthMiddleware gates mutating routes behind a configured set of admin
// credentials. Tokens are compared verbatim; the service does not parse or
// validate their internal structure.
type AuthMiddleware struct {
	adminTokens map[string]bool
}

// NewAuthMiddleware creates auth middleware for the given admin tokens.
func NewAuthMiddleware(adminTokens []string) *AuthMiddleware {
	tokens := make(map[string]bool, len(adminTokens))
	for _, t := range adminTokens {
		if t != "" {
			tokens[t] = true
		}
	}
	return &AuthMiddleware{adminTokens: tokens}
}

// RequireAdmin rejects requests without a token (401) or with a token that
// is not in the admin set (403).
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		if !m.adminTokens[token] {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractToken reads the credential from the Authorization header.
// Supports both "Bearer xxx" and a raw token.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return authHeader
}
