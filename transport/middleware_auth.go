package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	authapp "github.com/nedasoft/marketplace-api/application/auth"
	"github.com/nedasoft/marketplace-api/constant"
	utilsContext "github.com/nedasoft/marketplace-api/utils/context"
	"github.com/nedasoft/marketplace-api/utils/errors"
)

// AuthMiddleware returns a middleware that validates JWT sessions using AuthApp.
// It allows public endpoints (auth, swagger, gateway callbacks) without token.
func AuthMiddleware(authApp authapp.AuthApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			// Check Authorization header
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			// Validate token via AuthApp
			principal, err := authApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			// Embed principal into context
			ctx := utilsContext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	// gateway callbacks carry the payment id, not a user token
	if strings.HasPrefix(path, "/payments/gateway/") || strings.HasPrefix(path, "/payments/verify/") {
		return true
	}
	if path == "/auth/login" || path == "/auth/register" {
		return true
	}

	return false
}
