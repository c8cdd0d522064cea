package middleware

import (
	"net/http"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http/response"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/jwt"
)

func requireRole(allowed func(auth.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := jwt.IdentityFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !id.Role.Valid() || !allowed(id.Role) {
				response.HandleError(w, auth.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole allows the request through when the token role is one of roles.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return requireRole(func(role auth.Role) bool {
		for _, r := range roles {
			if role == r {
				return true
			}
		}
		return false
	})
}

// RequireApprover requires a role allowed to decide requests
func RequireApprover(next http.Handler) http.Handler {
	return requireRole(auth.Role.CanDecideRequests)(next)
}
