package middleware

import (
	"net/http"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http/response"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/jwt"
)

// RequireWorkspace scopes the request context to the workspace_id claim.
// Tokens without one are refused.
func RequireWorkspace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := jwt.IdentityFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if id.WorkspaceID == "" {
			response.HandleError(w, auth.ErrMissingWorkspace)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithWorkspace(r.Context(), id.WorkspaceID)))
	})
}
