package middleware

import (
	"net/http"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http/response"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// UUIDParam answers 404 when the named path parameter is not a uuid.
func UUIDParam(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validator.IsValidUUID(chi.URLParam(r, name)) {
				response.NotFound(w, "Resource not found")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
