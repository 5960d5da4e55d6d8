// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/middleware"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/response"
)

// HasRole returns middleware that allows access only to users with one of
// the given roles. Requires AuthMiddleware to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := middleware.ClaimsFrom(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !allowed[claims.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
