package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/auth"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/response"
)

type claimsKey struct{}

// AuthMiddleware validates the Bearer token and stores its claims on the
// request context for ClaimsFrom.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

// ClaimsFrom returns the authenticated user's claims, if any.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}
