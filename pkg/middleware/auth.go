package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/velora-shop/velora/pkg/auth"
	"github.com/velora-shop/velora/pkg/response"
)

// claimsKey is the unexported context key for the authenticated claims.
type claimsKey struct{}

// Auth validates the Bearer token and stores the claims in the request
// context. Handlers behind it can rely on UserID / ClaimsFromCtx.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(w)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the authenticated claims stored by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserID returns the authenticated user's ID, or false when the request is
// anonymous.
func UserID(r *http.Request) (uint, bool) {
	claims, ok := ClaimsFromCtx(r.Context())
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// IsAdmin reports whether the authenticated user carries the admin flag.
func IsAdmin(r *http.Request) bool {
	claims, ok := ClaimsFromCtx(r.Context())
	return ok && claims.Admin
}
