// Package rbac provides role gates for Velora routes.
package rbac

import (
	"net/http"

	"github.com/velora-shop/velora/pkg/middleware"
	"github.com/velora-shop/velora/pkg/response"
)

// Admin allows access only to users whose token carries the admin flag.
// Requires middleware.Auth to have already run.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !middleware.IsAdmin(r) {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
