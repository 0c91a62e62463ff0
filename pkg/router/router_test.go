package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velora-shop/velora/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/products/{id}", path)

	url, err := r.URL("products.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/products/7", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing.route", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := router.New()
	admin := r.Group("/admin", tag("outer"))
	admin.Get("/reports", "admin.reports", ok, tag("inner"))

	req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestEmptyGroupPrefixMountsAtRoot(t *testing.T) {
	r := router.New()
	g := r.Group("")
	g.Get("/orders", "orders.index", ok)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNestedGroups(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	v1 := api.Group("/v1")
	v1.Get("/ping", "v1.ping", ok)

	path, found := r.Path("v1.ping")
	require.True(t, found)
	assert.Equal(t, "/api/v1/ping", path)
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Get("/only-get", "", ok)

	req := httptest.NewRequest(http.MethodPost, "/only-get", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
