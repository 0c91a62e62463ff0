// Package routes registers Velora's HTTP API on the router.
package routes

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/controllers"
	"github.com/velora-shop/velora/app/graphql"
	"github.com/velora-shop/velora/app/realtime"
	"github.com/velora-shop/velora/pkg/middleware"
	"github.com/velora-shop/velora/pkg/rbac"
	"github.com/velora-shop/velora/pkg/response"
	"github.com/velora-shop/velora/pkg/router"
	"github.com/velora-shop/velora/pkg/ws"
)

// Register mounts every API route. Global middleware (metrics, recovery,
// request id, logging, CORS, rate limit) is attached by the server before
// this runs.
func Register(r *router.Router, db *gorm.DB) {
	authC := controllers.NewAuthController(db)
	categoryC := controllers.NewCategoryController(db)
	productC := controllers.NewProductController(db)
	orderC := controllers.NewOrderController(db)
	reviewC := controllers.NewReviewController(db)
	galleryC := controllers.NewGalleryController(db)

	// Health probe.
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, "ok")
	})

	// Auth.
	r.Post("/auth/register", "auth.register", authC.Register)
	r.Post("/auth/login", "auth.login", authC.Login)
	r.Post("/auth/forgot-password", "auth.forgot", authC.ForgotPassword)
	r.Post("/auth/reset-password", "auth.reset", authC.ResetPassword)

	// Public catalog.
	r.Get("/categories", "categories.index", categoryC.List)
	r.Get("/categories/{id}", "categories.show", categoryC.Get)
	r.Get("/categories/{id}/products", "categories.products", productC.ListByCategory)
	r.Get("/products", "products.index", productC.List)
	r.Get("/products/{id}", "products.show", productC.Get)
	r.Get("/products/{id}/reviews", "reviews.index", reviewC.ListByProduct)
	r.Get("/gallery", "gallery.index", galleryC.List)

	// Read-only GraphQL view of the catalog.
	r.Post("/graphql", "graphql", graphql.Handler(db))

	// Authenticated storefront actions.
	user := r.Group("", middleware.Auth)
	user.Post("/orders", "orders.place", orderC.Place)
	user.Get("/orders", "orders.index", orderC.List)
	user.Post("/reviews", "reviews.create", reviewC.Create)

	// Admin-only catalog management.
	admin := r.Group("", middleware.Auth, rbac.Admin)
	admin.Post("/categories", "categories.create", categoryC.Create)
	admin.Delete("/categories/{id}", "categories.delete", categoryC.Delete)
	admin.Post("/products", "products.create", productC.Create)
	admin.Put("/products/{id}", "products.update", productC.Update)
	admin.Delete("/products/{id}", "products.delete", productC.Delete)
	admin.Delete("/reviews/{id}", "reviews.delete", reviewC.Delete)
	admin.Post("/gallery", "gallery.upload", galleryC.Upload)
	admin.Put("/gallery/{id}", "gallery.update", galleryC.Update)
	admin.Delete("/gallery/{id}", "gallery.delete", galleryC.Delete)

	// Live stock updates for the admin dashboard. SSE carries the same
	// frames for clients behind proxies that strip websocket upgrades.
	admin.Get("/ws/stock", "ws.stock", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, realtime.Stock)
	})
	admin.Get("/sse/stock", "sse.stock", realtime.StreamStockSSE)
}
