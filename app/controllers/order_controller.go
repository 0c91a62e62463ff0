package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/bind"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/middleware"
	"github.com/velora-shop/velora/pkg/response"
	"github.com/velora-shop/velora/pkg/validate"
)

// OrderController handles checkout and order history.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{orders: services.NewOrderService(db)}
}

// Place reserves stock and records the order.
// POST /orders
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.OrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}
	for _, item := range in.Items {
		if errs := validate.Struct(&item); len(errs) > 0 {
			response.ValidationError(w, errs)
			return
		}
	}

	order, err := c.orders.PlaceOrder(userID, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder):
			response.Error(w, http.StatusBadRequest, "Order has no items")
		case errors.Is(err, services.ErrProductNotFound):
			response.NotFound(w)
		case errors.Is(err, services.ErrInsufficientStock):
			response.Conflict(w, "Insufficient stock")
		default:
			logger.WithCtx(r.Context()).Error("place order failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Could not place order")
		}
		return
	}
	response.Created(w, order)
}

// List returns the caller's orders newest-first.
// GET /orders
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.orders.ListByUser(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list orders failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not list orders")
		return
	}
	response.Success(w, orders)
}
