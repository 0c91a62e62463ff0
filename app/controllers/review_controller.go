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
)

// ReviewController handles product reviews.
type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{reviews: services.NewReviewService(db)}
}

// Create posts a review.
// POST /reviews
func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.ReviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.reviews.Create(userID, in)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("create review failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create review")
		return
	}
	response.Created(w, review)
}

// ListByProduct returns a product's reviews.
// GET /products/{id}/reviews
func (c *ReviewController) ListByProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	reviews, err := c.reviews.ListByProduct(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("list reviews failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not list reviews")
		return
	}
	response.Success(w, reviews)
}

// Delete removes a review (admin only, enforced by the route).
// DELETE /reviews/{id}
func (c *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	if err := c.reviews.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("delete review failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete review")
		return
	}
	response.Message(w, "Review deleted")
}
