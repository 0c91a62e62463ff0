package repositories

import (
	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
)

// ReviewRepository handles database operations for Review.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create persists a new review.
func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// FindByID looks up a review by primary key.
func (r *ReviewRepository) FindByID(id uint) (models.Review, error) {
	var review models.Review
	err := r.db.First(&review, id).Error
	return review, err
}

// ListByProduct returns a product's reviews newest-first.
func (r *ReviewRepository) ListByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Delete removes a review.
func (r *ReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
