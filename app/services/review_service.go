package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
)

// ReviewInput carries the fields to post a review.
type ReviewInput struct {
	ProductID uint   `json:"productId" validate:"required,gte=1"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text      string `json:"text" validate:"required,min=1"`
}

// ReviewService manages product reviews.
type ReviewService struct {
	reviews  *repositories.ReviewRepository
	products *repositories.ProductRepository
	users    *repositories.UserRepository
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		reviews:  repositories.NewReviewRepository(db),
		products: repositories.NewProductRepository(db),
		users:    repositories.NewUserRepository(db),
	}
}

// Create posts a review on a product. The reviewer's display name is
// snapshotted from their account.
func (s *ReviewService) Create(userID uint, in ReviewInput) (models.Review, error) {
	if _, err := s.products.FindByID(in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, ErrProductNotFound
		}
		return models.Review{}, fmt.Errorf("reviews: load product: %w", err)
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.Review{}, fmt.Errorf("reviews: load user: %w", err)
	}

	review := models.Review{
		ProductID: in.ProductID,
		UserID:    userID,
		Name:      user.FullName(),
		Rating:    in.Rating,
		Text:      in.Text,
	}
	if err := s.reviews.Create(&review); err != nil {
		return models.Review{}, fmt.Errorf("reviews: create: %w", err)
	}
	return review, nil
}

// ListByProduct returns a product's reviews, or ErrProductNotFound.
func (s *ReviewService) ListByProduct(productID uint) ([]models.Review, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("reviews: load product: %w", err)
	}

	reviews, err := s.reviews.ListByProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("reviews: list: %w", err)
	}
	return reviews, nil
}

// Delete removes a review or returns ErrNotFound.
func (s *ReviewService) Delete(id uint) error {
	if _, err := s.reviews.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("reviews: load: %w", err)
	}
	if err := s.reviews.Delete(id); err != nil {
		return fmt.Errorf("reviews: delete: %w", err)
	}
	return nil
}
