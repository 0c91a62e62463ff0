package repositories

import (
	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
)

// ImageRepository handles database operations for Image.
type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Create persists a new image row.
func (r *ImageRepository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}

// FindByID looks up an image by primary key.
func (r *ImageRepository) FindByID(id uint) (models.Image, error) {
	var image models.Image
	err := r.db.First(&image, id).Error
	return image, err
}

// List returns all images oldest-first (carousel order).
func (r *ImageRepository) List() ([]models.Image, error) {
	var images []models.Image
	err := r.db.Order("created_at ASC").Find(&images).Error
	return images, err
}

// Update persists changes to an existing image row.
func (r *ImageRepository) Update(image *models.Image) error {
	return r.db.Save(image).Error
}

// Delete removes an image row.
func (r *ImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Image{}, id).Error
}
