package repositories

import (
	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create persists a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	return category, err
}

// ExistsByName reports whether a category with the given name exists
// (case-insensitive).
func (r *CategoryRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

// List returns categories, optionally filtered by a case-insensitive name
// substring.
func (r *CategoryRepository) List(nameFilter string) ([]models.Category, error) {
	q := r.db.Model(&models.Category{})
	if nameFilter != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+nameFilter+"%")
	}
	var categories []models.Category
	err := q.Order("name ASC").Find(&categories).Error
	return categories, err
}

// DeleteCascade removes the category and all of its products inside tx.
func (r *CategoryRepository) DeleteCascade(tx *gorm.DB, id uint) error {
	if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Category{}, id).Error
}
