package repositories

import (
	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
)

// ProductFilter narrows List results. Zero values mean "no filter".
type ProductFilter struct {
	Name       string
	Gender     string
	CategoryID uint
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// FindByID returns the product with its category preloaded.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").First(&product, id).Error
	return product, err
}

// List returns products matching filter, newest first, with categories
// preloaded.
func (r *ProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{}).Preload("Category")
	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Gender != "" {
		q = q.Where("LOWER(gender) = LOWER(?)", filter.Gender)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	var products []models.Product
	err := q.Order("created_at DESC").Find(&products).Error
	return products, err
}

// Updates applies the given column changes to the product.
func (r *ProductRepository) Updates(id uint, changes map[string]interface{}) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(changes).Error
}

// Delete removes a product.
func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// LowStock returns products whose quantity is below threshold.
func (r *ProductRepository) LowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("quantity < ?", threshold).Find(&products).Error
	return products, err
}

// DecrementStock atomically subtracts qty from the product's quantity, but
// only when enough stock is on hand. Returns the number of rows affected:
// 0 means the product is missing or the stock is insufficient, and callers
// disambiguate with a separate lookup.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, id uint, qty int) (int64, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

// Exists reports whether a product row exists, usable inside a transaction.
func (r *ProductRepository) Exists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
