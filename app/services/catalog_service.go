package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/pkg/cache"
	"github.com/velora-shop/velora/pkg/validate"
)

const (
	cacheKeyCategories = "velora:catalog:categories"
	cacheKeyProducts   = "velora:catalog:products"
	catalogCacheTTL    = 5 * time.Minute
)

// CategoryInput carries the fields to create a category.
type CategoryInput struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Image string `json:"image" validate:"nullable,max=1024"`
}

// ProductInput carries the fields to create a product.
type ProductInput struct {
	Name            string            `json:"name" validate:"required,min=1,max=255"`
	Description     string            `json:"description" validate:"nullable"`
	Price           float64           `json:"price" validate:"required,gte=0"`
	DiscountedPrice float64           `json:"discountedPrice" validate:"nullable,gte=0"`
	Gender          string            `json:"gender" validate:"nullable,in=men:women:unisex"`
	Sizes           models.StringList `json:"sizes" validate:"nullable"`
	Colors          models.StringList `json:"colors" validate:"nullable"`
	Quantity        int               `json:"quantity" validate:"required,gte=0"`
	Image           string            `json:"image" validate:"nullable,max=1024"`
	CategoryID      uint              `json:"categoryId" validate:"required,gte=1"`
}

// ProductUpdate carries a partial product update: nil fields are left
// untouched, set fields obey the same bounds as on create.
type ProductUpdate struct {
	Name            *string            `json:"name" validate:"nullable,min=1,max=255"`
	Description     *string            `json:"description"`
	Price           *float64           `json:"price" validate:"nullable,gte=0"`
	DiscountedPrice *float64           `json:"discountedPrice" validate:"nullable,gte=0"`
	Gender          *string            `json:"gender" validate:"nullable,in=men:women:unisex"`
	Sizes           *models.StringList `json:"sizes"`
	Colors          *models.StringList `json:"colors"`
	Quantity        *int               `json:"quantity" validate:"nullable,gte=0"`
	Image           *string            `json:"image" validate:"nullable,max=1024"`
	CategoryID      *uint              `json:"categoryId" validate:"nullable,gte=1"`
}

// CatalogService manages categories and products.
type CatalogService struct {
	db         *gorm.DB
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db:         db,
		categories: repositories.NewCategoryRepository(db),
		products:   repositories.NewProductRepository(db),
	}
}

// ─── Categories ───────────────────────────────────────────────────────────────

// CreateCategory adds a category; a name clash yields ErrDuplicateCategory.
func (s *CatalogService) CreateCategory(in CategoryInput) (models.Category, error) {
	taken, err := s.categories.ExistsByName(in.Name)
	if err != nil {
		return models.Category{}, fmt.Errorf("catalog: check category name: %w", err)
	}
	if taken {
		return models.Category{}, ErrDuplicateCategory
	}

	category := models.Category{Name: in.Name, Image: in.Image}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, fmt.Errorf("catalog: create category: %w", err)
	}
	s.invalidateCache()
	return category, nil
}

// ListCategories returns categories, filtered by name when filter is
// non-empty. The unfiltered list is served read-through from the cache.
func (s *CatalogService) ListCategories(nameFilter string) ([]models.Category, error) {
	if nameFilter == "" {
		var cached []models.Category
		if cache.Get(cacheKeyCategories, &cached) {
			return cached, nil
		}
	}

	categories, err := s.categories.List(nameFilter)
	if err != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", err)
	}
	if nameFilter == "" {
		cache.Set(cacheKeyCategories, categories, catalogCacheTTL) //nolint:errcheck
	}
	return categories, nil
}

// GetCategory returns one category or ErrCategoryNotFound.
func (s *CatalogService) GetCategory(id uint) (models.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ErrCategoryNotFound
		}
		return models.Category{}, fmt.Errorf("catalog: get category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes the category and every product in it, atomically:
// either the category and all its products go, or nothing does.
func (s *CatalogService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.categories.DeleteCascade(tx, id)
	})
	if err != nil {
		return fmt.Errorf("catalog: delete category: %w", err)
	}
	s.invalidateCache()
	return nil
}

// ─── Products ─────────────────────────────────────────────────────────────────

// CreateProduct adds a product; a missing category yields
// ErrCategoryNotFound.
func (s *CatalogService) CreateProduct(in ProductInput) (models.Product, error) {
	if _, err := s.GetCategory(in.CategoryID); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		DiscountedPrice: in.DiscountedPrice,
		Gender:          in.Gender,
		Sizes:           in.Sizes,
		Colors:          in.Colors,
		Quantity:        in.Quantity,
		Image:           in.Image,
		CategoryID:      in.CategoryID,
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, fmt.Errorf("catalog: create product: %w", err)
	}
	s.invalidateCache()
	return s.GetProduct(product.ID)
}

// ListProducts returns products matching filter. The unfiltered list is
// served read-through from the cache.
func (s *CatalogService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	unfiltered := filter == (repositories.ProductFilter{})
	if unfiltered {
		var cached []models.Product
		if cache.Get(cacheKeyProducts, &cached) {
			return cached, nil
		}
	}

	products, err := s.products.List(filter)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	if unfiltered {
		cache.Set(cacheKeyProducts, products, catalogCacheTTL) //nolint:errcheck
	}
	return products, nil
}

// ListProductsByCategory returns the category's products, or
// ErrCategoryNotFound when the category is missing.
func (s *CatalogService) ListProductsByCategory(categoryID uint) ([]models.Product, error) {
	if _, err := s.GetCategory(categoryID); err != nil {
		return nil, err
	}
	return s.ListProducts(repositories.ProductFilter{CategoryID: categoryID})
}

// GetProduct returns one product or ErrProductNotFound.
func (s *CatalogService) GetProduct(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, fmt.Errorf("catalog: get product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies a partial update: only the fields present in the
// request body change. A changed category is re-validated. Out-of-bound
// values (negative price or quantity, unknown gender) are rejected here as
// well as at the controller, so stock can never go negative through an
// update.
func (s *CatalogService) UpdateProduct(id uint, in ProductUpdate) (models.Product, error) {
	if _, err := s.GetProduct(id); err != nil {
		return models.Product{}, err
	}
	if errs := validate.Struct(&in); len(errs) > 0 {
		return models.Product{}, ErrInvalidProduct
	}

	changes := map[string]interface{}{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.Price != nil {
		changes["price"] = *in.Price
	}
	if in.DiscountedPrice != nil {
		changes["discounted_price"] = *in.DiscountedPrice
	}
	if in.Gender != nil {
		changes["gender"] = *in.Gender
	}
	if in.Sizes != nil {
		changes["sizes"] = encodeList(*in.Sizes)
	}
	if in.Colors != nil {
		changes["colors"] = encodeList(*in.Colors)
	}
	if in.Quantity != nil {
		changes["quantity"] = *in.Quantity
	}
	if in.Image != nil {
		changes["image"] = *in.Image
	}
	if in.CategoryID != nil {
		if _, err := s.GetCategory(*in.CategoryID); err != nil {
			return models.Product{}, err
		}
		changes["category_id"] = *in.CategoryID
	}

	if len(changes) > 0 {
		if err := s.products.Updates(id, changes); err != nil {
			return models.Product{}, fmt.Errorf("catalog: update product: %w", err)
		}
		s.invalidateCache()
	}
	return s.GetProduct(id)
}

// DeleteProduct removes a product or returns ErrProductNotFound.
func (s *CatalogService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return fmt.Errorf("catalog: delete product: %w", err)
	}
	s.invalidateCache()
	return nil
}

// dropCatalogCache evicts both catalog list keys. Every write to the
// catalog goes through it, including stock decrements on the order path;
// a var so tests can observe the eviction without a Redis server.
var dropCatalogCache = func() {
	cache.Del(cacheKeyCategories, cacheKeyProducts) //nolint:errcheck
}

func (s *CatalogService) invalidateCache() { dropCatalogCache() }

func encodeList(l models.StringList) string {
	data, err := json.Marshal([]string(l))
	if err != nil {
		return "[]"
	}
	return string(data)
}
