package seeders

import (
	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/config"
	"github.com/velora-shop/velora/pkg/auth"
)

func init() {
	Register("admin", SeedAdmin)
	Register("catalog", SeedCatalog)
}

// SeedAdmin creates the store administrator account if it doesn't exist.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("SEED_ADMIN_PASSWORD", "changeme-now"))
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		FirstName: "Store",
		LastName:  "Admin",
		Email:     config.Get("SEED_ADMIN_EMAIL", "admin@velora.shop"),
		Password:  hash,
		IsAdmin:   true,
	}).Error
}

// SeedCatalog inserts a small demo catalog for local development.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	categories := []models.Category{
		{Name: "Lab Coats"},
		{Name: "Scrubs"},
		{Name: "Lab Equipment"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name: "Classic Lab Coat", Description: "Knee-length poly-cotton lab coat.",
			Price: 49.90, DiscountedPrice: 39.90, Gender: "unisex",
			Sizes: models.StringList{"S", "M", "L", "XL"}, Colors: models.StringList{"white"},
			Quantity: 40, CategoryID: categories[0].ID,
		},
		{
			Name: "Slim Fit Lab Coat", Description: "Tailored cut, three pockets.",
			Price: 59.90, Gender: "women",
			Sizes: models.StringList{"XS", "S", "M", "L"}, Colors: models.StringList{"white", "blue"},
			Quantity: 25, CategoryID: categories[0].ID,
		},
		{
			Name: "Comfort Scrub Set", Description: "Top and trousers, antimicrobial fabric.",
			Price: 34.50, Gender: "men",
			Sizes: models.StringList{"M", "L", "XL"}, Colors: models.StringList{"green", "navy"},
			Quantity: 60, CategoryID: categories[1].ID,
		},
		{
			Name: "Safety Goggles", Description: "Anti-fog, indirect vents.",
			Price: 12.00, Gender: "unisex",
			Quantity: 120, CategoryID: categories[2].ID,
		},
	}
	return db.Create(&products).Error
}
