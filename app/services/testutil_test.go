package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/auth"
)

// newTestDB opens a fresh in-memory database migrated with every model.
// Each test gets its own named shared-cache DB so gorm's pooled
// connections all see the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Image{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	user := models.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     email,
		Password:  hash,
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(&user))
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category, err := services.NewCatalogService(db).CreateCategory(services.CategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price float64, qty int) models.Product {
	t.Helper()

	product, err := services.NewCatalogService(db).CreateProduct(services.ProductInput{
		Name:       name,
		Price:      price,
		Quantity:   qty,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return product
}
