package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/velora-shop/velora/app/models"
)

// Checkout changes product quantities, so it must evict the cached catalog
// lists the same way catalog writes do. These tests redirect the eviction
// hook into a counter; a Redis server is not needed.

func orderCacheDB(t *testing.T) *gorm.DB {
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
	))
	return db
}

func countEvictions(t *testing.T) *int {
	t.Helper()

	prev := dropCatalogCache
	t.Cleanup(func() { dropCatalogCache = prev })

	var n int
	dropCatalogCache = func() { n++ }
	return &n
}

func seedStock(t *testing.T, db *gorm.DB, qty int) (models.User, models.Product) {
	t.Helper()

	user := models.User{FirstName: "Grace", LastName: "Hopper", Email: "buyer@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	category := models.Category{Name: "Lab Coats"}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{Name: "Classic Lab Coat", Price: 40, Quantity: qty, CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)

	return user, product
}

func TestPlaceOrderEvictsCatalogCache(t *testing.T) {
	db := orderCacheDB(t)
	evictions := countEvictions(t)
	user, product := seedStock(t, db, 5)

	_, err := NewOrderService(db).PlaceOrder(user.ID, OrderInput{
		Items:     []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		NumberOne: "0123456789",
		Address:   "12 Harbor Lane",
		City:      "Chattogram",
		State:     "Chattogram",
		Country:   "Bangladesh",
		PostCode:  "4000",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, *evictions)
}

func TestRejectedOrderLeavesCatalogCacheAlone(t *testing.T) {
	db := orderCacheDB(t)
	evictions := countEvictions(t)
	user, product := seedStock(t, db, 1)

	_, err := NewOrderService(db).PlaceOrder(user.ID, OrderInput{
		Items:     []OrderItemInput{{ProductID: product.ID, Quantity: 10}},
		NumberOne: "0123456789",
		Address:   "12 Harbor Lane",
		City:      "Chattogram",
		State:     "Chattogram",
		Country:   "Bangladesh",
		PostCode:  "4000",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing changed, so the cached lists are still accurate.
	assert.Equal(t, 0, *evictions)
}
