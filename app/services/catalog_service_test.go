package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/app/services"
)

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)

	_, err := svc.CreateCategory(services.CategoryInput{Name: "Lab Coats"})
	require.NoError(t, err)

	// Case-insensitive clash.
	_, err = svc.CreateCategory(services.CategoryInput{Name: "lab coats"})
	assert.ErrorIs(t, err, services.ErrDuplicateCategory)
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)

	keep := seedCategory(t, db, "Scrubs")
	doomed := seedCategory(t, db, "Discontinued")
	keeper := seedProduct(t, db, keep.ID, "Scrub Top", 20, 10)
	seedProduct(t, db, doomed.ID, "Old Apron", 5, 3)
	seedProduct(t, db, doomed.ID, "Old Mask", 2, 7)

	require.NoError(t, svc.DeleteCategory(doomed.ID))

	_, err := svc.GetCategory(doomed.ID)
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)

	products, err := svc.ListProducts(repositories.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, keeper.ID, products[0].ID)
}

func TestDeleteCategoryMissing(t *testing.T) {
	db := newTestDB(t)
	err := services.NewCatalogService(db).DeleteCategory(404)
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestCreateProductRequiresCategory(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)

	_, err := svc.CreateProduct(services.ProductInput{
		Name:       "Orphan Product",
		Price:      10,
		Quantity:   1,
		CategoryID: 404,
	})
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestUpdateProductIsPartial(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)
	category := seedCategory(t, db, "Lab Equipment")

	created, err := svc.CreateProduct(services.ProductInput{
		Name:        "Microscope Slide Box",
		Description: "Holds 100 slides",
		Price:       12.5,
		Gender:      "unisex",
		Sizes:       models.StringList{"one-size"},
		Quantity:    40,
		CategoryID:  category.ID,
	})
	require.NoError(t, err)

	newPrice := 9.99
	updated, err := svc.UpdateProduct(created.ID, services.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	assert.InDelta(t, 9.99, updated.Price, 0.001)
	// Everything not in the payload is untouched.
	assert.Equal(t, "Microscope Slide Box", updated.Name)
	assert.Equal(t, "Holds 100 slides", updated.Description)
	assert.Equal(t, "unisex", updated.Gender)
	assert.Equal(t, models.StringList{"one-size"}, updated.Sizes)
	assert.Equal(t, 40, updated.Quantity)
}

func TestUpdateProductRejectsOutOfBoundValues(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)
	category := seedCategory(t, db, "Lab Equipment")
	created := seedProduct(t, db, category.ID, "Beaker Set", 12.5, 40)

	badQty := -5
	badPrice := -12.0
	_, err := svc.UpdateProduct(created.ID, services.ProductUpdate{
		Quantity: &badQty,
		Price:    &badPrice,
	})
	require.ErrorIs(t, err, services.ErrInvalidProduct)

	badGender := "robot"
	_, err = svc.UpdateProduct(created.ID, services.ProductUpdate{Gender: &badGender})
	require.ErrorIs(t, err, services.ErrInvalidProduct)

	// Nothing was persisted; stock stayed non-negative and orderable.
	stored, err := svc.GetProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, stored.Quantity)
	assert.InDelta(t, 12.5, stored.Price, 0.001)
}

func TestUpdateProductRejectsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)
	category := seedCategory(t, db, "Lab Coats")
	product := seedProduct(t, db, category.ID, "Classic Lab Coat", 40, 10)

	bogus := uint(404)
	_, err := svc.UpdateProduct(product.ID, services.ProductUpdate{CategoryID: &bogus})
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestListProductsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)
	coats := seedCategory(t, db, "Lab Coats")
	scrubs := seedCategory(t, db, "Scrubs")

	seedProduct(t, db, coats.ID, "Classic Lab Coat", 40, 10)
	seedProduct(t, db, coats.ID, "Premium Lab Coat", 60, 5)
	seedProduct(t, db, scrubs.ID, "Scrub Top", 20, 30)

	byName, err := svc.ListProducts(repositories.ProductFilter{Name: "premium"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Premium Lab Coat", byName[0].Name)

	byCategory, err := svc.ListProductsByCategory(coats.ID)
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	_, err = svc.ListProductsByCategory(404)
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCatalogService(db)
	category := seedCategory(t, db, "Lab Coats")
	product := seedProduct(t, db, category.ID, "Classic Lab Coat", 40, 10)

	require.NoError(t, svc.DeleteProduct(product.ID))
	_, err := svc.GetProduct(product.ID)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(product.ID), services.ErrProductNotFound)
}
