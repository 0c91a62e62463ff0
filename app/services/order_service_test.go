package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-shop/velora/app/services"
)

func contact(items []services.OrderItemInput) services.OrderInput {
	return services.OrderInput{
		Items:     items,
		NumberOne: "0123456789",
		Address:   "12 Harbor Lane",
		City:      "Chattogram",
		State:     "Chattogram",
		Country:   "Bangladesh",
		PostCode:  "4000",
	}
}

func TestPlaceOrderComputesTotalFromEffectivePrices(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "Lab Coats")

	coat := seedProduct(t, db, category.ID, "Classic Lab Coat", 40, 10)
	scrub := seedProduct(t, db, category.ID, "Surgical Scrub", 30, 10)

	// Discounted price wins over list price once set.
	catalog := services.NewCatalogService(db)
	discounted := 25.0
	_, err := catalog.UpdateProduct(scrub.ID, services.ProductUpdate{DiscountedPrice: &discounted})
	require.NoError(t, err)

	orders := services.NewOrderService(db)
	order, err := orders.PlaceOrder(user.ID, contact([]services.OrderItemInput{
		{ProductID: coat.ID, Quantity: 2, Size: "M"},
		{ProductID: scrub.ID, Quantity: 3, Color: "Green"},
	}))
	require.NoError(t, err)

	assert.Equal(t, "pending", order.Status)
	assert.InDelta(t, 2*40+3*25, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 40, order.Items[0].UnitPrice, 0.001)
	assert.InDelta(t, 25, order.Items[1].UnitPrice, 0.001)

	// Stock was decremented inside the same transaction.
	left, err := catalog.GetProduct(coat.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, left.Quantity)
}

func TestPlaceOrderRejectsOversell(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "Lab Equipment")
	beaker := seedProduct(t, db, category.ID, "Glass Beaker 500ml", 8, 5)

	orders := services.NewOrderService(db)

	// Buying the exact remaining stock succeeds and drains it.
	_, err := orders.PlaceOrder(user.ID, contact([]services.OrderItemInput{
		{ProductID: beaker.ID, Quantity: 5},
	}))
	require.NoError(t, err)

	left, err := services.NewCatalogService(db).GetProduct(beaker.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, left.Quantity)

	// The next order of any quantity is rejected.
	_, err = orders.PlaceOrder(user.ID, contact([]services.OrderItemInput{
		{ProductID: beaker.ID, Quantity: 1},
	}))
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
}

func TestPlaceOrderRollsBackEarlierLines(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "Scrubs")

	plenty := seedProduct(t, db, category.ID, "Scrub Top", 20, 50)
	scarce := seedProduct(t, db, category.ID, "Scrub Cap", 5, 1)

	orders := services.NewOrderService(db)
	_, err := orders.PlaceOrder(user.ID, contact([]services.OrderItemInput{
		{ProductID: plenty.ID, Quantity: 10},
		{ProductID: scarce.ID, Quantity: 2},
	}))
	require.ErrorIs(t, err, services.ErrInsufficientStock)

	// The first line's decrement must have been rolled back with the rest.
	catalog := services.NewCatalogService(db)
	p, err := catalog.GetProduct(plenty.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Quantity)

	s, err := catalog.GetProduct(scarce.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Quantity)

	// No order or items were written.
	history, err := orders.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "buyer@example.com")

	_, err := services.NewOrderService(db).PlaceOrder(user.ID, contact([]services.OrderItemInput{
		{ProductID: 999, Quantity: 1},
	}))
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestPlaceOrderEmpty(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "buyer@example.com")

	_, err := services.NewOrderService(db).PlaceOrder(user.ID, contact(nil))
	assert.ErrorIs(t, err, services.ErrEmptyOrder)
}

func TestListByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "buyer@example.com")
	other := seedUser(t, db, "other@example.com")
	category := seedCategory(t, db, "Lab Coats")
	coat := seedProduct(t, db, category.ID, "Classic Lab Coat", 40, 100)

	orders := services.NewOrderService(db)
	first, err := orders.PlaceOrder(user.ID, contact([]services.OrderItemInput{{ProductID: coat.ID, Quantity: 1}}))
	require.NoError(t, err)
	second, err := orders.PlaceOrder(user.ID, contact([]services.OrderItemInput{{ProductID: coat.ID, Quantity: 2}}))
	require.NoError(t, err)
	_, err = orders.PlaceOrder(other.ID, contact([]services.OrderItemInput{{ProductID: coat.ID, Quantity: 1}}))
	require.NoError(t, err)

	history, err := orders.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}
