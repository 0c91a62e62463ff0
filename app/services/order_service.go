package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/pkg/event"
	"github.com/velora-shop/velora/pkg/metrics"
)

// EventOrderPlaced fires after an order transaction commits. The payload is
// the fully loaded models.Order.
const EventOrderPlaced = "order.placed"

// OrderItemInput is one requested order line.
type OrderItemInput struct {
	ProductID uint   `json:"productId" validate:"required,gte=1"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Size      string `json:"size" validate:"nullable,max=50"`
	Color     string `json:"color" validate:"nullable,max=50"`
}

// OrderInput is the checkout payload: the requested lines plus delivery
// contact details.
type OrderInput struct {
	Items       []OrderItemInput `json:"items" validate:"required"`
	NumberOne   string           `json:"numberOne" validate:"required,max=50"`
	NumberTwo   string           `json:"numberTwo" validate:"nullable,max=50"`
	Address     string           `json:"address" validate:"required,max=1024"`
	City        string           `json:"city" validate:"required,max=255"`
	State       string           `json:"state" validate:"required,max=255"`
	Country     string           `json:"country" validate:"required,max=255"`
	PostCode    string           `json:"postCode" validate:"required,max=50"`
	Description string           `json:"description" validate:"nullable"`
}

// OrderService places orders and lists order history.
type OrderService struct {
	db       *gorm.DB
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:       db,
		orders:   repositories.NewOrderRepository(db),
		products: repositories.NewProductRepository(db),
	}
}

// PlaceOrder reserves stock and records the order in a single database
// transaction. Each line's stock adjustment is a conditional decrement
// (quantity >= requested), so two concurrent checkouts can never oversell,
// and a failure on any line rolls back every earlier decrement. Unit prices
// are snapshotted from the product's effective price at placement time.
//
// After the transaction commits the order.placed event fires; everything
// hanging off it (emails, stock broadcasts) is best-effort and can never
// unwind the committed order.
func (s *OrderService) PlaceOrder(userID uint, in OrderInput) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	order := models.Order{
		UserID:      userID,
		Status:      "pending",
		NumberOne:   in.NumberOne,
		NumberTwo:   in.NumberTwo,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Country:     in.Country,
		PostCode:    in.PostCode,
		Description: in.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total float64

		for _, item := range in.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("orders: product %d: %w", item.ProductID, ErrProductNotFound)
				}
				return fmt.Errorf("orders: load product %d: %w", item.ProductID, err)
			}

			affected, err := s.products.DecrementStock(tx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("orders: decrement stock for product %d: %w", item.ProductID, err)
			}
			if affected == 0 {
				// Row existed a moment ago, so zero rows means the
				// conditional quantity >= qty guard rejected it.
				return fmt.Errorf("orders: product %q: %w", product.Name, ErrInsufficientStock)
			}

			unit := product.UnitPrice()
			total += unit * float64(item.Quantity)
			order.Items = append(order.Items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Size:      item.Size,
				Color:     item.Color,
				UnitPrice: unit,
			})
		}

		order.Total = total
		return s.orders.Create(tx, &order)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			metrics.OrdersRejected.Inc()
		}
		return models.Order{}, err
	}

	// Quantities just changed; cached product lists are stale.
	dropCatalogCache()

	placed, err := s.orders.FindByID(order.ID)
	if err != nil {
		return order, nil // committed; preload failure is not a placement failure
	}

	metrics.OrdersPlaced.Inc()
	event.Fire(EventOrderPlaced, placed)
	return placed, nil
}

// ListByUser returns the user's orders newest-first.
func (s *OrderService) ListByUser(userID uint) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("orders: list for user %d: %w", userID, err)
	}
	return orders, nil
}
