// Package jobs defines Velora's queued background jobs.
package jobs

import (
	"fmt"

	"github.com/velora-shop/velora/app/mailers"
	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/pkg/collection"
	"github.com/velora-shop/velora/pkg/database"
	"github.com/velora-shop/velora/pkg/queue"
)

// LowStockThreshold is the quantity below which a product lands in the
// daily digest.
const LowStockThreshold = 5

// RegisterAll makes every job type deserializable by the queue workers.
// Call once at boot.
func RegisterAll() {
	queue.Register("*jobs.OrderEmailsJob", func() queue.Job { return &OrderEmailsJob{} })
	queue.Register("*jobs.LowStockDigestJob", func() queue.Job { return &LowStockDigestJob{} })
	queue.Register("*jobs.PasswordResetEmailJob", func() queue.Job { return &PasswordResetEmailJob{} })
}

// OrderEmailsJob delivers the two order notification mails. Only the order
// ID rides the queue; the job reloads the order so a worker on another
// process sees fresh data.
type OrderEmailsJob struct {
	OrderID uint `json:"orderId"`
}

func (j *OrderEmailsJob) Handle() error {
	orders := repositories.NewOrderRepository(database.DB)
	order, err := orders.FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("jobs: load order %d: %w", j.OrderID, err)
	}
	return mailers.SendOrderEmails(order)
}

// PasswordResetEmailJob delivers a reset link. The token is embedded in
// the link and is already encrypted, so it is safe on the queue.
type PasswordResetEmailJob struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Link  string `json:"link"`
}

func (j *PasswordResetEmailJob) Handle() error {
	return mailers.SendPasswordReset(j.Name, j.Email, j.Link)
}

// LowStockDigestJob mails the store owner a list of products running low.
// Scheduled daily.
type LowStockDigestJob struct{}

func (j *LowStockDigestJob) Handle() error {
	products := repositories.NewProductRepository(database.DB)
	low, err := products.LowStock(LowStockThreshold)
	if err != nil {
		return fmt.Errorf("jobs: query low stock: %w", err)
	}
	// Most urgent first.
	low = collection.SortBy(low, func(a, b models.Product) bool {
		return a.Quantity < b.Quantity
	})
	return mailers.SendLowStockDigest(low)
}
