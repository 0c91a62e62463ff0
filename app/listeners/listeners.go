// Package listeners wires domain events to their side effects.
package listeners

import (
	"github.com/velora-shop/velora/app/jobs"
	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/app/realtime"
	"github.com/velora-shop/velora/app/services"
	"github.com/velora-shop/velora/pkg/event"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/queue"
)

// Register hooks up all event listeners. Call once at boot.
func Register() {
	event.Listen(services.EventOrderPlaced, onOrderPlaced)
	event.Listen(services.EventPasswordResetRequested, onPasswordResetRequested)
}

// onPasswordResetRequested queues the reset-link email.
func onPasswordResetRequested(payload interface{}) {
	reset, ok := payload.(services.PasswordReset)
	if !ok {
		logger.Warn("listeners: password reset payload has wrong type")
		return
	}

	job := &jobs.PasswordResetEmailJob{Name: reset.Name, Email: reset.Email, Link: reset.Link}
	if err := queue.Dispatch(job); err != nil {
		logger.Error("listeners: queue password reset email", "error", err)
	}
}

// onOrderPlaced runs after the order transaction committed: queue the
// notification mails and push stock deltas to admin dashboards. Neither can
// affect the committed order.
func onOrderPlaced(payload interface{}) {
	order, ok := payload.(models.Order)
	if !ok {
		logger.Warn("listeners: order.placed payload is not an order")
		return
	}

	if err := queue.Dispatch(&jobs.OrderEmailsJob{OrderID: order.ID}); err != nil {
		logger.Error("listeners: queue order emails", "order_id", order.ID, "error", err)
	}

	realtime.BroadcastOrderStock(order)
}
