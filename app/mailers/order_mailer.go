// Package mailers renders and delivers Velora's transactional emails.
// Deliveries go through a bounded worker pool so a slow SMTP server can
// never pile up goroutines.
package mailers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/config"
	"github.com/velora-shop/velora/pkg/mail"
	"github.com/velora-shop/velora/pkg/metrics"
	"github.com/velora-shop/velora/pkg/workerpool"
)

// pool caps concurrent SMTP connections.
var pool = workerpool.New(4)

type orderMailData struct {
	Name  string
	Email string
	Order models.Order
}

// SendOrderEmails delivers the customer confirmation and the store-owner
// notification for a placed order. Both mails go out concurrently and the
// call waits for both; failures are joined so the caller (a queue job) can
// retry.
func SendOrderEmails(order models.Order) error {
	if order.User == nil {
		return fmt.Errorf("mailers: order %d has no user loaded", order.ID)
	}

	data := orderMailData{
		Name:  order.User.FullName(),
		Email: order.User.Email,
		Order: order,
	}

	var (
		wg          sync.WaitGroup
		custErr     error
		ownerErr    error
		ownerEmail  = config.StoreOwnerEmail()
		custSubject = fmt.Sprintf("Your Velora order #%d", order.ID)
	)

	wg.Add(2)

	if err := pool.SubmitWait(func() {
		defer wg.Done()
		custErr = mail.To(data.Email).
			Subject(custSubject).
			TemplateString(customerOrderTemplate, data).
			Send()
		if custErr == nil {
			metrics.EmailsSent.WithLabelValues("order_customer").Inc()
		}
	}); err != nil {
		wg.Done()
		custErr = err
	}

	if err := pool.SubmitWait(func() {
		defer wg.Done()
		ownerErr = mail.To(ownerEmail).
			Subject(fmt.Sprintf("New order #%d from %s", order.ID, data.Name)).
			TemplateString(ownerOrderTemplate, data).
			Send()
		if ownerErr == nil {
			metrics.EmailsSent.WithLabelValues("order_owner").Inc()
		}
	}); err != nil {
		wg.Done()
		ownerErr = err
	}

	wg.Wait()
	return errors.Join(custErr, ownerErr)
}

// SendLowStockDigest mails the store owner the list of products whose
// stock fell below the reorder threshold.
func SendLowStockDigest(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	var sendErr error
	var wg sync.WaitGroup
	wg.Add(1)

	if err := pool.SubmitWait(func() {
		defer wg.Done()
		sendErr = mail.To(config.StoreOwnerEmail()).
			Subject(fmt.Sprintf("Low stock: %d products need a reorder", len(products))).
			TemplateString(lowStockTemplate, struct{ Products []models.Product }{products}).
			Send()
		if sendErr == nil {
			metrics.EmailsSent.WithLabelValues("low_stock").Inc()
		}
	}); err != nil {
		wg.Done()
		sendErr = err
	}

	wg.Wait()
	return sendErr
}
