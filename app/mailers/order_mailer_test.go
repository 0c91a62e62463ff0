package mailers_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-shop/velora/app/mailers"
	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/pkg/mail"
)

// recorder captures deliveries instead of speaking SMTP.
type recorder struct {
	mu   sync.Mutex
	sent []*mail.Message
}

func (r *recorder) send(m *mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return nil
}

func (r *recorder) bySubject(fragment string) *mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.sent {
		if strings.Contains(m.SubjectLine(), fragment) {
			return m
		}
	}
	return nil
}

func interceptMail(t *testing.T) *recorder {
	t.Helper()
	rec := &recorder{}
	prev := mail.SetSender(rec.send)
	t.Cleanup(func() { mail.SetSender(prev) })
	return rec
}

func sampleOrder() models.Order {
	user := models.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
	}
	coat := models.Product{Name: "Classic Lab Coat", Quantity: 8}
	order := models.Order{
		UserID:    1,
		User:      &user,
		Total:     80,
		Status:    "pending",
		NumberOne: "0123456789",
		Address:   "12 Harbor Lane",
		City:      "Chattogram",
		State:     "Chattogram",
		Country:   "Bangladesh",
		PostCode:  "4000",
		Items: []models.OrderItem{
			{ProductID: 1, Product: &coat, Quantity: 2, Size: "M", UnitPrice: 40},
		},
	}
	order.ID = 7
	return order
}

func TestSendOrderEmailsDeliversBoth(t *testing.T) {
	rec := interceptMail(t)

	require.NoError(t, mailers.SendOrderEmails(sampleOrder()))

	rec.mu.Lock()
	count := len(rec.sent)
	rec.mu.Unlock()
	require.Equal(t, 2, count)

	customer := rec.bySubject("Your Velora order #7")
	require.NotNil(t, customer)
	assert.Contains(t, customer.Recipients(), "grace@example.com")
	assert.Contains(t, customer.HTML(), "Classic Lab Coat")
	assert.Contains(t, customer.HTML(), "80.00")

	owner := rec.bySubject("New order #7")
	require.NotNil(t, owner)
	assert.Contains(t, owner.HTML(), "Grace Hopper")
	assert.Contains(t, owner.HTML(), "0123456789")
}

func TestSendOrderEmailsRequiresUser(t *testing.T) {
	interceptMail(t)

	order := sampleOrder()
	order.User = nil
	assert.Error(t, mailers.SendOrderEmails(order))
}

func TestSendLowStockDigest(t *testing.T) {
	rec := interceptMail(t)

	err := mailers.SendLowStockDigest([]models.Product{
		{Name: "Glass Beaker 500ml", Quantity: 2},
		{Name: "Scrub Cap", Quantity: 4},
	})
	require.NoError(t, err)

	digest := rec.bySubject("Low stock")
	require.NotNil(t, digest)
	assert.Contains(t, digest.HTML(), "Glass Beaker 500ml")
	assert.Contains(t, digest.HTML(), "Scrub Cap")
}

func TestSendLowStockDigestSkipsWhenEmpty(t *testing.T) {
	rec := interceptMail(t)

	require.NoError(t, mailers.SendLowStockDigest(nil))
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Empty(t, rec.sent)
}

func TestSendPasswordReset(t *testing.T) {
	rec := interceptMail(t)

	err := mailers.SendPasswordReset("Grace Hopper", "grace@example.com", "https://shop.example.com/reset-password?token=abc")
	require.NoError(t, err)

	msg := rec.bySubject("Reset your Velora password")
	require.NotNil(t, msg)
	assert.Contains(t, msg.Recipients(), "grace@example.com")
	assert.Contains(t, msg.HTML(), "token=abc")
}
