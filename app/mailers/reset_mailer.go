package mailers

import (
	"sync"

	"github.com/velora-shop/velora/pkg/mail"
	"github.com/velora-shop/velora/pkg/metrics"
)

type resetMailData struct {
	Name string
	Link string
}

// SendPasswordReset mails a reset link to the account owner.
func SendPasswordReset(name, email, link string) error {
	var sendErr error
	var wg sync.WaitGroup
	wg.Add(1)

	if err := pool.SubmitWait(func() {
		defer wg.Done()
		sendErr = mail.To(email).
			Subject("Reset your Velora password").
			TemplateString(passwordResetTemplate, resetMailData{Name: name, Link: link}).
			Send()
		if sendErr == nil {
			metrics.EmailsSent.WithLabelValues("password_reset").Inc()
		}
	}); err != nil {
		wg.Done()
		sendErr = err
	}

	wg.Wait()
	return sendErr
}
