package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends email through the SendGrid v3 API
type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendGridMailer creates a SendGrid mailer
func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Fitness Tracker", from),
	}
}

// SendEmail implements Mailer
func (m *SendGridMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), body, "")
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
