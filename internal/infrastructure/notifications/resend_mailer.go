package notifications

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends email through the Resend API
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a Resend mailer
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from}
}

// SendEmail implements Mailer
func (m *ResendMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
	resp, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	log.Printf("email sent: id=%s to=%s", resp.Id, to)
	return nil
}
