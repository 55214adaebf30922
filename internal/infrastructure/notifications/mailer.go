package notifications

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Mailer delivers plain-text email
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// MailOptions selects and configures an email provider
type MailOptions struct {
	Provider       string // sendgrid | resend | ses | log
	From           string
	SendGridAPIKey string
	ResendAPIKey   string
	AWSRegion      string
}

// NewMailer builds the Mailer named by opts.Provider
func NewMailer(ctx context.Context, opts MailOptions) (Mailer, error) {
	switch strings.ToLower(opts.Provider) {
	case "", "log":
		return LogMailer{}, nil
	case "sendgrid":
		if opts.SendGridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid mailer requires an api key")
		}
		return NewSendGridMailer(opts.SendGridAPIKey, opts.From), nil
	case "resend":
		if opts.ResendAPIKey == "" {
			return nil, fmt.Errorf("resend mailer requires an api key")
		}
		return NewResendMailer(opts.ResendAPIKey, opts.From), nil
	case "ses":
		return NewSESMailer(ctx, opts.AWSRegion, opts.From)
	default:
		return nil, fmt.Errorf("unknown mail provider %q", opts.Provider)
	}
}

// LogMailer writes emails to the process log. Used in development.
type LogMailer struct{}

// SendEmail implements Mailer
func (LogMailer) SendEmail(_ context.Context, to, subject, body string) error {
	log.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s", to, subject, body)
	return nil
}
