package notifications

import (
	"context"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// Dispatcher implements domain.NotificationService by routing SMS and
// email to their respective senders
type Dispatcher struct {
	sms  SMSSender
	mail Mailer
}

// NewDispatcher combines an SMS sender and a mailer
func NewDispatcher(sms SMSSender, mail Mailer) domain.NotificationService {
	return &Dispatcher{sms: sms, mail: mail}
}

// SendSMS implements domain.NotificationService
func (d *Dispatcher) SendSMS(ctx context.Context, to, message string) error {
	return d.sms.SendSMS(ctx, to, message)
}

// SendEmail implements domain.NotificationService
func (d *Dispatcher) SendEmail(ctx context.Context, to, subject, body string) error {
	return d.mail.SendEmail(ctx, to, subject, body)
}
