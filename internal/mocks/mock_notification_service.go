package mocks

import (
	"context"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// SentMessage is one message captured by MockNotificationService
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc   func(ctx context.Context, to, message string) error
	SendEmailFunc func(ctx context.Context, to, subject, body string) error

	SMS    []SentMessage
	Emails []SentMessage
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS records or delegates an SMS
func (m *MockNotificationService) SendSMS(ctx context.Context, to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(ctx, to, message)
	}
	m.SMS = append(m.SMS, SentMessage{To: to, Body: message})
	return nil
}

// SendEmail records or delegates an email
func (m *MockNotificationService) SendEmail(ctx context.Context, to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, to, subject, body)
	}
	m.Emails = append(m.Emails, SentMessage{To: to, Subject: subject, Body: body})
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
