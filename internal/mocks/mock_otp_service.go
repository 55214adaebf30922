package mocks

import (
	"context"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc func(ctx context.Context) (string, error)
	SendFunc     func(ctx context.Context, user *domain.User, channel domain.OTPChannel) error
	VerifyFunc   func(ctx context.Context, user *domain.User, channel domain.OTPChannel, code string) error
	ResendFunc   func(ctx context.Context, user *domain.User, channel domain.OTPChannel) error

	// Sent records every channel passed to Send when no func is set
	Sent []domain.OTPChannel
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate returns a fixed code
func (m *MockOTPService) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	// Default behavior: fixed code
	return "123456", nil
}

// Send dispatches the stored code
func (m *MockOTPService) Send(ctx context.Context, user *domain.User, channel domain.OTPChannel) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, user, channel)
	}
	m.Sent = append(m.Sent, channel)
	return nil
}

// Verify compares code against the stored value
func (m *MockOTPService) Verify(ctx context.Context, user *domain.User, channel domain.OTPChannel, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, user, channel, code)
	}
	// Default behavior: plain comparison
	if user.OTPFor(channel) != code {
		return domain.ErrOTPInvalid
	}
	return nil
}

// Resend regenerates and dispatches a code
func (m *MockOTPService) Resend(ctx context.Context, user *domain.User, channel domain.OTPChannel) error {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, user, channel)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
