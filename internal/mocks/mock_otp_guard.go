package mocks

import (
	"context"
	"time"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// MockOTPGuard implements domain.OTPGuard interface for testing
type MockOTPGuard struct {
	RegisterAttemptFunc func(ctx context.Context, channel domain.OTPChannel, userID string) (int64, error)
	ResetAttemptsFunc   func(ctx context.Context, channel domain.OTPChannel, userID string) error
	AcquireResendFunc   func(ctx context.Context, channel domain.OTPChannel, userID string) (bool, time.Duration, error)

	// Attempts counts RegisterAttempt calls per channel when no func is set
	Attempts map[domain.OTPChannel]int64
}

// NewMockOTPGuard creates a new MockOTPGuard with default behaviors
func NewMockOTPGuard() *MockOTPGuard {
	return &MockOTPGuard{Attempts: make(map[domain.OTPChannel]int64)}
}

// RegisterAttempt records a verification attempt
func (m *MockOTPGuard) RegisterAttempt(ctx context.Context, channel domain.OTPChannel, userID string) (int64, error) {
	if m.RegisterAttemptFunc != nil {
		return m.RegisterAttemptFunc(ctx, channel, userID)
	}
	// Default behavior: count in memory
	if m.Attempts == nil {
		m.Attempts = make(map[domain.OTPChannel]int64)
	}
	m.Attempts[channel]++
	return m.Attempts[channel], nil
}

// ResetAttempts clears the attempt counter
func (m *MockOTPGuard) ResetAttempts(ctx context.Context, channel domain.OTPChannel, userID string) error {
	if m.ResetAttemptsFunc != nil {
		return m.ResetAttemptsFunc(ctx, channel, userID)
	}
	delete(m.Attempts, channel)
	return nil
}

// AcquireResend takes the resend lock
func (m *MockOTPGuard) AcquireResend(ctx context.Context, channel domain.OTPChannel, userID string) (bool, time.Duration, error) {
	if m.AcquireResendFunc != nil {
		return m.AcquireResendFunc(ctx, channel, userID)
	}
	// Default behavior: allowed
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPGuard = (*MockOTPGuard)(nil)
