package mocks

import (
	"context"
	"time"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error)
	LoginFunc          func(ctx context.Context, email, password string) (*domain.LoginResult, error)
	VerifyOTPFunc      func(ctx context.Context, email string, channel domain.OTPChannel, code string) (*domain.VerifyResult, error)
	ResendOTPFunc      func(ctx context.Context, email string, channel domain.OTPChannel) error
	LogoutFunc         func(ctx context.Context, userID string) error
	GetUserProfileFunc func(ctx context.Context, userID string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func defaultToken(ttl time.Duration) *domain.IssuedToken {
	return &domain.IssuedToken{Value: "mock_token", TTL: ttl, ExpiresAt: time.Now().Add(ttl)}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	// Default behavior: return a mock user
	return &domain.RegisterResult{
		User: &domain.User{
			ID:    "user-1",
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Role:  domain.DefaultRole,
		},
		Token: defaultToken(24 * time.Hour),
	}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.LoginResult{
		User:  &domain.User{ID: "user-1", Email: email, Role: domain.DefaultRole},
		Token: defaultToken(7 * 24 * time.Hour),
	}, nil
}

// VerifyOTP verifies one OTP channel
func (m *MockAuthService) VerifyOTP(ctx context.Context, email string, channel domain.OTPChannel, code string) (*domain.VerifyResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, channel, code)
	}
	return &domain.VerifyResult{
		User:    &domain.User{ID: "user-1", Email: email},
		Channel: channel,
	}, nil
}

// ResendOTP resends one OTP channel
func (m *MockAuthService) ResendOTP(ctx context.Context, email string, channel domain.OTPChannel) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email, channel)
	}
	return nil
}

// Logout records a logout
func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID)
	}
	return nil
}

// GetUserProfile returns a user profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Email: "test@example.com", Role: domain.DefaultRole}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
