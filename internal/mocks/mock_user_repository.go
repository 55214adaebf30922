package mocks

import (
	"context"
	"time"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	MarkVerifiedFunc   func(ctx context.Context, userID string, channel domain.OTPChannel) error
	SetOTPFunc         func(ctx context.Context, userID string, channel domain.OTPChannel, code string, issuedAt time.Time) error
	UpdateProgressFunc func(ctx context.Context, userID string, progress domain.Progress) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success with a fixed id
	if user.ID == "" {
		user.ID = "user-1"
	}
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// MarkVerified sets the verification flag for a channel
func (m *MockUserRepository) MarkVerified(ctx context.Context, userID string, channel domain.OTPChannel) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, userID, channel)
	}
	// Default behavior: success
	return nil
}

// SetOTP stores a fresh code for a channel
func (m *MockUserRepository) SetOTP(ctx context.Context, userID string, channel domain.OTPChannel, code string, issuedAt time.Time) error {
	if m.SetOTPFunc != nil {
		return m.SetOTPFunc(ctx, userID, channel, code, issuedAt)
	}
	// Default behavior: success
	return nil
}

// UpdateProgress replaces the stored progress
func (m *MockUserRepository) UpdateProgress(ctx context.Context, userID string, progress domain.Progress) error {
	if m.UpdateProgressFunc != nil {
		return m.UpdateProgressFunc(ctx, userID, progress)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
