package mocks

import (
	"context"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// MockProfileService implements domain.ProfileService interface for testing
type MockProfileService struct {
	UpdateDetailsFunc  func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.ProfileResult, error)
	GetProgressFunc    func(ctx context.Context, userID string) (*domain.Progress, error)
	UpdateProgressFunc func(ctx context.Context, userID string, progress domain.Progress) (*domain.Progress, error)
}

// NewMockProfileService creates a new MockProfileService with default behaviors
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{}
}

// UpdateDetails applies a profile update
func (m *MockProfileService) UpdateDetails(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.ProfileResult, error) {
	if m.UpdateDetailsFunc != nil {
		return m.UpdateDetailsFunc(ctx, userID, update)
	}
	user := &domain.User{ID: userID, DailyCalorieGoal: domain.DefaultDailyCalorieGoal}
	update.Apply(user)
	user.RecomputeBMI()
	return &domain.ProfileResult{User: user, Token: defaultToken(0)}, nil
}

// GetProgress returns empty progress
func (m *MockProfileService) GetProgress(ctx context.Context, userID string) (*domain.Progress, error) {
	if m.GetProgressFunc != nil {
		return m.GetProgressFunc(ctx, userID)
	}
	return &domain.Progress{ActivityHistory: []domain.Activity{}}, nil
}

// UpdateProgress echoes the given progress
func (m *MockProfileService) UpdateProgress(ctx context.Context, userID string, progress domain.Progress) (*domain.Progress, error) {
	if m.UpdateProgressFunc != nil {
		return m.UpdateProgressFunc(ctx, userID, progress)
	}
	return &progress, nil
}

// Compile-time interface compliance verification
var _ domain.ProfileService = (*MockProfileService)(nil)
