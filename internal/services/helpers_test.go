package services

import (
	"testing"
	"time"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/mocks"
)

// authDeps bundles the mock collaborators of an AuthService under test
type authDeps struct {
	userRepo    *mocks.MockUserRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
	audit       *mocks.MockAuditLogger
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T) (domain.AuthService, *authDeps) {
	t.Helper()

	deps := &authDeps{
		userRepo:    mocks.NewMockUserRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
		audit:       mocks.NewMockAuditLogger(),
	}
	svc := NewAuthService(deps.userRepo, deps.passwordSvc, deps.tokenSvc, deps.otpSvc, deps.audit)
	return svc, deps
}

// createValidUser creates a registered, unverified user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:               "user-1",
		Name:             "Test User",
		Email:            "test@example.com",
		Phone:            "+1234567890",
		PasswordHash:     "hashed_password123",
		Role:             domain.DefaultRole,
		OTPEmail:         "111111",
		OTPPhone:         "222222",
		OTPIssuedAt:      time.Now().Add(-time.Minute),
		DailyCalorieGoal: domain.DefaultDailyCalorieGoal,
		CreatedAt:        time.Now().Add(-24 * time.Hour), // Created yesterday
		UpdatedAt:        time.Now().Add(-1 * time.Hour),  // Updated 1 hour ago
	}
}

// createVerifiedUser creates a user with both channels verified
func createVerifiedUser(t *testing.T) *domain.User {
	t.Helper()

	user := createValidUser(t)
	user.VerifiedEmail = true
	user.VerifiedPhone = true
	return user
}

func ptr[T any](v T) *T { return &v }
