package mocks

import (
	"strings"
	"time"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens have the form "<kind>:<userID>:<email>".
type MockTokenService struct {
	IssueRegistrationFunc func(user *domain.User) (*domain.IssuedToken, error)
	IssueLoginFunc        func(user *domain.User) (*domain.IssuedToken, error)
	IssueVerifiedFunc     func(user *domain.User) (*domain.IssuedToken, error)
	IssueProfileFunc      func(user *domain.User) (*domain.IssuedToken, error)
	ParseFunc             func(token string) (*domain.SessionClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func mockToken(kind string, user *domain.User, ttl time.Duration) *domain.IssuedToken {
	return &domain.IssuedToken{
		Value:     kind + ":" + user.ID + ":" + user.Email,
		TTL:       ttl,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// IssueRegistration issues a registration token
func (m *MockTokenService) IssueRegistration(user *domain.User) (*domain.IssuedToken, error) {
	if m.IssueRegistrationFunc != nil {
		return m.IssueRegistrationFunc(user)
	}
	return mockToken("registration", user, 24*time.Hour), nil
}

// IssueLogin issues a login token
func (m *MockTokenService) IssueLogin(user *domain.User) (*domain.IssuedToken, error) {
	if m.IssueLoginFunc != nil {
		return m.IssueLoginFunc(user)
	}
	return mockToken("login", user, 7*24*time.Hour), nil
}

// IssueVerified issues a verified token
func (m *MockTokenService) IssueVerified(user *domain.User) (*domain.IssuedToken, error) {
	if m.IssueVerifiedFunc != nil {
		return m.IssueVerifiedFunc(user)
	}
	return mockToken("verified", user, 24*time.Hour), nil
}

// IssueProfile issues a profile token
func (m *MockTokenService) IssueProfile(user *domain.User) (*domain.IssuedToken, error) {
	if m.IssueProfileFunc != nil {
		return m.IssueProfileFunc(user)
	}
	return mockToken("profile", user, 24*time.Hour), nil
}

// Parse decodes tokens produced by the default issuers
func (m *MockTokenService) Parse(token string) (*domain.SessionClaims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	if token == "" {
		return nil, domain.ErrTokenMissing
	}
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.SessionClaims{UserID: parts[1], Email: parts[2], Role: domain.DefaultRole}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
