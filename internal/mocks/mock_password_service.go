package mocks

import (
	"strings"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash prefixes the password with "hashed_"
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

// Verify checks the "hashed_" convention used by Hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return strings.TrimPrefix(hashedPassword, "hashed_") == password && strings.HasPrefix(hashedPassword, "hashed_")
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
