package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/mocks"
)

// createPolicyServiceForTest creates a PolicyService with mock Casbin enforcer
func createPolicyServiceForTest(t *testing.T, persist bool) (domain.PolicyService, *mocks.MockCasbinEnforcer) {
	t.Helper()

	enforcer := mocks.NewMockCasbinEnforcer()
	return NewPolicyServiceWithEnforcer(enforcer, persist), enforcer
}

func TestPolicyServiceImpl_AddPolicy(t *testing.T) {
	tests := []struct {
		name          string
		persist       bool
		setupMock     func(*mocks.MockCasbinEnforcer)
		expectedError bool
		expectedSaves int
	}{
		{name: "in-memory policy", persist: false, expectedSaves: 0},
		{name: "persisted policy", persist: true, expectedSaves: 1},
		{
			name:    "enforcer error",
			persist: true,
			setupMock: func(e *mocks.MockCasbinEnforcer) {
				e.AddPolicyFunc = func(params ...interface{}) (bool, error) {
					return false, errors.New("adapter down")
				}
			},
			expectedError: true,
			expectedSaves: 0,
		},
		{
			name:    "save error",
			persist: true,
			setupMock: func(e *mocks.MockCasbinEnforcer) {
				e.SavePolicyFunc = func() error { return errors.New("write failed") }
			},
			expectedError: true,
			expectedSaves: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, enforcer := createPolicyServiceForTest(t, tt.persist)
			if tt.setupMock != nil {
				tt.setupMock(enforcer)
			}

			err := svc.AddPolicy("role_user", "/api/users/profile", "(GET|POST)")
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedSaves, enforcer.SaveCalls)
		})
	}
}

func TestPolicyServiceImpl_RemovePolicy(t *testing.T) {
	svc, _ := createPolicyServiceForTest(t, false)
	require.NoError(t, svc.AddPolicy("role_user", "/api/users/progress", "(GET|PUT)"))
	require.Len(t, svc.GetPolicies(), 1)

	require.NoError(t, svc.RemovePolicy("role_user", "/api/users/progress", "(GET|PUT)"))
	assert.Empty(t, svc.GetPolicies())
}

func TestPolicyServiceImpl_CheckPermission(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t, false)
	require.NoError(t, svc.AddPolicy("role_user", "/api/users/profile", "GET"))

	ok, err := svc.CheckPermission("role_user", "/api/users/profile", "GET")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckPermission("role_guest", "/api/users/profile", "GET")
	require.NoError(t, err)
	assert.False(t, ok)

	enforcer.EnforceFunc = func(rvals ...interface{}) (bool, error) {
		return false, errors.New("model error")
	}
	_, err = svc.CheckPermission("role_user", "/api/users/profile", "GET")
	assert.Error(t, err)
}

func TestSeedPolicies(t *testing.T) {
	policies := [][]string{
		{"role_user", "/api/users/profile", "(GET|POST)"},
		{"role_user", "/api/users/progress", "(GET|PUT)"},
	}

	t.Run("seeds an empty store", func(t *testing.T) {
		svc, _ := createPolicyServiceForTest(t, false)
		require.NoError(t, SeedPolicies(svc, policies))
		assert.Len(t, svc.GetPolicies(), 2)
	})

	t.Run("adds only the missing policies", func(t *testing.T) {
		svc, enforcer := createPolicyServiceForTest(t, false)
		require.NoError(t, svc.AddPolicy("role_admin", "/api/admin/policies", "(GET|POST|DELETE)"))
		require.NoError(t, svc.AddPolicy(policies[0][0], policies[0][1], policies[0][2]))

		var added [][]string
		enforcer.AddPolicyFunc = func(params ...interface{}) (bool, error) {
			rule := make([]string, 0, len(params))
			for _, p := range params {
				rule = append(rule, p.(string))
			}
			added = append(added, rule)
			return true, nil
		}

		require.NoError(t, SeedPolicies(svc, policies))
		assert.Equal(t, [][]string{policies[1]}, added)
	})

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		svc, _ := createPolicyServiceForTest(t, false)
		require.NoError(t, SeedPolicies(svc, policies))
		require.NoError(t, SeedPolicies(svc, policies))
		assert.Len(t, svc.GetPolicies(), 2)
	})
}

func TestPolicyServiceImpl_GetPoliciesError(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t, false)
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return [][]string{{"partial"}}, errors.New("adapter down")
	}
	assert.Nil(t, svc.GetPolicies())
}
