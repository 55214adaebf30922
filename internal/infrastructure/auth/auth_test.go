package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:               "user-1",
		Name:             "Test User",
		Email:            "test@example.com",
		Phone:            "+15550001111",
		Role:             domain.DefaultRole,
		VerifiedEmail:    true,
		VerifiedPhone:    true,
		Weight:           70,
		Height:           175,
		BMI:              22.86,
		DailyCalorieGoal: 2000,
	}
}

func TestJWTService_IssueAndParse(t *testing.T) {
	svc := NewJWTService("secret", "fittrack", TokenTTLs{})
	user := testUser()

	tests := []struct {
		name         string
		issue        func(*domain.User) (*domain.IssuedToken, error)
		ttl          time.Duration
		expectName   bool
		expectVerify bool
	}{
		{"registration", svc.IssueRegistration, 24 * time.Hour, false, false},
		{"login", svc.IssueLogin, 7 * 24 * time.Hour, true, false},
		{"verified", svc.IssueVerified, 24 * time.Hour, true, true},
		{"profile", svc.IssueProfile, 24 * time.Hour, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.issue(user)
			require.NoError(t, err)
			assert.Equal(t, tt.ttl, token.TTL)
			assert.WithinDuration(t, time.Now().Add(tt.ttl), token.ExpiresAt, 5*time.Second)

			claims, err := svc.Parse(token.Value)
			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.UserID)
			assert.Equal(t, "test@example.com", claims.Email)
			assert.Equal(t, domain.DefaultRole, claims.Role)
			assert.Equal(t, tt.expectVerify, claims.VerifiedEmail)
			assert.Equal(t, tt.expectVerify, claims.VerifiedPhone)
			if tt.expectName {
				assert.Equal(t, "Test User", claims.Name)
			} else {
				assert.Empty(t, claims.Name)
			}
		})
	}
}

func TestJWTService_ClaimShapes(t *testing.T) {
	svc := NewJWTService("secret", "fittrack", TokenTTLs{})
	user := testUser()

	decode := func(token string) jwt.MapClaims {
		claims := jwt.MapClaims{}
		_, _, err := jwt.NewParser().ParseUnverified(token, claims)
		require.NoError(t, err)
		return claims
	}

	reg, err := svc.IssueRegistration(user)
	require.NoError(t, err)
	rc := decode(reg.Value)
	assert.Equal(t, "user-1", rc["userId"])
	assert.NotContains(t, rc, "name")
	assert.NotEmpty(t, rc["jti"])

	login, err := svc.IssueLogin(user)
	require.NoError(t, err)
	lc := decode(login.Value)
	assert.Equal(t, "user-1", lc["id"])
	assert.NotContains(t, lc, "userId")
	assert.NotEqual(t, rc["jti"], lc["jti"])

	profile, err := svc.IssueProfile(user)
	require.NoError(t, err)
	pc := decode(profile.Value)
	assert.Equal(t, 22.86, pc["bmi"])
	assert.Equal(t, float64(70), pc["weight"])
	assert.Equal(t, float64(2000), pc["dailyCalorieGoal"])
}

func TestJWTService_ParseFailures(t *testing.T) {
	svc := NewJWTService("secret", "fittrack", TokenTTLs{})
	impl := svc.(*JWTServiceImpl)
	user := testUser()

	valid, err := svc.IssueLogin(user)
	require.NoError(t, err)

	otherKey, err := NewJWTService("other", "fittrack", TokenTTLs{}).IssueLogin(user)
	require.NoError(t, err)
	otherIssuer, err := NewJWTService("secret", "someone-else", TokenTTLs{}).IssueLogin(user)
	require.NoError(t, err)

	past := &JWTServiceImpl{secretKey: impl.secretKey, issuer: "fittrack", ttls: DefaultTokenTTLs, now: func() time.Time {
		return time.Now().Add(-30 * 24 * time.Hour)
	}}
	expired, err := past.IssueLogin(user)
	require.NoError(t, err)

	noEmail, err := svc.IssueLogin(&domain.User{ID: "user-1"})
	require.NoError(t, err)

	// Flip one signature character away from the trailing padding bits.
	b := []byte(valid.Value)
	i := len(b) - 5
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	tampered := string(b)

	tests := []struct {
		name     string
		token    string
		expected error
	}{
		{"empty", "", domain.ErrTokenMissing},
		{"garbage", "not-a-jwt", domain.ErrTokenMalformed},
		{"wrong key", otherKey.Value, domain.ErrTokenInvalid},
		{"wrong issuer", otherIssuer.Value, domain.ErrTokenInvalid},
		{"expired", expired.Value, domain.ErrTokenExpired},
		{"tampered", tampered, domain.ErrTokenInvalid},
		{"missing email", noEmail.Value, domain.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Parse(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestJWTService_RoleClaim(t *testing.T) {
	svc := NewJWTService("secret", "", TokenTTLs{Login: time.Hour})

	admin := testUser()
	admin.Role = AdminRole
	token, err := svc.IssueLogin(admin)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, token.TTL)

	claims, err := svc.Parse(token.Value)
	require.NoError(t, err)
	assert.Equal(t, AdminRole, claims.Role)

	noRole := testUser()
	noRole.Role = ""
	token, err = svc.IssueRegistration(noRole)
	require.NoError(t, err)
	claims, err = svc.Parse(token.Value)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRole, claims.Role)
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.True(t, svc.Verify(hash, "password123"))
	assert.False(t, svc.Verify(hash, "password124"))
	assert.False(t, svc.Verify("not-a-hash", "password123"))

	second, err := svc.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, second, "hashes are salted")
}

func TestPasswordService_CostFallback(t *testing.T) {
	svc := NewPasswordService(0).(*PasswordServiceImpl)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)

	svc = NewPasswordService(bcrypt.MaxCost + 1).(*PasswordServiceImpl)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}

func TestCasbinService_DefaultModel(t *testing.T) {
	cs, err := NewCasbinService(nil, "")
	require.NoError(t, err)
	for _, p := range DefaultPolicies {
		_, err := cs.E.AddPolicy(p[0], p[1], p[2])
		require.NoError(t, err)
	}

	tests := []struct {
		sub, obj, act string
	}{
		{"role_user", "/api/users/profile", "GET"},
		{"role_user", "/api/users/profile", "POST"},
		{"role_user", "/api/users/progress", "PUT"},
		{"role_user", "/api/users/verifyEmailOtp", "POST"},
		{"role_user", "/api/users/verifyEmailOtp", "GET"},
		{"role_user", "/api/admin/policies", "GET"},
		{"role_admin", "/api/admin/policies", "DELETE"},
		{"role_guest", "/api/users/profile", "GET"},
	}
	want := []bool{true, true, true, true, false, false, true, false}

	for i, tt := range tests {
		ok, err := cs.E.Enforce(tt.sub, tt.obj, tt.act)
		require.NoError(t, err)
		assert.Equal(t, want[i], ok, "%s %s %s", tt.sub, tt.obj, tt.act)
	}
}
