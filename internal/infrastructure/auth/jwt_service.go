package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// TokenTTLs holds the lifetime of each issuance context
type TokenTTLs struct {
	Registration time.Duration
	Login        time.Duration
	Verified     time.Duration
	Profile      time.Duration
}

// DefaultTokenTTLs are the lifetimes used when none are configured
var DefaultTokenTTLs = TokenTTLs{
	Registration: 24 * time.Hour,
	Login:        7 * 24 * time.Hour,
	Verified:     24 * time.Hour,
	Profile:      24 * time.Hour,
}

// registrationClaims is issued right after sign-up
type registrationClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// loginClaims is issued on password login
type loginClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// verifiedClaims is issued once both OTP channels are confirmed
type verifiedClaims struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Name          string `json:"name"`
	VerifiedEmail bool   `json:"verifiedEmail"`
	VerifiedPhone bool   `json:"verifiedPhone"`
	Role          string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// profileClaims is issued after a profile update and snapshots the profile
type profileClaims struct {
	UserID           string  `json:"userId"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Name             string  `json:"name"`
	VerifiedEmail    bool    `json:"verifiedEmail"`
	VerifiedPhone    bool    `json:"verifiedPhone"`
	Height           float64 `json:"height"`
	Weight           float64 `json:"weight"`
	BMI              float64 `json:"bmi"`
	DailyCalorieGoal int     `json:"dailyCalorieGoal"`
	FitnessGoal      string  `json:"fitnessGoal,omitempty"`
	ActivityLevel    string  `json:"activityLevel,omitempty"`
	Role             string  `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// anyClaims decodes every claim set above. Tokens without a role are
// treated as domain.DefaultRole.
type anyClaims struct {
	UserID        string `json:"userId"`
	ID            string `json:"id"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	VerifiedEmail bool   `json:"verifiedEmail"`
	VerifiedPhone bool   `json:"verifiedPhone"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	ttls      TokenTTLs
	now       func() time.Time
}

// NewJWTService creates a new JWT service. Zero TTLs fall back to DefaultTokenTTLs.
func NewJWTService(secretKey, issuer string, ttls TokenTTLs) domain.TokenService {
	if ttls.Registration <= 0 {
		ttls.Registration = DefaultTokenTTLs.Registration
	}
	if ttls.Login <= 0 {
		ttls.Login = DefaultTokenTTLs.Login
	}
	if ttls.Verified <= 0 {
		ttls.Verified = DefaultTokenTTLs.Verified
	}
	if ttls.Profile <= 0 {
		ttls.Profile = DefaultTokenTTLs.Profile
	}
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttls:      ttls,
		now:       time.Now,
	}
}

func (j *JWTServiceImpl) registered(ttl time.Duration) (jwt.RegisteredClaims, time.Time) {
	now := j.now()
	exp := now.Add(ttl)
	return jwt.RegisteredClaims{
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
		ID:        uuid.NewString(),
	}, exp
}

func (j *JWTServiceImpl) sign(claims jwt.Claims, ttl time.Duration, exp time.Time) (*domain.IssuedToken, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return nil, err
	}
	return &domain.IssuedToken{Value: signed, TTL: ttl, ExpiresAt: exp}, nil
}

// IssueRegistration implements domain.TokenService
func (j *JWTServiceImpl) IssueRegistration(user *domain.User) (*domain.IssuedToken, error) {
	rc, exp := j.registered(j.ttls.Registration)
	return j.sign(registrationClaims{
		UserID:           user.ID,
		Email:            user.Email,
		Role:             user.Role,
		RegisteredClaims: rc,
	}, j.ttls.Registration, exp)
}

// IssueLogin implements domain.TokenService
func (j *JWTServiceImpl) IssueLogin(user *domain.User) (*domain.IssuedToken, error) {
	rc, exp := j.registered(j.ttls.Login)
	return j.sign(loginClaims{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Role:             user.Role,
		RegisteredClaims: rc,
	}, j.ttls.Login, exp)
}

// IssueVerified implements domain.TokenService
func (j *JWTServiceImpl) IssueVerified(user *domain.User) (*domain.IssuedToken, error) {
	rc, exp := j.registered(j.ttls.Verified)
	return j.sign(verifiedClaims{
		UserID:           user.ID,
		Email:            user.Email,
		Phone:            user.Phone,
		Name:             user.Name,
		VerifiedEmail:    user.VerifiedEmail,
		VerifiedPhone:    user.VerifiedPhone,
		Role:             user.Role,
		RegisteredClaims: rc,
	}, j.ttls.Verified, exp)
}

// IssueProfile implements domain.TokenService
func (j *JWTServiceImpl) IssueProfile(user *domain.User) (*domain.IssuedToken, error) {
	rc, exp := j.registered(j.ttls.Profile)
	return j.sign(profileClaims{
		UserID:           user.ID,
		Email:            user.Email,
		Phone:            user.Phone,
		Name:             user.Name,
		VerifiedEmail:    user.VerifiedEmail,
		VerifiedPhone:    user.VerifiedPhone,
		Height:           user.Height,
		Weight:           user.Weight,
		BMI:              user.BMI,
		DailyCalorieGoal: user.DailyCalorieGoal,
		FitnessGoal:      string(user.FitnessGoal),
		ActivityLevel:    string(user.ActivityLevel),
		Role:             user.Role,
		RegisteredClaims: rc,
	}, j.ttls.Profile, exp)
}

// Parse implements domain.TokenService
func (j *JWTServiceImpl) Parse(tokenString string) (*domain.SessionClaims, error) {
	if tokenString == "" {
		return nil, domain.ErrTokenMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	var claims anyClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.ID
	}
	if userID == "" || claims.Email == "" {
		return nil, domain.ErrTokenMalformed
	}

	role := claims.Role
	if role == "" {
		role = domain.DefaultRole
	}

	out := &domain.SessionClaims{
		UserID:        userID,
		Email:         claims.Email,
		Name:          claims.Name,
		Phone:         claims.Phone,
		Role:          role,
		VerifiedEmail: claims.VerifiedEmail,
		VerifiedPhone: claims.VerifiedPhone,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return out, nil
}
