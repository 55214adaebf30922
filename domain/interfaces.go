package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkVerified(ctx context.Context, userID string, channel OTPChannel) error
	SetOTP(ctx context.Context, userID string, channel OTPChannel, code string, issuedAt time.Time) error
	UpdateProgress(ctx context.Context, userID string, progress Progress) error
}

// OTPGuard tracks verification attempts and resend throttling per user and channel
type OTPGuard interface {
	RegisterAttempt(ctx context.Context, channel OTPChannel, userID string) (int64, error)
	ResetAttempts(ctx context.Context, channel OTPChannel, userID string) error
	AcquireResend(ctx context.Context, channel OTPChannel, userID string) (bool, time.Duration, error)
}

// AuthService defines the registration, login and verification workflow
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyOTP(ctx context.Context, email string, channel OTPChannel, code string) (*VerifyResult, error)
	ResendOTP(ctx context.Context, email string, channel OTPChannel) error
	Logout(ctx context.Context, userID string) error
	GetUserProfile(ctx context.Context, userID string) (*User, error)
}

// ProfileService defines profile details and progress operations
type ProfileService interface {
	UpdateDetails(ctx context.Context, userID string, update ProfileUpdate) (*ProfileResult, error)
	GetProgress(ctx context.Context, userID string) (*Progress, error)
	UpdateProgress(ctx context.Context, userID string, progress Progress) (*Progress, error)
}

// OTPService defines OTP operations
type OTPService interface {
	Generate(ctx context.Context) (string, error)
	Send(ctx context.Context, user *User, channel OTPChannel) error
	Verify(ctx context.Context, user *User, channel OTPChannel, code string) error
	Resend(ctx context.Context, user *User, channel OTPChannel) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and validates session tokens. Each issuance
// context carries its own claim set and lifetime.
type TokenService interface {
	IssueRegistration(user *User) (*IssuedToken, error)
	IssueLogin(user *User) (*IssuedToken, error)
	IssueVerified(user *User) (*IssuedToken, error)
	IssueProfile(user *User) (*IssuedToken, error)
	Parse(token string) (*SessionClaims, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(ctx context.Context, to, message string) error
	SendEmail(ctx context.Context, to, subject, body string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// SessionClaims is the identity recovered from any session token
type SessionClaims struct {
	UserID        string
	Email         string
	Name          string
	Phone         string
	Role          string
	VerifiedEmail bool
	VerifiedPhone bool
	IssuedAt      int64
	ExpiresAt     int64
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
