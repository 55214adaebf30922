package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	auditLogger domain.AuditLogger
}

// NewAuthService creates a new auth service. auditLogger may be nil.
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	auditLogger domain.AuditLogger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		auditLogger: auditLogger,
	}
}

// Register implements domain.AuthService. The user record is committed
// before the OTPs are dispatched, so a delivery failure leaves it in place.
func (s *AuthServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	// Check if user already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	otpEmail, err := s.otpSvc.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate email OTP: %w", err)
	}
	otpPhone, err := s.otpSvc.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate phone OTP: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		PasswordHash:     hashedPassword,
		Role:             domain.DefaultRole,
		OTPEmail:         otpEmail,
		OTPPhone:         otpPhone,
		OTPIssuedAt:      now,
		DailyCalorieGoal: domain.DefaultDailyCalorieGoal,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenSvc.IssueRegistration(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.otpSvc.Send(ctx, user, domain.ChannelEmail); err != nil {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).WithEmail(user.Email).WithError(err))
		return nil, err
	}
	if err := s.otpSvc.Send(ctx, user, domain.ChannelPhone); err != nil {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).WithPhone(user.Phone).WithError(err))
		return nil, err
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithEmail(user.Email).
		WithPhone(user.Phone))

	return &domain.RegisterResult{User: user, Token: token}, nil
}

// Login implements domain.AuthService. Verification state is not consulted.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, "").WithEmail(email).WithError(err))
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(email).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenSvc.IssueLogin(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(user.Email))
	return &domain.LoginResult{User: user, Token: token}, nil
}

// VerifyOTP implements domain.AuthService. A verified token is issued only
// once both channels are confirmed.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email string, channel domain.OTPChannel, code string) (*domain.VerifyResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: %s otp is required", domain.ErrValidation, channel)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.otpSvc.Verify(ctx, user, channel, code); err != nil {
		s.logEvent(ctx, domain.NewAuditEvent(domain.VerifyEventFor(channel, false), user.ID).
			WithEmail(user.Email).
			WithError(err))
		return nil, err
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID, channel); err != nil {
		return nil, fmt.Errorf("failed to mark %s verified: %w", channel, err)
	}
	user.MarkVerified(channel)

	log.Printf("%s_VERIFIED: user_id=%s", strings.ToUpper(string(channel)), user.ID)
	s.logEvent(ctx, domain.NewAuditEvent(domain.VerifyEventFor(channel, true), user.ID).WithEmail(user.Email))

	result := &domain.VerifyResult{User: user, Channel: channel}
	if !user.FullyVerified() {
		return result, nil
	}

	token, err := s.tokenSvc.IssueVerified(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	result.FullyVerified = true
	result.Token = token

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserVerifiedEvent, user.ID).
		WithEmail(user.Email).
		WithPhone(user.Phone))
	return result, nil
}

// ResendOTP implements domain.AuthService
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string, channel domain.OTPChannel) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.otpSvc.Resend(ctx, user, channel); err != nil {
		s.logEvent(ctx, domain.NewAuditEvent(domain.OTPResendEvent, user.ID).
			WithMetadata("channel", string(channel)).
			WithError(err))
		return err
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.OTPResendEvent, user.ID).WithMetadata("channel", string(channel)))
	return nil
}

// Logout implements domain.AuthService. Tokens are stateless, so there is
// nothing to revoke; the event is recorded when the caller is known.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID string) error {
	if userID != "" {
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, userID))
	}
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	logAudit(ctx, s.auditLogger, event)
}

// logAudit records event on l. Failures are logged and never returned.
func logAudit(ctx context.Context, l domain.AuditLogger, event *domain.AuditEvent) {
	if l == nil {
		return
	}
	if err := l.LogEvent(ctx, event); err != nil {
		log.Printf("audit: failed to record %s for user %s: %v", event.EventType, event.UserID, err)
	}
}
