package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live on the user
// record; the guard bounds verification attempts and resends.
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	userRepo        domain.UserRepository
	guard           domain.OTPGuard
	config          OTPConfig
	now             func() time.Time
}

type OTPConfig struct {
	Length      int
	TTL         time.Duration // 0 disables expiry
	MaxAttempts int           // 0 disables the limit
	// SMSOverrideRecipient, when set, receives every OTP SMS instead of the user's phone
	SMSOverrideRecipient string
}

// NewOTPService creates a new OTP service
func NewOTPService(notificationSvc domain.NotificationService, userRepo domain.UserRepository, guard domain.OTPGuard, config OTPConfig) domain.OTPService {
	if config.Length <= 0 {
		config.Length = 6
	}
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		userRepo:        userRepo,
		guard:           guard,
		config:          config,
		now:             time.Now,
	}
}

// Generate implements domain.OTPService
func (s *OTPServiceImpl) Generate(ctx context.Context) (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}

// Send implements domain.OTPService. It dispatches the code currently
// stored on user for channel.
func (s *OTPServiceImpl) Send(ctx context.Context, user *domain.User, channel domain.OTPChannel) error {
	message := fmt.Sprintf("Your OTP is %s", user.OTPFor(channel))

	if channel == domain.ChannelEmail {
		if err := s.notificationSvc.SendEmail(ctx, user.Email, "Your OTP Code", message); err != nil {
			return fmt.Errorf("failed to send OTP email: %w", err)
		}
		return nil
	}

	to := user.Phone
	if s.config.SMSOverrideRecipient != "" {
		to = s.config.SMSOverrideRecipient
	}
	if err := s.notificationSvc.SendSMS(ctx, to, message); err != nil {
		return fmt.Errorf("failed to send OTP SMS: %w", err)
	}
	return nil
}

// Verify implements domain.OTPService
func (s *OTPServiceImpl) Verify(ctx context.Context, user *domain.User, channel domain.OTPChannel, code string) error {
	attempts, err := s.guard.RegisterAttempt(ctx, channel, user.ID)
	if err != nil {
		return fmt.Errorf("failed to register attempt: %w", err)
	}
	if s.config.MaxAttempts > 0 && attempts > int64(s.config.MaxAttempts) {
		log.Printf("OTP_MAX_ATTEMPTS: user_id=%s channel=%s attempts=%d", user.ID, channel, attempts)
		return domain.ErrOTPMaxAttempts
	}

	if s.config.TTL > 0 && s.now().After(user.OTPIssuedAt.Add(s.config.TTL)) {
		return domain.ErrOTPExpired
	}

	stored := user.OTPFor(channel)
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return domain.ErrOTPInvalid
	}

	if err := s.guard.ResetAttempts(ctx, channel, user.ID); err != nil {
		log.Printf("failed to reset otp attempts for user %s: %v", user.ID, err)
	}
	return nil
}

// Resend implements domain.OTPService. A fresh code replaces the stored
// one for channel before it is dispatched.
func (s *OTPServiceImpl) Resend(ctx context.Context, user *domain.User, channel domain.OTPChannel) error {
	ok, wait, err := s.guard.AcquireResend(ctx, channel, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check resend window: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: retry in %d seconds", domain.ErrOTPResendLimit, int(wait.Seconds()))
	}

	code, err := s.Generate(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}
	issuedAt := s.now().UTC()
	if err := s.userRepo.SetOTP(ctx, user.ID, channel, code, issuedAt); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	user.SetOTP(channel, code, issuedAt)
	if err := s.guard.ResetAttempts(ctx, channel, user.ID); err != nil {
		log.Printf("failed to reset otp attempts for user %s: %v", user.ID, err)
	}

	return s.Send(ctx, user, channel)
}
