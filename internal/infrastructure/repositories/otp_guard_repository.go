package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// OTPGuardRepository implements domain.OTPGuard using Redis counters
type OTPGuardRepository struct {
	client        *redis.Client
	prefix        string
	attemptWindow time.Duration
	resendWindow  time.Duration
}

// NewOTPGuardRepository creates a Redis-backed OTP guard. Attempt counters
// expire after attemptWindow and resend locks after resendWindow. A window
// of zero or less disables the matching check.
func NewOTPGuardRepository(client *redis.Client, attemptWindow, resendWindow time.Duration) domain.OTPGuard {
	return &OTPGuardRepository{
		client:        client,
		prefix:        "otp:",
		attemptWindow: attemptWindow,
		resendWindow:  resendWindow,
	}
}

func (r *OTPGuardRepository) attemptKey(channel domain.OTPChannel, userID string) string {
	return fmt.Sprintf("%satt:%s:%s", r.prefix, channel, userID)
}

func (r *OTPGuardRepository) resendKey(channel domain.OTPChannel, userID string) string {
	return fmt.Sprintf("%sres:%s:%s", r.prefix, channel, userID)
}

// RegisterAttempt implements domain.OTPGuard. It returns the attempt count
// within the current window, this attempt included.
func (r *OTPGuardRepository) RegisterAttempt(ctx context.Context, channel domain.OTPChannel, userID string) (int64, error) {
	if r.attemptWindow <= 0 {
		return 1, nil
	}

	key := r.attemptKey(channel, userID)
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	}); err != nil {
		return 0, fmt.Errorf("failed to register otp attempt: %w", err)
	}

	// The window starts with the first attempt. A counter left without a
	// TTL by an earlier failed EXPIRE gets one here.
	if ttl.Val() < 0 {
		if err := r.client.Expire(ctx, key, r.attemptWindow).Err(); err != nil {
			return incr.Val(), fmt.Errorf("failed to set otp attempt window: %w", err)
		}
	}
	return incr.Val(), nil
}

// ResetAttempts implements domain.OTPGuard
func (r *OTPGuardRepository) ResetAttempts(ctx context.Context, channel domain.OTPChannel, userID string) error {
	return r.client.Del(ctx, r.attemptKey(channel, userID)).Err()
}

// AcquireResend implements domain.OTPGuard. When the lock is already held it
// returns false together with the time left until the next resend is allowed.
func (r *OTPGuardRepository) AcquireResend(ctx context.Context, channel domain.OTPChannel, userID string) (bool, time.Duration, error) {
	if r.resendWindow <= 0 {
		return true, 0, nil
	}

	key := r.resendKey(channel, userID)
	ok, err := r.client.SetNX(ctx, key, time.Now().Unix(), r.resendWindow).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to acquire resend lock: %w", err)
	}
	if ok {
		return true, 0, nil
	}
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		ttl = 0
	}
	return false, ttl, nil
}

// NoopOTPGuard allows every attempt and resend. It is used when no Redis
// address is configured.
type NoopOTPGuard struct{}

// RegisterAttempt implements domain.OTPGuard
func (NoopOTPGuard) RegisterAttempt(context.Context, domain.OTPChannel, string) (int64, error) {
	return 1, nil
}

// ResetAttempts implements domain.OTPGuard
func (NoopOTPGuard) ResetAttempts(context.Context, domain.OTPChannel, string) error { return nil }

// AcquireResend implements domain.OTPGuard
func (NoopOTPGuard) AcquireResend(context.Context, domain.OTPChannel, string) (bool, time.Duration, error) {
	return true, 0, nil
}
