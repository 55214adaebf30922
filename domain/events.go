package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Verification events
	EmailOTPVerifyEvent  AuditEventType = "EMAIL_OTP_VERIFIED"
	EmailOTPFailureEvent AuditEventType = "EMAIL_OTP_VERIFICATION_FAILED"
	PhoneOTPVerifyEvent  AuditEventType = "PHONE_OTP_VERIFIED"
	PhoneOTPFailureEvent AuditEventType = "PHONE_OTP_VERIFICATION_FAILED"
	OTPResendEvent       AuditEventType = "OTP_RESENT"
	UserVerifiedEvent    AuditEventType = "USER_FULLY_VERIFIED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"

	// Profile events
	ProfileUpdatedEvent  AuditEventType = "PROFILE_UPDATED"
	ProgressUpdatedEvent AuditEventType = "PROGRESS_UPDATED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    string                 `json:"user_id,omitempty"`
	Email     string                 `json:"email,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events. Implementations must not block the
// request path for long; callers ignore returned errors after logging them.
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent) error
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}

// VerifyEventFor maps a channel and outcome to its audit event type
func VerifyEventFor(channel OTPChannel, success bool) AuditEventType {
	switch {
	case channel == ChannelEmail && success:
		return EmailOTPVerifyEvent
	case channel == ChannelEmail:
		return EmailOTPFailureEvent
	case success:
		return PhoneOTPVerifyEvent
	default:
		return PhoneOTPFailureEvent
	}
}
