package domain

import "errors"

// Validation errors
var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidGender        = errors.New("gender must be Male or Female")
	ErrInvalidFitnessGoal   = errors.New("invalid fitness goal")
	ErrInvalidActivityLevel = errors.New("invalid activity level")
	ErrInvalidMeasurement   = errors.New("weight and height must not be negative")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// OTP errors
var (
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenMissing   = errors.New("token not provided")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
)

// IsValidation reports whether err should be surfaced as a 400
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrInvalidGender,
		ErrInvalidFitnessGoal,
		ErrInvalidActivityLevel,
		ErrInvalidMeasurement,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsTokenError reports whether err came from session token validation
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMissing) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed)
}
