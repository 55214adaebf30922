package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/http/middleware"
)

// RedirectAfterVerification is where clients go once both channels are verified
const RedirectAfterVerification = "/studentregister2"

// AuthHandlers handles registration, login and verification requests
type AuthHandlers struct {
	authSvc domain.AuthService
	cookies CookieConfig
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, cookies CookieConfig) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, cookies: cookies}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EmailOTPRequest carries the email verification code
type EmailOTPRequest struct {
	EmailOTP string `json:"emailOtp" binding:"required"`
}

// PhoneOTPRequest carries the phone verification code
type PhoneOTPRequest struct {
	PhoneOTP string `json:"phoneOtp" binding:"required"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}

	res, err := h.authSvc.Register(c.Request.Context(), domain.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err, "An unexpected error occurred during registration.")
		return
	}

	h.cookies.setToken(c, res.Token)
	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message": "User registered successfully.",
			"user": gin.H{
				"id":    res.User.ID,
				"name":  res.User.Name,
				"email": res.User.Email,
				"phone": res.User.Phone,
			},
			"token": res.Token.Value,
		},
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	res, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "An unexpected error occurred.")
		return
	}

	h.cookies.setToken(c, res.Token)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Login successful.",
			"token":   res.Token.Value,
			"user": gin.H{
				"userId": res.User.ID,
			},
		},
	})
}

// Logout clears the session cookie. It always succeeds.
func (h *AuthHandlers) Logout(c *gin.Context) {
	// Logout needs no valid session; decode the caller only for the audit trail.
	userID := ""
	if v, ok := c.Get(middleware.ContextUserID); ok {
		userID, _ = v.(string)
	}
	if err := h.authSvc.Logout(c.Request.Context(), userID); err != nil {
		log.Printf("LOGOUT_ERROR: user_id=%s error=%v", userID, err)
	}

	h.cookies.clearToken(c)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logout successful.",
		},
	})
}

// VerifyEmailOTP handles email code verification for the session's user
func (h *AuthHandlers) VerifyEmailOTP(c *gin.Context) {
	var req EmailOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "emailOtp is required."})
		return
	}
	h.verify(c, domain.ChannelEmail, req.EmailOTP)
}

// VerifyPhoneOTP handles phone code verification for the session's user
func (h *AuthHandlers) VerifyPhoneOTP(c *gin.Context) {
	var req PhoneOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phoneOtp is required."})
		return
	}
	h.verify(c, domain.ChannelPhone, req.PhoneOTP)
}

func (h *AuthHandlers) verify(c *gin.Context, channel domain.OTPChannel, code string) {
	email := c.GetString(middleware.ContextUserEmail)

	res, err := h.authSvc.VerifyOTP(c.Request.Context(), email, channel, code)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Server error during %s OTP verification.", channel))
		return
	}

	if !res.FullyVerified {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"message": awaitingMessage(channel),
			},
		})
		return
	}

	h.cookies.setToken(c, res.Token)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":  "Both OTPs verified. Redirecting...",
			"userId":   res.User.ID,
			"redirect": RedirectAfterVerification,
			"token":    res.Token.Value,
		},
	})
}

func awaitingMessage(verified domain.OTPChannel) string {
	if verified == domain.ChannelEmail {
		return "Email OTP verified. Awaiting phone verification."
	}
	return "Phone OTP verified. Awaiting email verification."
}

// ResendEmailOTP issues a fresh email code
func (h *AuthHandlers) ResendEmailOTP(c *gin.Context) {
	h.resend(c, domain.ChannelEmail)
}

// ResendPhoneOTP issues a fresh phone code
func (h *AuthHandlers) ResendPhoneOTP(c *gin.Context) {
	h.resend(c, domain.ChannelPhone)
}

func (h *AuthHandlers) resend(c *gin.Context, channel domain.OTPChannel) {
	email := c.GetString(middleware.ContextUserEmail)
	if err := h.authSvc.ResendOTP(c.Request.Context(), email, channel); err != nil {
		respondError(c, err, fmt.Sprintf("Failed to resend %s OTP.", channel))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": fmt.Sprintf("A new %s OTP has been sent.", channel),
		},
	})
}
