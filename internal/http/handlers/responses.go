package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/http/middleware"
)

// userResponse is the public view of a user. Password hash and OTP codes never leave the service.
type userResponse struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Email            string               `json:"email"`
	Phone            string               `json:"phone"`
	Role             string               `json:"role,omitempty"`
	VerifiedEmail    bool                 `json:"verifiedEmail"`
	VerifiedPhone    bool                 `json:"verifiedPhone"`
	DOB              string               `json:"dob,omitempty"`
	Gender           domain.Gender        `json:"gender,omitempty"`
	Weight           float64              `json:"weight"`
	Height           float64              `json:"height"`
	BMI              float64              `json:"bmi"`
	DailyCalorieGoal int                  `json:"dailyCalorieGoal"`
	FitnessGoal      domain.FitnessGoal   `json:"fitnessGoal,omitempty"`
	ActivityLevel    domain.ActivityLevel `json:"activityLevel,omitempty"`
	Progress         *domain.Progress     `json:"progress,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

func newUserResponse(u *domain.User, withProgress bool) userResponse {
	r := userResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Role:             u.Role,
		VerifiedEmail:    u.VerifiedEmail,
		VerifiedPhone:    u.VerifiedPhone,
		DOB:              u.DOB,
		Gender:           u.Gender,
		Weight:           u.Weight,
		Height:           u.Height,
		BMI:              u.BMI,
		DailyCalorieGoal: u.DailyCalorieGoal,
		FitnessGoal:      u.FitnessGoal,
		ActivityLevel:    u.ActivityLevel,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if withProgress {
		p := u.Progress
		if p.ActivityHistory == nil {
			p.ActivityHistory = []domain.Activity{}
		}
		r.Progress = &p
	}
	return r
}

// CookieConfig controls the attributes of the session cookie
type CookieConfig struct {
	Secure bool
}

func (cc CookieConfig) setToken(c *gin.Context, token *domain.IssuedToken) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.TokenCookie, token.Value, int(token.TTL.Seconds()), "/", "", cc.Secure, true)
}

func (cc CookieConfig) clearToken(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", cc.Secure, true)
}

// respondError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported with fallback only.
func respondError(c *gin.Context, err error, fallback string) {
	var status int
	var msg string
	switch {
	case domain.IsValidation(err):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUserAlreadyExists):
		status, msg = http.StatusBadRequest, "User already registered with this email or phone."
	case errors.Is(err, domain.ErrOTPInvalid):
		status, msg = http.StatusBadRequest, "Invalid OTP. Please try again."
	case errors.Is(err, domain.ErrOTPExpired):
		status, msg = http.StatusBadRequest, "OTP has expired. Please request a new one."
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid email or password."
	case domain.IsTokenError(err):
		status, msg = http.StatusUnauthorized, "Invalid token. Please log in again."
	case errors.Is(err, domain.ErrUserNotFound):
		status, msg = http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrOTPMaxAttempts):
		status, msg = http.StatusTooManyRequests, "Maximum OTP attempts exceeded. Try again later."
	case errors.Is(err, domain.ErrOTPResendLimit):
		status, msg = http.StatusTooManyRequests, err.Error()
	default:
		log.Printf("%s: %v", fallback, err)
		status, msg = http.StatusInternalServerError, fallback
	}
	c.JSON(status, gin.H{"error": msg})
}
