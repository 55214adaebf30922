package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/http/middleware"
)

// ProfileHandlers serves the authenticated profile and progress routes
type ProfileHandlers struct {
	authSvc    domain.AuthService
	profileSvc domain.ProfileService
	cookies    CookieConfig
}

// NewProfileHandlers creates new profile handlers
func NewProfileHandlers(authSvc domain.AuthService, profileSvc domain.ProfileService, cookies CookieConfig) *ProfileHandlers {
	return &ProfileHandlers{authSvc: authSvc, profileSvc: profileSvc, cookies: cookies}
}

// ProfileRequest is a partial profile update; absent fields are left alone
type ProfileRequest struct {
	DOB              *string               `json:"dob"`
	Gender           *domain.Gender        `json:"gender"`
	Weight           *float64              `json:"weight"`
	Height           *float64              `json:"height"`
	DailyCalorieGoal *int                  `json:"dailyCalorieGoal"`
	FitnessGoal      *domain.FitnessGoal   `json:"fitnessGoal"`
	ActivityLevel    *domain.ActivityLevel `json:"activityLevel"`
}

// ProgressRequest replaces the stored progress
type ProgressRequest struct {
	Progress *domain.Progress `json:"progress" binding:"required"`
}

// GetProfile returns the caller's public profile
func (h *ProfileHandlers) GetProfile(c *gin.Context) {
	user, err := h.authSvc.GetUserProfile(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user": newUserResponse(user, true),
		},
	})
}

// AddUserDetails applies a partial profile update and reissues the session token
func (h *ProfileHandlers) AddUserDetails(c *gin.Context) {
	// An empty body is an update that changes nothing.
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload."})
		return
	}

	res, err := h.profileSvc.UpdateDetails(c.Request.Context(), c.GetString(middleware.ContextUserID), domain.ProfileUpdate{
		DOB:              req.DOB,
		Gender:           req.Gender,
		Weight:           req.Weight,
		Height:           req.Height,
		DailyCalorieGoal: req.DailyCalorieGoal,
		FitnessGoal:      req.FitnessGoal,
		ActivityLevel:    req.ActivityLevel,
	})
	if err != nil {
		respondError(c, err, "Server error while updating details.")
		return
	}

	h.cookies.setToken(c, res.Token)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"success": true,
			"message": "Details updated successfully.",
			"user":    newUserResponse(res.User, false),
			"token":   res.Token.Value,
		},
	})
}

// GetProgress returns the caller's progress block
func (h *ProfileHandlers) GetProgress(c *gin.Context) {
	progress, err := h.profileSvc.GetProgress(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": progress})
}

// UpdateProgress replaces the caller's progress block
func (h *ProfileHandlers) UpdateProgress(c *gin.Context) {
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "progress is required."})
		return
	}

	progress, err := h.profileSvc.UpdateProgress(c.Request.Context(), c.GetString(middleware.ContextUserID), *req.Progress)
	if err != nil {
		respondError(c, err, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": progress})
}
