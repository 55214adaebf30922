package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/mocks"
)

func TestProfileHandlers_GetProfile(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.GetUserProfileFunc = func(ctx context.Context, userID string) (*domain.User, error) {
		if userID != "user-1" {
			return nil, domain.ErrUserNotFound
		}
		return &domain.User{
			ID:           "user-1",
			Name:         "Test User",
			Email:        "test@example.com",
			PasswordHash: "hashed_password123",
			OTPEmail:     "111111",
			OTPPhone:     "222222",
			Weight:       70,
			Height:       175,
			BMI:          22.86,
		}, nil
	}
	h := NewProfileHandlers(authSvc, mocks.NewMockProfileService(), CookieConfig{})

	w := performRequest(t, http.MethodGet, "/api/users/profile", nil, "test@example.com", h.GetProfile)
	require.Equal(t, http.StatusOK, w.Code)

	user := decodeBody(t, w)["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, 22.86, user["bmi"])
	assert.NotContains(t, w.Body.String(), "hashed_password123")
	assert.NotContains(t, w.Body.String(), "111111")
	assert.NotContains(t, w.Body.String(), "222222")
	assert.Equal(t, []interface{}{}, user["progress"].(map[string]interface{})["activityHistory"])

	authSvc.GetUserProfileFunc = func(ctx context.Context, userID string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	w = performRequest(t, http.MethodGet, "/api/users/profile", nil, "test@example.com", h.GetProfile)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandlers_AddUserDetails(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockProfileService)
		expectedStatus int
		validate       func(t *testing.T, user map[string]interface{})
	}{
		{
			name:           "weight and height compute bmi",
			body:           map[string]interface{}{"weight": 70, "height": 175},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, user map[string]interface{}) {
				assert.Equal(t, 22.86, user["bmi"])
				assert.Equal(t, float64(domain.DefaultDailyCalorieGoal), user["dailyCalorieGoal"])
			},
		},
		{
			name:           "enum fields",
			body:           map[string]interface{}{"gender": "Female", "fitnessGoal": "buildMuscle", "activityLevel": "active"},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, user map[string]interface{}) {
				assert.Equal(t, "Female", user["gender"])
				assert.Equal(t, "buildMuscle", user["fitnessGoal"])
				assert.Equal(t, "active", user["activityLevel"])
				assert.NotContains(t, user, "progress")
			},
		},
		{
			name: "invalid gender",
			body: map[string]interface{}{"gender": "Other"},
			setupMock: func(m *mocks.MockProfileService) {
				m.UpdateDetailsFunc = func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.ProfileResult, error) {
					return nil, update.Validate()
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty body changes nothing",
			body: nil,
			setupMock: func(m *mocks.MockProfileService) {
				m.UpdateDetailsFunc = func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.ProfileResult, error) {
					assert.Equal(t, domain.ProfileUpdate{}, update)
					user := &domain.User{ID: userID, DailyCalorieGoal: domain.DefaultDailyCalorieGoal}
					return &domain.ProfileResult{User: user, Token: &domain.IssuedToken{Value: "mock_token", TTL: time.Hour}}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, user map[string]interface{}) {
				assert.Equal(t, float64(domain.DefaultDailyCalorieGoal), user["dailyCalorieGoal"])
			},
		},
		{
			name:           "wrong type",
			body:           map[string]interface{}{"weight": "heavy"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "user gone",
			body: map[string]interface{}{"weight": 70},
			setupMock: func(m *mocks.MockProfileService) {
				m.UpdateDetailsFunc = func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.ProfileResult, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileSvc := mocks.NewMockProfileService()
			if tt.setupMock != nil {
				tt.setupMock(profileSvc)
			}
			h := NewProfileHandlers(mocks.NewMockAuthService(), profileSvc, CookieConfig{})

			w := performRequest(t, http.MethodPost, "/api/users/profile", tt.body, "test@example.com", h.AddUserDetails)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.NotEmpty(t, decodeBody(t, w)["error"])
				assert.Nil(t, tokenCookie(w))
				return
			}

			data := decodeBody(t, w)["data"].(map[string]interface{})
			assert.Equal(t, true, data["success"])
			assert.Equal(t, "Details updated successfully.", data["message"])
			assert.Equal(t, "mock_token", data["token"])
			require.NotNil(t, tokenCookie(w))
			tt.validate(t, data["user"].(map[string]interface{}))
		})
	}
}

func TestProfileHandlers_Progress(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var stored domain.Progress

	profileSvc := mocks.NewMockProfileService()
	profileSvc.UpdateProgressFunc = func(ctx context.Context, userID string, progress domain.Progress) (*domain.Progress, error) {
		stored = progress
		return &progress, nil
	}
	h := NewProfileHandlers(mocks.NewMockAuthService(), profileSvc, CookieConfig{})

	body := map[string]interface{}{
		"progress": map[string]interface{}{
			"workoutStreak": 3,
			"totalRewards":  40,
			"activityHistory": []map[string]interface{}{
				{"date": day.Format(time.RFC3339), "activityType": "pushups", "duration": 10, "caloriesBurned": 80, "repsCount": 50},
			},
		},
	}
	w := performRequest(t, http.MethodPut, "/api/users/progress", body, "test@example.com", h.UpdateProgress)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, stored.WorkoutStreak)
	require.Len(t, stored.ActivityHistory, 1)
	assert.True(t, stored.ActivityHistory[0].Date.Equal(day))
	assert.Equal(t, float64(3), decodeBody(t, w)["data"].(map[string]interface{})["workoutStreak"])

	w = performRequest(t, http.MethodPut, "/api/users/progress", map[string]interface{}{}, "test@example.com", h.UpdateProgress)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	profileSvc.UpdateProgressFunc = func(ctx context.Context, userID string, progress domain.Progress) (*domain.Progress, error) {
		return nil, assert.AnError
	}
	w = performRequest(t, http.MethodPut, "/api/users/progress", body, "test@example.com", h.UpdateProgress)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decodeBody(t, w)["error"])

	w = performRequest(t, http.MethodGet, "/api/users/progress", nil, "test@example.com", h.GetProgress)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, data["activityHistory"])
	assert.Equal(t, float64(0), data["workoutStreak"])
}

func TestPolicyHandlers(t *testing.T) {
	var added, removed []string
	policies := mocks.NewMockPolicyService()
	policies.AddPolicyFunc = func(role, resource, action string) error {
		added = append(added, role+" "+resource+" "+action)
		return nil
	}
	policies.RemovePolicyFunc = func(role, resource, action string) error {
		removed = append(removed, role+" "+resource+" "+action)
		return assert.AnError
	}
	h := NewPolicyHandlers(policies)

	w := performRequest(t, http.MethodGet, "/api/admin/policies", nil, "", h.List)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].(map[string]interface{})["policies"], 2)

	req := PolicyRequest{Role: "role_user", Path: "/api/users/stats", Method: "GET"}
	w = performRequest(t, http.MethodPost, "/api/admin/policies", req, "", h.Add)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"role_user /api/users/stats GET"}, added)

	w = performRequest(t, http.MethodPost, "/api/admin/policies", PolicyRequest{Role: "role_user"}, "", h.Add)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, http.MethodDelete, "/api/admin/policies", req, "", h.Remove)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, removed, 1)
}
