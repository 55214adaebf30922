package domain

import (
	"math"
	"sort"
	"time"
)

// DefaultDailyCalorieGoal is applied to every newly registered user
const DefaultDailyCalorieGoal = 2000

// DefaultRole is the authorization role assigned at registration
const DefaultRole = "user"

// Gender values accepted on the profile
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether g is one of the accepted genders
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// FitnessGoal values accepted on the profile
type FitnessGoal string

const (
	GoalLoseWeight     FitnessGoal = "loseWeight"
	GoalMaintainWeight FitnessGoal = "maintainWeight"
	GoalGainWeight     FitnessGoal = "gainWeight"
	GoalBuildMuscle    FitnessGoal = "buildMuscle"
)

// Valid reports whether f is one of the accepted goals
func (f FitnessGoal) Valid() bool {
	switch f {
	case GoalLoseWeight, GoalMaintainWeight, GoalGainWeight, GoalBuildMuscle:
		return true
	}
	return false
}

// ActivityLevel values accepted on the profile
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

// Valid reports whether a is one of the accepted activity levels
func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// OTPChannel identifies which contact channel an OTP proves
type OTPChannel string

const (
	ChannelEmail OTPChannel = "email"
	ChannelPhone OTPChannel = "phone"
)

// User represents a registered user of the fitness tracker
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string

	OTPEmail      string
	OTPPhone      string
	OTPIssuedAt   time.Time
	VerifiedEmail bool
	VerifiedPhone bool

	DOB              string
	Gender           Gender
	Weight           float64 // kg
	Height           float64 // cm
	BMI              float64
	DailyCalorieGoal int
	FitnessGoal      FitnessGoal
	ActivityLevel    ActivityLevel

	Progress Progress

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullyVerified is true once both OTP channels have been confirmed
func (u *User) FullyVerified() bool {
	return u.VerifiedEmail && u.VerifiedPhone
}

// OTPFor returns the stored code for a channel
func (u *User) OTPFor(ch OTPChannel) string {
	if ch == ChannelEmail {
		return u.OTPEmail
	}
	return u.OTPPhone
}

// MarkVerified flips the verification flag for a channel
func (u *User) MarkVerified(ch OTPChannel) {
	if ch == ChannelEmail {
		u.VerifiedEmail = true
		return
	}
	u.VerifiedPhone = true
}

// SetOTP replaces the stored code for a channel
func (u *User) SetOTP(ch OTPChannel, code string, issuedAt time.Time) {
	if ch == ChannelEmail {
		u.OTPEmail = code
	} else {
		u.OTPPhone = code
	}
	u.OTPIssuedAt = issuedAt
}

// RecomputeBMI refreshes BMI when both weight and height are positive.
// It returns false and leaves BMI untouched otherwise.
func (u *User) RecomputeBMI() bool {
	if u.Weight <= 0 || u.Height <= 0 {
		return false
	}
	u.BMI = ComputeBMI(u.Weight, u.Height)
	return true
}

// ComputeBMI takes weight in kilograms and height in centimeters and
// returns the body mass index rounded to two decimals.
func ComputeBMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100.0
	return math.Round(weightKg/(h*h)*100) / 100
}

// Activity is one logged workout entry
type Activity struct {
	Date           time.Time `json:"date"`
	ActivityType   string    `json:"activityType"`
	Duration       float64   `json:"duration"` // minutes
	CaloriesBurned float64   `json:"caloriesBurned"`
	RepsCount      int       `json:"repsCount"`
}

// Progress holds the derived counters and activity history of a user
type Progress struct {
	WorkoutStreak   int        `json:"workoutStreak"`
	TotalRewards    int        `json:"totalRewards"`
	LastWorkoutDate *time.Time `json:"lastWorkoutDate,omitempty"`
	ActivityHistory []Activity `json:"activityHistory"`
}

// SortHistory orders the activity history by date, oldest first
func (p *Progress) SortHistory() {
	sort.SliceStable(p.ActivityHistory, func(i, j int) bool {
		return p.ActivityHistory[i].Date.Before(p.ActivityHistory[j].Date)
	})
}

// ProfileUpdate carries a partial profile change. Nil fields are left as they are.
type ProfileUpdate struct {
	DOB              *string
	Gender           *Gender
	Weight           *float64
	Height           *float64
	DailyCalorieGoal *int
	FitnessGoal      *FitnessGoal
	ActivityLevel    *ActivityLevel
}

// Apply copies the present, non-empty fields onto u
func (p ProfileUpdate) Apply(u *User) {
	if p.DOB != nil && *p.DOB != "" {
		u.DOB = *p.DOB
	}
	if p.Gender != nil && *p.Gender != "" {
		u.Gender = *p.Gender
	}
	if p.Weight != nil && *p.Weight != 0 {
		u.Weight = *p.Weight
	}
	if p.Height != nil && *p.Height != 0 {
		u.Height = *p.Height
	}
	if p.DailyCalorieGoal != nil && *p.DailyCalorieGoal != 0 {
		u.DailyCalorieGoal = *p.DailyCalorieGoal
	}
	if p.FitnessGoal != nil && *p.FitnessGoal != "" {
		u.FitnessGoal = *p.FitnessGoal
	}
	if p.ActivityLevel != nil && *p.ActivityLevel != "" {
		u.ActivityLevel = *p.ActivityLevel
	}
}

// Validate rejects enum values outside the accepted sets
func (p ProfileUpdate) Validate() error {
	if p.Gender != nil && *p.Gender != "" && !p.Gender.Valid() {
		return ErrInvalidGender
	}
	if p.FitnessGoal != nil && *p.FitnessGoal != "" && !p.FitnessGoal.Valid() {
		return ErrInvalidFitnessGoal
	}
	if p.ActivityLevel != nil && *p.ActivityLevel != "" && !p.ActivityLevel.Valid() {
		return ErrInvalidActivityLevel
	}
	if p.Weight != nil && *p.Weight < 0 {
		return ErrInvalidMeasurement
	}
	if p.Height != nil && *p.Height < 0 {
		return ErrInvalidMeasurement
	}
	return nil
}

// RegisterRequest carries the registration input
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// RegisterResult is returned on successful registration
type RegisterResult struct {
	User  *User
	Token *IssuedToken
}

// LoginResult is returned on successful login
type LoginResult struct {
	User  *User
	Token *IssuedToken
}

// VerifyResult reports the outcome of an OTP verification.
// Token is set only once both channels are verified.
type VerifyResult struct {
	User          *User
	Channel       OTPChannel
	FullyVerified bool
	Token         *IssuedToken
}

// ProfileResult is returned after a profile update
type ProfileResult struct {
	User  *User
	Token *IssuedToken
}

// IssuedToken is a signed session token with its lifetime
type IssuedToken struct {
	Value     string
	TTL       time.Duration
	ExpiresAt time.Time
}
