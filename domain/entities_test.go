package domain

import (
	"errors"
	"testing"
	"time"
)

func TestComputeBMI(t *testing.T) {
	tests := []struct {
		name        string
		weight      float64
		height      float64
		expected    float64
		description string
	}{
		{"reference case", 70, 175, 22.86, "70kg at 175cm"},
		{"round half up", 80, 180, 24.69, "80kg at 180cm"},
		{"short and light", 45, 150, 20, "45kg at 150cm"},
		{"heavy", 120, 190, 33.24, "120kg at 190cm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeBMI(tt.weight, tt.height); got != tt.expected {
				t.Errorf("%s: ComputeBMI(%v, %v) = %v, want %v", tt.description, tt.weight, tt.height, got, tt.expected)
			}
		})
	}
}

func TestUser_RecomputeBMI(t *testing.T) {
	tests := []struct {
		name      string
		user      User
		expectOK  bool
		expectBMI float64
	}{
		{"both positive", User{Weight: 70, Height: 175}, true, 22.86},
		{"missing height keeps old bmi", User{Weight: 70, BMI: 21.5}, false, 21.5},
		{"missing weight keeps old bmi", User{Height: 175, BMI: 19}, false, 19},
		{"nothing set", User{}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			if ok := u.RecomputeBMI(); ok != tt.expectOK {
				t.Errorf("RecomputeBMI() = %v, want %v", ok, tt.expectOK)
			}
			if u.BMI != tt.expectBMI {
				t.Errorf("BMI = %v, want %v", u.BMI, tt.expectBMI)
			}
		})
	}
}

func TestUser_Verification(t *testing.T) {
	u := &User{OTPEmail: "111111", OTPPhone: "222222"}

	if u.FullyVerified() {
		t.Fatal("new user must not be fully verified")
	}
	if got := u.OTPFor(ChannelEmail); got != "111111" {
		t.Errorf("OTPFor(email) = %q", got)
	}
	if got := u.OTPFor(ChannelPhone); got != "222222" {
		t.Errorf("OTPFor(phone) = %q", got)
	}

	u.MarkVerified(ChannelEmail)
	if !u.VerifiedEmail || u.VerifiedPhone {
		t.Errorf("email verification must only flip verifiedEmail, got email=%v phone=%v", u.VerifiedEmail, u.VerifiedPhone)
	}
	if u.FullyVerified() {
		t.Error("one channel is not enough")
	}

	u.MarkVerified(ChannelPhone)
	if !u.FullyVerified() {
		t.Error("both channels verified should be fully verified")
	}
}

func TestUser_SetOTP(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	u := &User{OTPEmail: "111111", OTPPhone: "222222"}

	u.SetOTP(ChannelPhone, "333333", issued)

	if u.OTPPhone != "333333" {
		t.Errorf("phone code = %q, want 333333", u.OTPPhone)
	}
	if u.OTPEmail != "111111" {
		t.Errorf("email code changed to %q", u.OTPEmail)
	}
	if !u.OTPIssuedAt.Equal(issued) {
		t.Errorf("issued at = %v, want %v", u.OTPIssuedAt, issued)
	}
}

// profileFields is the comparable part of a user touched by ProfileUpdate
type profileFields struct {
	DOB              string
	Gender           Gender
	Weight           float64
	Height           float64
	DailyCalorieGoal int
	FitnessGoal      FitnessGoal
	ActivityLevel    ActivityLevel
}

func fieldsOf(u *User) profileFields {
	return profileFields{u.DOB, u.Gender, u.Weight, u.Height, u.DailyCalorieGoal, u.FitnessGoal, u.ActivityLevel}
}

func TestProfileUpdate_Apply(t *testing.T) {
	str := func(s string) *string { return &s }
	num := func(f float64) *float64 { return &f }
	integer := func(i int) *int { return &i }
	gender := func(g Gender) *Gender { return &g }
	goal := func(g FitnessGoal) *FitnessGoal { return &g }
	level := func(l ActivityLevel) *ActivityLevel { return &l }

	base := func() *User {
		return &User{
			DOB:              "1990-01-01",
			Gender:           GenderMale,
			Weight:           80,
			Height:           180,
			DailyCalorieGoal: DefaultDailyCalorieGoal,
			FitnessGoal:      GoalMaintainWeight,
			ActivityLevel:    ActivitySedentary,
		}
	}

	tests := []struct {
		name        string
		update      ProfileUpdate
		check       func(t *testing.T, u *User)
		description string
	}{
		{
			name:        "empty update",
			update:      ProfileUpdate{},
			description: "nil fields leave everything untouched",
			check: func(t *testing.T, u *User) {
				if fieldsOf(u) != fieldsOf(base()) {
					t.Errorf("user changed: %+v", fieldsOf(u))
				}
			},
		},
		{
			name:        "zero and empty values ignored",
			update:      ProfileUpdate{DOB: str(""), Weight: num(0), DailyCalorieGoal: integer(0), Gender: gender("")},
			description: "zero values mean absent",
			check: func(t *testing.T, u *User) {
				if fieldsOf(u) != fieldsOf(base()) {
					t.Errorf("user changed: %+v", fieldsOf(u))
				}
			},
		},
		{
			name: "every field",
			update: ProfileUpdate{
				DOB:              str("2000-05-05"),
				Gender:           gender(GenderFemale),
				Weight:           num(60),
				Height:           num(165),
				DailyCalorieGoal: integer(1800),
				FitnessGoal:      goal(GoalBuildMuscle),
				ActivityLevel:    level(ActivityVeryActive),
			},
			description: "present fields overwrite",
			check: func(t *testing.T, u *User) {
				want := profileFields{
					DOB:              "2000-05-05",
					Gender:           GenderFemale,
					Weight:           60,
					Height:           165,
					DailyCalorieGoal: 1800,
					FitnessGoal:      GoalBuildMuscle,
					ActivityLevel:    ActivityVeryActive,
				}
				if got := fieldsOf(u); got != want {
					t.Errorf("got %+v, want %+v", got, want)
				}
			},
		},
		{
			name:        "partial",
			update:      ProfileUpdate{Weight: num(72)},
			description: "only weight moves",
			check: func(t *testing.T, u *User) {
				if u.Weight != 72 || u.Height != 180 || u.Gender != GenderMale {
					t.Errorf("unexpected user %+v", u)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base()
			tt.update.Apply(u)
			tt.check(t, u)
		})
	}
}

func TestProfileUpdate_Validate(t *testing.T) {
	gender := func(g Gender) *Gender { return &g }
	goal := func(g FitnessGoal) *FitnessGoal { return &g }
	level := func(l ActivityLevel) *ActivityLevel { return &l }
	num := func(f float64) *float64 { return &f }

	tests := []struct {
		name     string
		update   ProfileUpdate
		expected error
	}{
		{"empty", ProfileUpdate{}, nil},
		{"valid enums", ProfileUpdate{Gender: gender(GenderFemale), FitnessGoal: goal(GoalLoseWeight), ActivityLevel: level(ActivityLight)}, nil},
		{"empty enum ignored", ProfileUpdate{Gender: gender("")}, nil},
		{"bad gender", ProfileUpdate{Gender: gender("male")}, ErrInvalidGender},
		{"bad goal", ProfileUpdate{FitnessGoal: goal("getFit")}, ErrInvalidFitnessGoal},
		{"bad level", ProfileUpdate{ActivityLevel: level("extreme")}, ErrInvalidActivityLevel},
		{"negative weight", ProfileUpdate{Weight: num(-1)}, ErrInvalidMeasurement},
		{"negative height", ProfileUpdate{Height: num(-5)}, ErrInvalidMeasurement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if !errors.Is(err, tt.expected) {
				t.Errorf("Validate() = %v, want %v", err, tt.expected)
			}
			if tt.expected != nil && !IsValidation(err) {
				t.Errorf("%v should be a validation error", err)
			}
		})
	}
}

func TestProgress_SortHistory(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	p := Progress{ActivityHistory: []Activity{
		{Date: d(3), ActivityType: "run"},
		{Date: d(1), ActivityType: "pushups"},
		{Date: d(2), ActivityType: "squats"},
		{Date: d(1), ActivityType: "plank"},
	}}

	p.SortHistory()

	want := []string{"pushups", "plank", "squats", "run"}
	for i, a := range p.ActivityHistory {
		if a.ActivityType != want[i] {
			t.Errorf("position %d = %s, want %s", i, a.ActivityType, want[i])
		}
	}
}
