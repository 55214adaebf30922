package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Phone        string `gorm:"uniqueIndex;size:32;not null"`
	PasswordHash string `gorm:"column:password;not null"`
	Role         string `gorm:"index;size:64"`

	OTPEmail      string `gorm:"column:otp_email;size:16"`
	OTPPhone      string `gorm:"column:otp_phone;size:16"`
	OTPIssuedAt   time.Time
	VerifiedEmail bool `gorm:"default:false"`
	VerifiedPhone bool `gorm:"default:false"`

	DOB              string `gorm:"column:dob;size:32"`
	Gender           string `gorm:"size:16"`
	Weight           float64
	Height           float64
	BMI              float64 `gorm:"column:bmi"`
	DailyCalorieGoal int     `gorm:"default:2000"`
	FitnessGoal      string  `gorm:"size:32"`
	ActivityLevel    string  `gorm:"size:32"`

	WorkoutStreak   int
	TotalRewards    int
	LastWorkoutDate *time.Time

	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time      `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when the caller did not
func (u *DBUser) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DBActivity is one row of a user's activity history
type DBActivity struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         string    `gorm:"index;size:36;not null"`
	Date           time.Time `gorm:"index"`
	ActivityType   string    `gorm:"size:64"`
	Duration       float64
	CaloriesBurned float64
	RepsCount      int
}

// TableName returns the table name for GORM
func (DBActivity) TableName() string {
	return "user_activities"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var activities []DBActivity
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", dbUser.ID).
		Order("date asc").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return r.dbToDomain(&dbUser, activities), nil
}

// Update implements domain.UserRepository. Activity history is left to UpdateProgress.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	dbUser.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(dbUser).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(dbUser)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// MarkVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkVerified(ctx context.Context, userID string, channel domain.OTPChannel) error {
	column := "verified_phone"
	if channel == domain.ChannelEmail {
		column = "verified_email"
	}
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update(column, true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetOTP implements domain.UserRepository. Only the channel's code and the
// issue time are written.
func (r *UserRepositoryImpl) SetOTP(ctx context.Context, userID string, channel domain.OTPChannel, code string, issuedAt time.Time) error {
	column := "otp_phone"
	if channel == domain.ChannelEmail {
		column = "otp_email"
	}
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]interface{}{
		column:          code,
		"otp_issued_at": issuedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateProgress implements domain.UserRepository. The stored history is
// replaced wholesale inside one transaction.
func (r *UserRepositoryImpl) UpdateProgress(ctx context.Context, userID string, progress domain.Progress) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"workout_streak":    progress.WorkoutStreak,
			"total_rewards":     progress.TotalRewards,
			"last_workout_date": progress.LastWorkoutDate,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}

		if err := tx.Where("user_id = ?", userID).Delete(&DBActivity{}).Error; err != nil {
			return err
		}
		if len(progress.ActivityHistory) == 0 {
			return nil
		}
		rows := make([]DBActivity, 0, len(progress.ActivityHistory))
		for _, a := range progress.ActivityHistory {
			rows = append(rows, DBActivity{
				UserID:         userID,
				Date:           a.Date,
				ActivityType:   a.ActivityType,
				Duration:       a.Duration,
				CaloriesBurned: a.CaloriesBurned,
				RepsCount:      a.RepsCount,
			})
		}
		return tx.Create(&rows).Error
	})
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Phone:            user.Phone,
		PasswordHash:     user.PasswordHash,
		Role:             user.Role,
		OTPEmail:         user.OTPEmail,
		OTPPhone:         user.OTPPhone,
		OTPIssuedAt:      user.OTPIssuedAt,
		VerifiedEmail:    user.VerifiedEmail,
		VerifiedPhone:    user.VerifiedPhone,
		DOB:              user.DOB,
		Gender:           string(user.Gender),
		Weight:           user.Weight,
		Height:           user.Height,
		BMI:              user.BMI,
		DailyCalorieGoal: user.DailyCalorieGoal,
		FitnessGoal:      string(user.FitnessGoal),
		ActivityLevel:    string(user.ActivityLevel),
		WorkoutStreak:    user.Progress.WorkoutStreak,
		TotalRewards:     user.Progress.TotalRewards,
		LastWorkoutDate:  user.Progress.LastWorkoutDate,
		CreatedAt:        user.CreatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser, activities []DBActivity) *domain.User {
	history := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		history = append(history, domain.Activity{
			Date:           a.Date,
			ActivityType:   a.ActivityType,
			Duration:       a.Duration,
			CaloriesBurned: a.CaloriesBurned,
			RepsCount:      a.RepsCount,
		})
	}
	return &domain.User{
		ID:               dbUser.ID,
		Name:             dbUser.Name,
		Email:            dbUser.Email,
		Phone:            dbUser.Phone,
		PasswordHash:     dbUser.PasswordHash,
		Role:             dbUser.Role,
		OTPEmail:         dbUser.OTPEmail,
		OTPPhone:         dbUser.OTPPhone,
		OTPIssuedAt:      dbUser.OTPIssuedAt,
		VerifiedEmail:    dbUser.VerifiedEmail,
		VerifiedPhone:    dbUser.VerifiedPhone,
		DOB:              dbUser.DOB,
		Gender:           domain.Gender(dbUser.Gender),
		Weight:           dbUser.Weight,
		Height:           dbUser.Height,
		BMI:              dbUser.BMI,
		DailyCalorieGoal: dbUser.DailyCalorieGoal,
		FitnessGoal:      domain.FitnessGoal(dbUser.FitnessGoal),
		ActivityLevel:    domain.ActivityLevel(dbUser.ActivityLevel),
		Progress: domain.Progress{
			WorkoutStreak:   dbUser.WorkoutStreak,
			TotalRewards:    dbUser.TotalRewards,
			LastWorkoutDate: dbUser.LastWorkoutDate,
			ActivityHistory: history,
		},
		CreatedAt: dbUser.CreatedAt,
		UpdatedAt: dbUser.UpdatedAt,
	}
}
