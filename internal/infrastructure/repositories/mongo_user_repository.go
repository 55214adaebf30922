package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// MongoUserRepository implements domain.UserRepository on a MongoDB collection.
// Activity history is embedded in the user document.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// mongoActivity is the embedded activity document
type mongoActivity struct {
	Date           time.Time `bson:"date"`
	ActivityType   string    `bson:"activityType"`
	Duration       float64   `bson:"duration"`
	CaloriesBurned float64   `bson:"caloriesBurned"`
	RepsCount      int       `bson:"repsCount"`
}

// mongoProgress is the embedded progress document
type mongoProgress struct {
	WorkoutStreak   int             `bson:"workoutStreak"`
	TotalRewards    int             `bson:"totalRewards"`
	LastWorkoutDate *time.Time      `bson:"lastWorkoutDate,omitempty"`
	ActivityHistory []mongoActivity `bson:"activityHistory"`
}

// mongoUser is the stored user document
type mongoUser struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	Phone        string `bson:"phone"`
	PasswordHash string `bson:"password"`
	Role         string `bson:"role"`

	OTPEmail      string    `bson:"otpEmail"`
	OTPPhone      string    `bson:"otpPhone"`
	OTPIssuedAt   time.Time `bson:"otpIssuedAt"`
	VerifiedEmail bool      `bson:"verifiedEmail"`
	VerifiedPhone bool      `bson:"verifiedPhone"`

	DOB              string  `bson:"dob,omitempty"`
	Gender           string  `bson:"gender,omitempty"`
	Weight           float64 `bson:"weight"`
	Height           float64 `bson:"height"`
	BMI              float64 `bson:"bmi"`
	DailyCalorieGoal int     `bson:"dailyCalorieGoal"`
	FitnessGoal      string  `bson:"fitnessGoal,omitempty"`
	ActivityLevel    string  `bson:"activityLevel,omitempty"`

	Progress mongoProgress `bson:"progress"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoUserRepository creates a user repository over db's "users" collection
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique email and phone indexes
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// Create implements domain.UserRepository
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID implements domain.UserRepository
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc mongoUser
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Update implements domain.UserRepository. The embedded progress is left to UpdateProgress.
func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	doc := toMongoUser(user)
	res, err := r.collection.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"name":             doc.Name,
		"email":            doc.Email,
		"phone":            doc.Phone,
		"password":         doc.PasswordHash,
		"role":             doc.Role,
		"otpEmail":         doc.OTPEmail,
		"otpPhone":         doc.OTPPhone,
		"otpIssuedAt":      doc.OTPIssuedAt,
		"verifiedEmail":    doc.VerifiedEmail,
		"verifiedPhone":    doc.VerifiedPhone,
		"dob":              doc.DOB,
		"gender":           doc.Gender,
		"weight":           doc.Weight,
		"height":           doc.Height,
		"bmi":              doc.BMI,
		"dailyCalorieGoal": doc.DailyCalorieGoal,
		"fitnessGoal":      doc.FitnessGoal,
		"activityLevel":    doc.ActivityLevel,
		"updatedAt":        doc.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// MarkVerified implements domain.UserRepository
func (r *MongoUserRepository) MarkVerified(ctx context.Context, userID string, channel domain.OTPChannel) error {
	field := "verifiedPhone"
	if channel == domain.ChannelEmail {
		field = "verifiedEmail"
	}
	res, err := r.collection.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		field:       true,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetOTP implements domain.UserRepository
func (r *MongoUserRepository) SetOTP(ctx context.Context, userID string, channel domain.OTPChannel, code string, issuedAt time.Time) error {
	field := "otpPhone"
	if channel == domain.ChannelEmail {
		field = "otpEmail"
	}
	res, err := r.collection.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		field:         code,
		"otpIssuedAt": issuedAt,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateProgress implements domain.UserRepository
func (r *MongoUserRepository) UpdateProgress(ctx context.Context, userID string, progress domain.Progress) error {
	res, err := r.collection.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"progress":  toMongoProgress(progress),
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toMongoProgress(p domain.Progress) mongoProgress {
	history := make([]mongoActivity, 0, len(p.ActivityHistory))
	for _, a := range p.ActivityHistory {
		history = append(history, mongoActivity(a))
	}
	return mongoProgress{
		WorkoutStreak:   p.WorkoutStreak,
		TotalRewards:    p.TotalRewards,
		LastWorkoutDate: p.LastWorkoutDate,
		ActivityHistory: history,
	}
}

func toMongoUser(u *domain.User) *mongoUser {
	return &mongoUser{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		PasswordHash:     u.PasswordHash,
		Role:             u.Role,
		OTPEmail:         u.OTPEmail,
		OTPPhone:         u.OTPPhone,
		OTPIssuedAt:      u.OTPIssuedAt,
		VerifiedEmail:    u.VerifiedEmail,
		VerifiedPhone:    u.VerifiedPhone,
		DOB:              u.DOB,
		Gender:           string(u.Gender),
		Weight:           u.Weight,
		Height:           u.Height,
		BMI:              u.BMI,
		DailyCalorieGoal: u.DailyCalorieGoal,
		FitnessGoal:      string(u.FitnessGoal),
		ActivityLevel:    string(u.ActivityLevel),
		Progress:         toMongoProgress(u.Progress),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *mongoUser) toDomain() *domain.User {
	history := make([]domain.Activity, 0, len(m.Progress.ActivityHistory))
	for _, a := range m.Progress.ActivityHistory {
		history = append(history, domain.Activity(a))
	}
	return &domain.User{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Phone:            m.Phone,
		PasswordHash:     m.PasswordHash,
		Role:             m.Role,
		OTPEmail:         m.OTPEmail,
		OTPPhone:         m.OTPPhone,
		OTPIssuedAt:      m.OTPIssuedAt,
		VerifiedEmail:    m.VerifiedEmail,
		VerifiedPhone:    m.VerifiedPhone,
		DOB:              m.DOB,
		Gender:           domain.Gender(m.Gender),
		Weight:           m.Weight,
		Height:           m.Height,
		BMI:              m.BMI,
		DailyCalorieGoal: m.DailyCalorieGoal,
		FitnessGoal:      domain.FitnessGoal(m.FitnessGoal),
		ActivityLevel:    domain.ActivityLevel(m.ActivityLevel),
		Progress: domain.Progress{
			WorkoutStreak:   m.Progress.WorkoutStreak,
			TotalRewards:    m.Progress.TotalRewards,
			LastWorkoutDate: m.Progress.LastWorkoutDate,
			ActivityHistory: history,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
