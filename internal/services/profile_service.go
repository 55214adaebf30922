package services

import (
	"context"
	"fmt"

	"github.com/TusharS004/AI-Fitness-Tracker/domain"
)

// ProfileServiceImpl implements domain.ProfileService
type ProfileServiceImpl struct {
	userRepo    domain.UserRepository
	tokenSvc    domain.TokenService
	auditLogger domain.AuditLogger
}

// NewProfileService creates a new profile service. auditLogger may be nil.
func NewProfileService(userRepo domain.UserRepository, tokenSvc domain.TokenService, auditLogger domain.AuditLogger) domain.ProfileService {
	return &ProfileServiceImpl{
		userRepo:    userRepo,
		tokenSvc:    tokenSvc,
		auditLogger: auditLogger,
	}
}

// UpdateDetails implements domain.ProfileService. Absent, zero and empty
// fields keep their stored values; BMI follows weight and height.
func (s *ProfileServiceImpl) UpdateDetails(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.ProfileResult, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update.Apply(user)
	user.RecomputeBMI()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user details: %w", err)
	}

	token, err := s.tokenSvc.IssueProfile(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logAudit(ctx, s.auditLogger, domain.NewAuditEvent(domain.ProfileUpdatedEvent, user.ID).
		WithEmail(user.Email).
		WithMetadata("bmi", user.BMI))

	return &domain.ProfileResult{User: user, Token: token}, nil
}

// GetProgress implements domain.ProfileService
func (s *ProfileServiceImpl) GetProgress(ctx context.Context, userID string) (*domain.Progress, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := user.Progress
	if progress.ActivityHistory == nil {
		progress.ActivityHistory = []domain.Activity{}
	}
	return &progress, nil
}

// UpdateProgress implements domain.ProfileService. The stored progress is
// replaced; when no last workout date is given the newest activity supplies it.
func (s *ProfileServiceImpl) UpdateProgress(ctx context.Context, userID string, progress domain.Progress) (*domain.Progress, error) {
	if progress.WorkoutStreak < 0 || progress.TotalRewards < 0 {
		return nil, fmt.Errorf("%w: counters must not be negative", domain.ErrValidation)
	}
	for _, a := range progress.ActivityHistory {
		if a.Date.IsZero() || a.ActivityType == "" {
			return nil, fmt.Errorf("%w: every activity needs a date and type", domain.ErrValidation)
		}
		if a.Duration < 0 || a.CaloriesBurned < 0 || a.RepsCount < 0 {
			return nil, fmt.Errorf("%w: activity values must not be negative", domain.ErrValidation)
		}
	}

	progress.SortHistory()
	if progress.LastWorkoutDate == nil && len(progress.ActivityHistory) > 0 {
		last := progress.ActivityHistory[len(progress.ActivityHistory)-1].Date
		progress.LastWorkoutDate = &last
	}
	if progress.ActivityHistory == nil {
		progress.ActivityHistory = []domain.Activity{}
	}

	if err := s.userRepo.UpdateProgress(ctx, userID, progress); err != nil {
		return nil, err
	}

	logAudit(ctx, s.auditLogger, domain.NewAuditEvent(domain.ProgressUpdatedEvent, userID).
		WithMetadata("activities", len(progress.ActivityHistory)))

	return &progress, nil
}
