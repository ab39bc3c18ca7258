package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventlist/internal/models"
)

type ProfileService struct {
	db      *gorm.DB
	avatars AvatarShrinker
	logger  *slog.Logger
}

func NewProfileService(db *gorm.DB, avatars AvatarShrinker, logger *slog.Logger) *ProfileService {
	return &ProfileService{db: db, avatars: avatars, logger: logger}
}

// Save persists the profile and then downsizes its avatar in place, on every
// save, not just the first. An unreadable avatar surfaces as a media error.
func (s *ProfileService) Save(ctx context.Context, profile *models.Profile) error {
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return err
	}
	if profile.Image == "" {
		return nil
	}
	return s.avatars.Shrink(profile.Image)
}

// GetByUser returns the user's profile.
func (s *ProfileService) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
