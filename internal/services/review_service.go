package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventlist/internal/helpers"
	"eventlist/internal/models"
)

type CreateReviewInput struct {
	EventID uuid.UUID `validate:"required"`
	UserID  uuid.UUID `validate:"required"`
	Slug    string    `validate:"max=100"`
}

type ReviewService struct {
	db       *gorm.DB
	validate *validator.Validate
	logger   *slog.Logger
}

func NewReviewService(db *gorm.DB, logger *slog.Logger) *ReviewService {
	return &ReviewService{db: db, validate: validator.New(), logger: logger}
}

// Create persists a review with a unique slug. When the caller supplies no
// slug, one is derived from the reviewed event's slug and the reviewer.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.FromValidator(err)
	}

	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", input.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reviewSlug := input.Slug
	if reviewSlug == "" {
		reviewSlug = helpers.UniqueSlug(event.Slug+"-review", func(candidate string) bool {
			var n int64
			s.db.WithContext(ctx).Model(&models.Review{}).
				Where("slug = ?", candidate).Count(&n)
			return n > 0
		})
	} else {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Review{}).
			Where("slug = ?", reviewSlug).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, helpers.NewValidationError("slug", "a review with this slug already exists")
		}
	}

	review := &models.Review{
		EventID: input.EventID,
		UserID:  input.UserID,
		Slug:    reviewSlug,
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// AttachRating records the reviewer's 1-5 rating and links it to the review.
// Out-of-range values are rejected before any write.
func (s *ReviewService) AttachRating(ctx context.Context, reviewID, userID uuid.UUID, value int) (*models.ReviewRating, error) {
	if value < 1 || value > 5 {
		return nil, helpers.NewValidationError("rating", "must be between 1 and 5")
	}

	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rating := &models.ReviewRating{
		ReviewID: &review.ID,
		UserID:   userID,
		Rating:   value,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}
		return tx.Model(&review).UpdateColumn("rating_id", rating.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// AttachComment records the reviewer's long-form comment and links it to the
// review.
func (s *ReviewService) AttachComment(ctx context.Context, reviewID, userID uuid.UUID, text string) (*models.ReviewComment, error) {
	if text == "" {
		return nil, helpers.NewValidationError("text", "must not be empty")
	}

	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.ReviewComment{
		ReviewID: &review.ID,
		UserID:   userID,
		Text:     text,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&review).UpdateColumn("comment_id", comment.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForEvent returns an event's reviews oldest first.
func (s *ReviewService) ListForEvent(ctx context.Context, eventID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at").
		Find(&reviews).Error
	return reviews, err
}

// Comments returns a review's comments newest first.
func (s *ReviewService) Comments(ctx context.Context, reviewID uuid.UUID) ([]models.ReviewComment, error) {
	var comments []models.ReviewComment
	err := s.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// AverageRating computes the mean rating across an event's reviews, 0 when
// none exist.
func (s *ReviewService) AverageRating(ctx context.Context, eventID uuid.UUID) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).Raw(`
		SELECT COALESCE(AVG(rr.rating), 0)
		FROM review_ratings rr
		JOIN reviews r ON r.id = rr.review_id
		WHERE r.event_id = ?`, eventID).Scan(&avg).Error
	return avg, err
}
