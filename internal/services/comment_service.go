package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventlist/internal/helpers"
	"eventlist/internal/models"
)

type CommentService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCommentService(db *gorm.DB, logger *slog.Logger) *CommentService {
	return &CommentService{db: db, logger: logger}
}

func (s *CommentService) Add(ctx context.Context, eventID *uuid.UUID, userID uuid.UUID, text string) (*models.Comment, error) {
	if text == "" {
		return nil, helpers.NewValidationError("text", "must not be empty")
	}

	comment := &models.Comment{
		EventID: eventID,
		UserID:  userID,
		Text:    text,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForEvent returns an event's comments newest first.
func (s *CommentService) ListForEvent(ctx context.Context, eventID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// Delete removes the user's own comment.
func (s *CommentService) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
