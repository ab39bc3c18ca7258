package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventlist/internal/helpers"
	"eventlist/internal/models"
)

type CreateEventInput struct {
	Title        string    `validate:"required,max=100"`
	Description  string    `validate:"required,max=600"`
	Thumb        string    `validate:"required"`
	EventDate    time.Time `validate:"required"`
	EventTime    time.Time `validate:"required"`
	EndTime      *time.Time
	EntryFee     float64 `validate:"gte=0"`
	EventVenue   string  `validate:"required,max=100"`
	Slug         string  `validate:"max=100"`
	Status       bool
	CategoryID   *uuid.UUID
	CityID       *uuid.UUID
	UploadedByID uuid.UUID `validate:"required"`
	Tags         []string
}

// UpdateEventInput carries only the attributes being changed; nil pointers
// are left as stored.
type UpdateEventInput struct {
	Title       *string `validate:"omitempty,required,max=100"`
	Description *string `validate:"omitempty,required,max=600"`
	EventDate   *time.Time
	EventTime   *time.Time
	EndTime     *time.Time
	EntryFee    *float64 `validate:"omitempty,gte=0"`
	EventVenue  *string  `validate:"omitempty,required,max=100"`
	Slug        *string  `validate:"omitempty,max=100"`
	Status      *bool
	CategoryID  *uuid.UUID
	CityID      *uuid.UUID
}

type EventService struct {
	db        *gorm.DB
	images    ImageDeriver
	scheduler EntryScheduler
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewEventService(db *gorm.DB, images ImageDeriver, scheduler EntryScheduler, logger *slog.Logger) *EventService {
	return &EventService{
		db:        db,
		images:    images,
		scheduler: scheduler,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Create validates the input, then inserts the event, derives both poster
// variants and writes the calendar entry in one transaction. The derivation
// and scheduling happen exactly once, here; Update never repeats them. A
// failed derivation rolls the insert back.
func (s *EventService) Create(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.FromValidator(err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("title = ?", input.Title).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, helpers.NewValidationError("title", "an event with this title already exists")
	}

	eventSlug := input.Slug
	if eventSlug == "" {
		eventSlug = helpers.Slugify(input.Title)
	}

	event := &models.Event{
		Title:        input.Title,
		Description:  input.Description,
		Thumb:        input.Thumb,
		EventDate:    input.EventDate,
		EventTime:    input.EventTime,
		EndTime:      input.EndTime,
		EntryFee:     input.EntryFee,
		EventVenue:   input.EventVenue,
		Slug:         eventSlug,
		Status:       input.Status,
		CategoryID:   input.CategoryID,
		CityID:       input.CityID,
		UploadedByID: input.UploadedByID,
	}

	var derived []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range input.Tags {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			var tag models.Tag
			if err := tx.Where("name = ?", name).
				FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return err
			}
			event.Tags = append(event.Tags, tag)
		}

		if err := tx.Create(event).Error; err != nil {
			return err
		}

		portrait, err := s.images.Portrait(event.Thumb)
		if err != nil {
			return err
		}
		derived = append(derived, portrait)
		landscape, err := s.images.Landscape(event.Thumb)
		if err != nil {
			return err
		}
		derived = append(derived, landscape)
		event.Portrait = portrait
		event.Landscape = landscape
		if err := tx.Model(event).
			Updates(map[string]interface{}{"portrait": portrait, "landscape": landscape}).Error; err != nil {
			return err
		}

		return s.scheduler.Schedule(tx, event)
	})
	if err != nil {
		// The insert is gone; the variants already on disk go with it.
		for _, path := range derived {
			if rmErr := s.images.Remove(path); rmErr != nil {
				s.logger.Warn("could not remove derived image", "path", path, "error", rmErr)
			}
		}
		return nil, err
	}

	s.logger.Info("event created", "event_id", event.ID, "slug", event.Slug)
	return event, nil
}

// Update persists attribute changes only. Poster variants and the calendar
// entry are never re-derived.
func (s *EventService) Update(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*models.Event, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.FromValidator(err)
	}

	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Title != nil && *input.Title != event.Title {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Event{}).
			Where("title = ? AND id <> ?", *input.Title, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, helpers.NewValidationError("title", "an event with this title already exists")
		}
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.EventDate != nil {
		event.EventDate = *input.EventDate
	}
	if input.EventTime != nil {
		event.EventTime = *input.EventTime
	}
	if input.EndTime != nil {
		event.EndTime = input.EndTime
	}
	if input.EntryFee != nil {
		event.EntryFee = *input.EntryFee
	}
	if input.EventVenue != nil {
		event.EventVenue = *input.EventVenue
	}
	if input.Slug != nil {
		event.Slug = *input.Slug
	}
	if input.Status != nil {
		event.Status = *input.Status
	}
	if input.CategoryID != nil {
		event.CategoryID = input.CategoryID
	}
	if input.CityID != nil {
		event.CityID = input.CityID
	}

	if err := s.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Related returns every other event sharing the category, the uploader, the
// venue string or the city. An event without a category relates to the other
// uncategorised events, and likewise for the city. The result never contains
// the event itself and carries no duplicates; order is upload date, no
// further ranking.
func (s *EventService) Related(ctx context.Context, event *models.Event) ([]models.Event, error) {
	shared := s.db.
		Where("uploaded_by_id = ?", event.UploadedByID).
		Or("event_venue = ?", event.EventVenue)
	if event.CategoryID != nil {
		shared = shared.Or("category_id = ?", *event.CategoryID)
	} else {
		shared = shared.Or("category_id IS NULL")
	}
	if event.CityID != nil {
		shared = shared.Or("city_id = ?", *event.CityID)
	} else {
		shared = shared.Or("city_id IS NULL")
	}

	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("id <> ?", event.ID).
		Where(shared).
		Order("upload_date").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Preload("Category").Preload("City").Preload("Tags").
		First(&event, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).Order("upload_date").Find(&events).Error
	return events, err
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Like adds the user to the event's likers. Appending an existing liker is
// a no-op.
func (s *EventService) Like(ctx context.Context, eventID, userID uuid.UUID) error {
	event := models.Event{ID: eventID}
	user := models.User{ID: userID}
	return s.db.WithContext(ctx).Model(&event).Association("Likes").Append(&user)
}

func (s *EventService) Unlike(ctx context.Context, eventID, userID uuid.UUID) error {
	event := models.Event{ID: eventID}
	user := models.User{ID: userID}
	return s.db.WithContext(ctx).Model(&event).Association("Likes").Delete(&user)
}

// LikeCount returns how many users liked the event.
func (s *EventService) LikeCount(ctx context.Context, eventID uuid.UUID) (int64, error) {
	event := models.Event{ID: eventID}
	likes := s.db.WithContext(ctx).Model(&event).Association("Likes")
	return likes.Count(), likes.Error
}

func (s *EventService) Attend(ctx context.Context, eventID, userID uuid.UUID) error {
	event := models.Event{ID: eventID}
	user := models.User{ID: userID}
	return s.db.WithContext(ctx).Model(&event).Association("Attending").Append(&user)
}

func (s *EventService) Unattend(ctx context.Context, eventID, userID uuid.UUID) error {
	event := models.Event{ID: eventID}
	user := models.User{ID: userID}
	return s.db.WithContext(ctx).Model(&event).Association("Attending").Delete(&user)
}

// IncrementViews bumps the counter in the store, so concurrent bumps never
// lose each other.
func (s *EventService) IncrementViews(ctx context.Context, eventID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
