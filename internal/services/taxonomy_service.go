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

type TaxonomyInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=100"`
	Slug        string `validate:"max=100"`
	Status      bool
}

// TaxonomyService manages categories and cities. Both carry a cached event
// count that callers refresh explicitly after bulk changes; nothing keeps it
// in sync automatically.
type TaxonomyService struct {
	db       *gorm.DB
	validate *validator.Validate
	logger   *slog.Logger
}

func NewTaxonomyService(db *gorm.DB, logger *slog.Logger) *TaxonomyService {
	return &TaxonomyService{db: db, validate: validator.New(), logger: logger}
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, input TaxonomyInput) (*models.Category, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.FromValidator(err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("name = ?", input.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, helpers.NewValidationError("name", "a category with this name already exists")
	}

	category := &models.Category{
		Name:   input.Name,
		Slug:   input.Slug,
		Status: input.Status,
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if category.Slug == "" {
		category.Slug = helpers.Slugify(input.Name)
	}

	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *TaxonomyService) CreateCity(ctx context.Context, input TaxonomyInput) (*models.City, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, helpers.FromValidator(err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.City{}).
		Where("name = ?", input.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, helpers.NewValidationError("name", "a city with this name already exists")
	}

	city := &models.City{
		Name:   input.Name,
		Slug:   input.Slug,
		Status: input.Status,
	}
	if input.Description != "" {
		city.Description = input.Description
	}
	if city.Slug == "" {
		city.Slug = helpers.Slugify(input.Name)
	}

	if err := s.db.WithContext(ctx).Create(city).Error; err != nil {
		return nil, err
	}
	return city, nil
}

// UpdateCategoryEventCount recomputes the cached count from live event rows,
// persists it and returns it. A missing category yields 0 and no error.
func (s *TaxonomyService) UpdateCategoryEventCount(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}

	if err := s.db.WithContext(ctx).Model(&category).
		UpdateColumn("number_of_events", count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateCityEventCount mirrors UpdateCategoryEventCount for cities.
func (s *TaxonomyService) UpdateCityEventCount(ctx context.Context, cityID uuid.UUID) (int64, error) {
	var city models.City
	if err := s.db.WithContext(ctx).First(&city, "id = ?", cityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("city_id = ?", cityID).Count(&count).Error; err != nil {
		return 0, err
	}

	if err := s.db.WithContext(ctx).Model(&city).
		UpdateColumn("number_of_events", count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
