package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups events by kind. NumberOfEvents is a cached aggregate and
// is only refreshed by TaxonomyService.UpdateCategoryEventCount.
type Category struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"size:100;unique;not null"`
	Description    string    `gorm:"size:100;not null;default:'events'"`
	Slug           string    `gorm:"size:100;not null"`
	NumberOfEvents int64     `gorm:"not null;default:0"`
	Status         bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (category *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return
}

func (category *Category) AbsoluteURL() string {
	return "/category/" + category.Slug
}
