package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// City locates events geographically. Same shape and caching rules as
// Category.
type City struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"size:100;unique;not null"`
	Description    string    `gorm:"size:100;not null;default:'city'"`
	Slug           string    `gorm:"size:100;not null"`
	NumberOfEvents int64     `gorm:"not null;default:0"`
	Status         bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (city *City) BeforeCreate(tx *gorm.DB) (err error) {
	if city.ID == uuid.Nil {
		city.ID = uuid.New()
	}
	return
}

func (city *City) AbsoluteURL() string {
	return "/city/" + city.Slug
}
