package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultAvatar = "profile-pics/mountain.jpeg"

type Profile struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	User         User      `gorm:"constraint:OnDelete:CASCADE"`
	Image        string    `gorm:"not null;default:'profile-pics/mountain.jpeg'"`
	Bio          *string   `gorm:"size:300"`
	VenueAddress *string
	Venue1       *string
	Venue2       *string
	Venue3       *string
	Venue4       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (profile *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return
}
