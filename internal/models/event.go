package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is the central entity. Portrait and Landscape are derived from Thumb
// exactly once, when the row is first created; the services layer owns that
// lifecycle, the model never triggers it itself.
type Event struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	Title        string     `gorm:"size:100;unique;not null"`
	Description  string     `gorm:"size:600;not null"`
	CategoryID   *uuid.UUID `gorm:"type:uuid"`
	Category     *Category  `gorm:"constraint:OnDelete:SET NULL"`
	CityID       *uuid.UUID `gorm:"type:uuid"`
	City         *City      `gorm:"constraint:OnDelete:CASCADE"`
	UploadedByID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UploadedBy   User       `gorm:"constraint:OnDelete:CASCADE"`
	Thumb        string     `gorm:"not null"`
	Portrait     string
	Landscape    string
	UploadDate   time.Time `gorm:"autoCreateTime"`
	Views        uint64    `gorm:"not null;default:0"`
	EventDate    time.Time `gorm:"type:date;not null"`
	EventTime    time.Time `gorm:"not null"`
	EndTime      *time.Time
	EntryFee     float64 `gorm:"not null;default:0"`
	EventVenue   string  `gorm:"size:100;not null"`
	Slug         string  `gorm:"size:100;not null"`
	Status       bool    `gorm:"not null;default:false"`
	Likes        []User  `gorm:"many2many:event_likes;constraint:OnDelete:CASCADE"`
	Attending    []User  `gorm:"many2many:event_attending;constraint:OnDelete:CASCADE"`
	Tags         []Tag   `gorm:"many2many:event_tags;constraint:OnDelete:CASCADE"`
	CommentsID   *uuid.UUID
	Comments     *Comment `gorm:"foreignKey:CommentsID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

func (event *Event) AbsoluteURL() string {
	return "/event/" + event.Slug
}

// StartIn combines the event's date and time-of-day fields into a single
// instant in the given location.
func (event *Event) StartIn(loc *time.Location) time.Time {
	return time.Date(
		event.EventDate.Year(), event.EventDate.Month(), event.EventDate.Day(),
		event.EventTime.Hour(), event.EventTime.Minute(), event.EventTime.Second(),
		0, loc,
	)
}
