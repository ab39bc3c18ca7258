package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to an event thread and is listed newest first.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	EventID   *uuid.UUID `gorm:"type:uuid;index"`
	Event     *Event     `gorm:"constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	User      User       `gorm:"constraint:OnDelete:CASCADE"`
	Text      string     `gorm:"not null"`
	CreatedAt time.Time
}

func (comment *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return
}
