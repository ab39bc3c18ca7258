package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag names are free-form, lowercased, with no fixed vocabulary.
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"size:100;unique;not null"`
}

func (tag *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	return
}
