package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is listed oldest first. Its comment and rating are optional
// one-to-one children that go down with it.
type Review struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key"`
	EventID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Event     Event          `gorm:"constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	User      User           `gorm:"constraint:OnDelete:CASCADE"`
	CommentID *uuid.UUID     `gorm:"type:uuid"`
	Comment   *ReviewComment `gorm:"foreignKey:CommentID;constraint:OnDelete:SET NULL"`
	RatingID  *uuid.UUID     `gorm:"type:uuid"`
	Rating    *ReviewRating  `gorm:"foreignKey:RatingID;constraint:OnDelete:SET NULL"`
	Slug      string         `gorm:"size:100;unique;not null"`
	CreatedAt time.Time
}

func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return
}

func (review *Review) AbsoluteURL() string {
	return "/review/" + review.Slug
}

// ReviewComment is listed newest first.
type ReviewComment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	ReviewID  *uuid.UUID `gorm:"type:uuid;index"`
	Review    *Review    `gorm:"constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	User      User       `gorm:"constraint:OnDelete:CASCADE"`
	Text      string     `gorm:"not null"`
	CreatedAt time.Time
}

func (comment *ReviewComment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return
}

type ReviewRating struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	ReviewID *uuid.UUID `gorm:"type:uuid;index"`
	Review   *Review    `gorm:"constraint:OnDelete:CASCADE"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	User     User       `gorm:"constraint:OnDelete:CASCADE"`
	Rating   int        `gorm:"not null;check:rating >= 1 AND rating <= 5"`
}

func (rating *ReviewRating) BeforeCreate(tx *gorm.DB) (err error) {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	return
}
