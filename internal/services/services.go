package services

import (
	"errors"

	"gorm.io/gorm"

	"eventlist/internal/models"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// ImageDeriver produces the portrait and landscape variants of an event
// poster and returns their stored paths. Remove discards a variant that is
// no longer referenced.
type ImageDeriver interface {
	Portrait(src string) (string, error)
	Landscape(src string) (string, error)
	Remove(path string) error
}

// AvatarShrinker downsizes a profile avatar in place.
type AvatarShrinker interface {
	Shrink(path string) error
}

// EntryScheduler projects an event into the calendar store, on the caller's
// transaction handle.
type EntryScheduler interface {
	Schedule(db *gorm.DB, event *models.Event) error
}
