package scheduler

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventlist/internal/models"
)

// Entry is the scheduling projection of an event: a one-way, one-time copy
// of title, description and the start/end instants. Nothing reads it back
// into the event model.
type Entry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:600;not null"`
	Start       time.Time `gorm:"not null"`
	End         *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Entry) TableName() string {
	return "scheduler_entries"
}

func (entry *Entry) BeforeCreate(tx *gorm.DB) (err error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return
}

// Service creates calendar entries in the configured time zone.
type Service struct {
	loc *time.Location
}

func NewService(loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{loc: loc}
}

// Schedule persists one entry for the event: start is the event's date and
// time-of-day combined in the service's zone, end is the event's end time
// verbatim. The caller's db handle is used so the entry can share the
// event-creation transaction.
func (s *Service) Schedule(db *gorm.DB, event *models.Event) error {
	entry := &Entry{
		Title:       event.Title,
		Description: event.Description,
		Start:       event.StartIn(s.loc),
		End:         event.EndTime,
	}
	return db.Create(entry).Error
}
