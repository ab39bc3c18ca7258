package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventlist/internal/helpers"
	"eventlist/internal/media"
	"eventlist/internal/models"
	"eventlist/internal/scheduler"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.City{},
		&models.Tag{},
		&models.Event{},
		&models.Comment{},
		&models.Review{},
		&models.ReviewComment{},
		&models.ReviewRating{},
		&scheduler.Entry{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func eventInput(title string, uploadedBy uuid.UUID) CreateEventInput {
	end := time.Date(2024, 1, 10, 21, 0, 0, 0, time.UTC)
	return CreateEventInput{
		Title:        title,
		Description:  "an evening of things happening",
		Thumb:        "thumbs/poster.jpg",
		EventDate:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		EventTime:    time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
		EndTime:      &end,
		EventVenue:   "Town Hall",
		UploadedByID: uploadedBy,
	}
}

// fakeImages counts derivations and can be told to fail like an unreadable
// poster would, either outright or only on the landscape pass.
type fakeImages struct {
	portraits     int
	landscapes    int
	fail          bool
	failLandscape bool
	removed       []string
}

func (f *fakeImages) Portrait(src string) (string, error) {
	if f.fail {
		return "", &helpers.MediaError{Path: src, Err: errors.New("unreadable")}
	}
	f.portraits++
	return filepath.Join(media.BucketPortrait, filepath.Base(src)), nil
}

func (f *fakeImages) Landscape(src string) (string, error) {
	if f.fail || f.failLandscape {
		return "", &helpers.MediaError{Path: src, Err: errors.New("unreadable")}
	}
	f.landscapes++
	return filepath.Join(media.BucketLandscape, filepath.Base(src)), nil
}

func (f *fakeImages) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
