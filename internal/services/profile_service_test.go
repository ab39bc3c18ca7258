package services

import (
	"context"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlist/internal/helpers"
	"eventlist/internal/media"
	"eventlist/internal/models"
)

func writeJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height)), nil))
}

func readBounds(t *testing.T, path string) image.Rectangle {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)
	return img.Bounds()
}

func TestProfileService_Save_ShrinksAvatarEveryTime(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	root := t.TempDir()
	svc := NewProfileService(db, media.NewProcessor(root), slog.Default())
	user := seedUser(t, db, "owner")

	avatar := filepath.Join(media.BucketProfile, "avatar.jpg")
	writeJPEG(t, filepath.Join(root, avatar), 400, 300)

	profile := &models.Profile{UserID: user.ID, Image: avatar}
	require.NoError(t, svc.Save(ctx, profile))

	bounds := readBounds(t, filepath.Join(root, avatar))
	assert.Equal(t, 150, bounds.Dx())
	assert.InDelta(t, 112.5, float64(bounds.Dy()), 1)

	// A later save leaves the already-conforming avatar alone.
	bio := "organizes things"
	profile.Bio = &bio
	require.NoError(t, svc.Save(ctx, profile))
	bounds = readBounds(t, filepath.Join(root, avatar))
	assert.Equal(t, 150, bounds.Dx())
	assert.InDelta(t, 112.5, float64(bounds.Dy()), 1)
}

func TestProfileService_Save_MissingAvatar(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db, media.NewProcessor(t.TempDir()), slog.Default())
	user := seedUser(t, db, "owner")

	profile := &models.Profile{UserID: user.ID, Image: "profile-pics/gone.jpg"}
	err := svc.Save(ctx, profile)

	var merr *helpers.MediaError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "profile-pics/gone.jpg", merr.Path)
}

func TestProfileService_OneProfilePerUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	root := t.TempDir()
	svc := NewProfileService(db, media.NewProcessor(root), slog.Default())
	user := seedUser(t, db, "owner")

	avatar := filepath.Join(media.BucketProfile, "avatar.jpg")
	writeJPEG(t, filepath.Join(root, avatar), 100, 100)

	require.NoError(t, svc.Save(ctx, &models.Profile{UserID: user.ID, Image: avatar}))
	assert.Error(t, svc.Save(ctx, &models.Profile{UserID: user.ID, Image: avatar}))
}

func TestProfileService_GetByUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	root := t.TempDir()
	svc := NewProfileService(db, media.NewProcessor(root), slog.Default())
	user := seedUser(t, db, "owner")
	other := seedUser(t, db, "someone")

	avatar := filepath.Join(media.BucketProfile, "avatar.jpg")
	writeJPEG(t, filepath.Join(root, avatar), 100, 100)
	require.NoError(t, svc.Save(ctx, &models.Profile{UserID: user.ID, Image: avatar}))

	got, err := svc.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	_, err = svc.GetByUser(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
