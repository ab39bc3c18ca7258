package media

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventlist/internal/helpers"
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

func TestProcessor_PortraitAndLandscape(t *testing.T) {
	root := t.TempDir()
	p := NewProcessor(root)
	src := filepath.Join(BucketThumbs, "poster.jpg")
	writeJPEG(t, filepath.Join(root, src), 1600, 1600)

	portrait, err := p.Portrait(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(BucketPortrait, "poster.jpg"), portrait)
	bounds := readBounds(t, filepath.Join(root, portrait))
	assert.Equal(t, 600, bounds.Dx())
	assert.Equal(t, 800, bounds.Dy())

	landscape, err := p.Landscape(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(BucketLandscape, "poster.jpg"), landscape)
	bounds = readBounds(t, filepath.Join(root, landscape))
	assert.Equal(t, 1280, bounds.Dx())
	assert.Equal(t, 720, bounds.Dy())

	// The source stays where it was.
	_, err = os.Stat(filepath.Join(root, src))
	require.NoError(t, err)
}

func TestProcessor_MissingSource(t *testing.T) {
	p := NewProcessor(t.TempDir())

	_, err := p.Portrait("thumbs/nope.jpg")
	var merr *helpers.MediaError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "thumbs/nope.jpg", merr.Path)

	_, err = p.Landscape("thumbs/nope.jpg")
	require.ErrorAs(t, err, &merr)

	err = p.Shrink("profile-pics/nope.jpg")
	require.ErrorAs(t, err, &merr)
}

func TestProcessor_Remove(t *testing.T) {
	root := t.TempDir()
	p := NewProcessor(root)
	src := filepath.Join(BucketThumbs, "poster.jpg")
	writeJPEG(t, filepath.Join(root, src), 1600, 1600)

	portrait, err := p.Portrait(src)
	require.NoError(t, err)

	require.NoError(t, p.Remove(portrait))
	_, err = os.Stat(filepath.Join(root, portrait))
	assert.True(t, os.IsNotExist(err))

	// Removing it again is fine.
	require.NoError(t, p.Remove(portrait))
}

func TestProcessor_Shrink(t *testing.T) {
	root := t.TempDir()
	p := NewProcessor(root)
	avatar := filepath.Join(BucketProfile, "avatar.jpg")
	writeJPEG(t, filepath.Join(root, avatar), 400, 300)

	require.NoError(t, p.Shrink(avatar))
	bounds := readBounds(t, filepath.Join(root, avatar))
	assert.Equal(t, 150, bounds.Dx())
	assert.InDelta(t, 112.5, float64(bounds.Dy()), 1)
}

func TestProcessor_ShrinkKeepsSmallImages(t *testing.T) {
	root := t.TempDir()
	p := NewProcessor(root)
	avatar := filepath.Join(BucketProfile, "avatar.jpg")
	writeJPEG(t, filepath.Join(root, avatar), 120, 90)

	before, err := os.Stat(filepath.Join(root, avatar))
	require.NoError(t, err)

	require.NoError(t, p.Shrink(avatar))

	after, err := os.Stat(filepath.Join(root, avatar))
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	bounds := readBounds(t, filepath.Join(root, avatar))
	assert.Equal(t, 120, bounds.Dx())
	assert.Equal(t, 90, bounds.Dy())
}
