package media

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"eventlist/internal/helpers"
)

// Storage buckets. Every image kind gets its own subdirectory under the
// media root, and derived variants keep the source file's name.
const (
	BucketThumbs    = "thumbs"
	BucketPortrait  = "portrait"
	BucketLandscape = "landscape"
	BucketProfile   = "profile-pics"
	BucketVenue     = "venue-pics"
)

const (
	portraitWidth   = 600
	portraitHeight  = 800
	landscapeWidth  = 1280
	landscapeHeight = 720
	avatarMaxDim    = 150
)

// Processor performs local pixel work on images stored under Root. Paths
// passed in and returned are relative to Root.
type Processor struct {
	Root string
}

func NewProcessor(root string) *Processor {
	return &Processor{Root: root}
}

// Portrait writes a center-cropped portrait variant of src into the
// portrait bucket and returns its path.
func (p *Processor) Portrait(src string) (string, error) {
	return p.derive(src, BucketPortrait, portraitWidth, portraitHeight)
}

// Landscape writes a center-cropped landscape variant of src into the
// landscape bucket and returns its path.
func (p *Processor) Landscape(src string) (string, error) {
	return p.derive(src, BucketLandscape, landscapeWidth, landscapeHeight)
}

func (p *Processor) derive(src, bucket string, width, height int) (string, error) {
	source, err := imaging.Open(p.abs(src))
	if err != nil {
		return "", &helpers.MediaError{Path: src, Err: err}
	}

	variant := imaging.Fill(source, width, height, imaging.Center, imaging.Lanczos)

	rel := filepath.Join(bucket, filepath.Base(src))
	if err := os.MkdirAll(filepath.Join(p.Root, bucket), 0o755); err != nil {
		return "", err
	}
	if err := imaging.Save(variant, p.abs(rel)); err != nil {
		return "", &helpers.MediaError{Path: rel, Err: err}
	}
	return rel, nil
}

// Remove deletes the image at path. Removing a path that is already gone is
// not an error.
func (p *Processor) Remove(path string) error {
	if err := os.Remove(p.abs(path)); err != nil && !os.IsNotExist(err) {
		return &helpers.MediaError{Path: path, Err: err}
	}
	return nil
}

// Shrink downsizes the image at path in place so neither dimension exceeds
// 150 pixels, preserving aspect ratio. Images already within bounds are left
// untouched.
func (p *Processor) Shrink(path string) error {
	source, err := imaging.Open(p.abs(path))
	if err != nil {
		return &helpers.MediaError{Path: path, Err: err}
	}

	bounds := source.Bounds()
	if bounds.Dx() <= avatarMaxDim && bounds.Dy() <= avatarMaxDim {
		return nil
	}

	small := imaging.Fit(source, avatarMaxDim, avatarMaxDim, imaging.Lanczos)
	if err := imaging.Save(small, p.abs(path)); err != nil {
		return &helpers.MediaError{Path: path, Err: err}
	}
	return nil
}

func (p *Processor) abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Root, rel)
}
