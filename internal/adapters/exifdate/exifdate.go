// Package exifdate reads the capture date embedded in an image's EXIF
// block using rwcarlsen/goexif.
package exifdate

import (
	"fmt"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/niwi/photoarc/internal/ports"
)

// Reader extracts EXIF capture dates through an injected filesystem.
type Reader struct {
	FS ports.FileSystem
}

// New creates a Reader on the given filesystem.
func New(fs ports.FileSystem) *Reader {
	return &Reader{FS: fs}
}

// CaptureDate returns the image's capture time, preferring
// DateTimeOriginal and falling back to DateTime.
func (r *Reader) CaptureDate(path string) (time.Time, error) {
	f, err := r.FS.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding EXIF of %s: %w", path, err)
	}
	dt, err := x.DateTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("no capture date in %s: %w", path, err)
	}
	return dt, nil
}
