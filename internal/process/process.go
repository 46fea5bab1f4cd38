// Package process provides the per-file hooks composed with the traversal
// engine: plain logging, tag-based sync, and capture-date auditing.
package process

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/niwi/photoarc/internal/archive"
	"github.com/niwi/photoarc/internal/ports"
	"github.com/niwi/photoarc/internal/tagmatch"
)

// Log is the base hook: it reports every file as processed and counts it
// as matched.
type Log struct {
	Reporter archive.Reporter
}

// ProcessFile reports the file and returns true.
func (l *Log) ProcessFile(path string, marker archive.DateMarker, isDaySubdir bool) bool {
	l.Reporter.Report(archive.Event{
		Kind:   archive.FileProcessed,
		Path:   path,
		Name:   filepath.Base(path),
		Marker: marker,
	})
	return true
}

// TagSync copies files carrying a configured IPTC keyword into a
// destination tree mirroring the YYYY/MM/DD[/subdir] layout of the source.
type TagSync struct {
	FS       ports.FileSystem
	Matcher  *tagmatch.Matcher
	Tag      string
	DestRoot string
	Reporter archive.Reporter
}

// ProcessFile copies path when its keywords contain the tag; only copied
// files count as matched.
func (s *TagSync) ProcessFile(path string, marker archive.DateMarker, isDaySubdir bool) bool {
	if !s.Matcher.FileHasTag(path, s.Tag) {
		return false
	}

	destDir := filepath.Join(s.DestRoot,
		fmt.Sprintf("%04d", marker.Year),
		fmt.Sprintf("%02d", marker.Month),
		fmt.Sprintf("%02d", marker.Day))
	if isDaySubdir {
		destDir = filepath.Join(destDir, filepath.Base(filepath.Dir(path)))
	}

	if err := s.copy(path, filepath.Join(destDir, filepath.Base(path)), destDir); err != nil {
		s.Reporter.Report(archive.Event{Kind: archive.HookError, Path: path, Marker: marker, Err: err})
		return false
	}

	s.Reporter.Report(archive.Event{
		Kind:   archive.FileProcessed,
		Path:   path,
		Name:   filepath.Base(path),
		Marker: marker,
	})
	return true
}

func (s *TagSync) copy(src, dest, destDir string) error {
	if err := s.FS.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}
	in, err := s.FS.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := s.FS.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dest, err)
	}
	return out.Close()
}

// DateReader extracts an image's embedded capture date.
// Production code uses the exifdate adapter.
type DateReader interface {
	CaptureDate(path string) (time.Time, error)
}

// Audit flags files whose EXIF capture date disagrees with the directory
// date they are filed under. A mismatch counts as matched, so the per-day
// MATCHED totals become mismatch counts.
type Audit struct {
	Dates    DateReader
	Reporter archive.Reporter
}

// ProcessFile checks the file's capture date against the marker. Files
// without readable EXIF dates are ignored.
func (a *Audit) ProcessFile(path string, marker archive.DateMarker, isDaySubdir bool) bool {
	if !tagmatch.FileHasExtension(filepath.Base(path), tagmatch.JPEGExtensions) {
		return false
	}
	taken, err := a.Dates.CaptureDate(path)
	if err != nil {
		return false
	}

	mismatch := taken.Year() != marker.Year ||
		(marker.HasMonth() && int(taken.Month()) != marker.Month) ||
		(marker.HasDay() && taken.Day() != marker.Day)
	if !mismatch {
		return false
	}

	a.Reporter.Report(archive.Event{
		Kind:   archive.DateMismatch,
		Path:   path,
		Name:   filepath.Base(path),
		Marker: marker,
		Detail: taken.Format("2006-01-02"),
	})
	return true
}

// Compile-time checks.
var (
	_ archive.FileProcessor = (*Log)(nil)
	_ archive.FileProcessor = (*TagSync)(nil)
	_ archive.FileProcessor = (*Audit)(nil)
)
