package process

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niwi/photoarc/internal/adapters/osfs"
	"github.com/niwi/photoarc/internal/archive"
	"github.com/niwi/photoarc/internal/mocks"
	"github.com/niwi/photoarc/internal/report"
	"github.com/niwi/photoarc/internal/tagmatch"
)

func TestLogProcessFile(t *testing.T) {
	capture := &report.Capture{}
	l := &Log{Reporter: capture}

	marker := archive.NewDateMarker(2021).WithMonth(3).WithDay(15)
	if !l.ProcessFile("/photos/2021/03/15/photo.jpg", marker, false) {
		t.Error("Log hook should always match")
	}

	processed := capture.ByKind(archive.FileProcessed)
	if len(processed) != 1 || processed[0].Name != "photo.jpg" {
		t.Errorf("FileProcessed events = %+v, expected photo.jpg", processed)
	}
}

func TestTagSyncCopiesMatchedFiles(t *testing.T) {
	tempDir := t.TempDir()
	srcDir := filepath.Join(tempDir, "archive", "2021", "03", "15")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatalf("creating source dir: %v", err)
	}
	tagged := filepath.Join(srcDir, "tagged.jpg")
	plain := filepath.Join(srcDir, "plain.jpg")
	for _, f := range []string{tagged, plain} {
		if err := os.WriteFile(f, []byte("jpeg bytes"), 0644); err != nil {
			t.Fatalf("writing %s: %v", f, err)
		}
	}

	reader := mocks.NewMockMetadataReader()
	reader.AddKeywords(tagged, "holiday; family")
	reader.AddKeywords(plain, "work")

	destRoot := filepath.Join(tempDir, "synced")
	capture := &report.Capture{}
	s := &TagSync{
		FS:       osfs.New(),
		Matcher:  tagmatch.New(reader, time.Minute),
		Tag:      "holiday",
		DestRoot: destRoot,
		Reporter: capture,
	}

	marker := archive.NewDateMarker(2021).WithMonth(3).WithDay(15)
	if !s.ProcessFile(tagged, marker, false) {
		t.Error("tagged file should match")
	}
	if s.ProcessFile(plain, marker, false) {
		t.Error("untagged file should not match")
	}

	copied := filepath.Join(destRoot, "2021", "03", "15", "tagged.jpg")
	content, err := os.ReadFile(copied)
	if err != nil {
		t.Fatalf("copied file missing: %v", err)
	}
	if string(content) != "jpeg bytes" {
		t.Errorf("copied content = %q", content)
	}
	if _, err := os.Stat(filepath.Join(destRoot, "2021", "03", "15", "plain.jpg")); err == nil {
		t.Error("untagged file was copied")
	}
}

func TestTagSyncCopiesThroughMockFileSystem(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["/a/2021/03/15/tagged.jpg"] = []byte("jpeg bytes")

	reader := mocks.NewMockMetadataReader()
	reader.AddKeywords("/a/2021/03/15/tagged.jpg", "holiday")

	s := &TagSync{
		FS:       fs,
		Matcher:  tagmatch.New(reader, time.Minute),
		Tag:      "holiday",
		DestRoot: "/synced",
		Reporter: &report.Capture{},
	}

	marker := archive.NewDateMarker(2021).WithMonth(3).WithDay(15)
	if !s.ProcessFile("/a/2021/03/15/tagged.jpg", marker, false) {
		t.Fatal("expected a match")
	}

	dest := filepath.Join("/synced", "2021", "03", "15", "tagged.jpg")
	if string(fs.Files[dest]) != "jpeg bytes" {
		t.Errorf("Files[%s] = %q, expected the copied content", dest, fs.Files[dest])
	}
}

func TestTagSyncDaySubdirectoryLayout(t *testing.T) {
	tempDir := t.TempDir()
	subDir := filepath.Join(tempDir, "archive", "2021", "03", "15", "panoramas")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("creating source dir: %v", err)
	}
	src := filepath.Join(subDir, "pano.jpg")
	if err := os.WriteFile(src, []byte("pano"), 0644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	reader := mocks.NewMockMetadataReader()
	reader.AddKeywords(src, "holiday")

	destRoot := filepath.Join(tempDir, "synced")
	s := &TagSync{
		FS:       osfs.New(),
		Matcher:  tagmatch.New(reader, time.Minute),
		Tag:      "holiday",
		DestRoot: destRoot,
		Reporter: &report.Capture{},
	}

	marker := archive.NewDateMarker(2021).WithMonth(3).WithDay(15)
	if !s.ProcessFile(src, marker, true) {
		t.Fatal("expected a match")
	}
	if _, err := os.Stat(filepath.Join(destRoot, "2021", "03", "15", "panoramas", "pano.jpg")); err != nil {
		t.Errorf("day subdirectory not mirrored: %v", err)
	}
}

// stubDates implements DateReader with a fixed answer per path.
type stubDates struct {
	dates map[string]time.Time
}

func (s *stubDates) CaptureDate(path string) (time.Time, error) {
	if d, ok := s.dates[path]; ok {
		return d, nil
	}
	return time.Time{}, errors.New("no EXIF date")
}

func TestAuditFlagsMismatches(t *testing.T) {
	dates := &stubDates{dates: map[string]time.Time{
		"/a/2021/03/15/right.jpg": time.Date(2021, 3, 15, 10, 0, 0, 0, time.UTC),
		"/a/2021/03/15/wrong.jpg": time.Date(2020, 7, 1, 10, 0, 0, 0, time.UTC),
	}}
	capture := &report.Capture{}
	a := &Audit{Dates: dates, Reporter: capture}

	marker := archive.NewDateMarker(2021).WithMonth(3).WithDay(15)

	if a.ProcessFile("/a/2021/03/15/right.jpg", marker, false) {
		t.Error("correctly filed photo flagged as mismatch")
	}
	if !a.ProcessFile("/a/2021/03/15/wrong.jpg", marker, false) {
		t.Error("misfiled photo not flagged")
	}
	if a.ProcessFile("/a/2021/03/15/nodate.jpg", marker, false) {
		t.Error("file without EXIF date flagged")
	}
	if a.ProcessFile("/a/2021/03/15/notes.txt", marker, false) {
		t.Error("non-JPEG file flagged")
	}

	mismatches := capture.ByKind(archive.DateMismatch)
	if len(mismatches) != 1 || mismatches[0].Detail != "2020-07-01" {
		t.Errorf("DateMismatch events = %+v, expected one for wrong.jpg", mismatches)
	}
}

func TestAuditSkipsDotfile(t *testing.T) {
	// A dotfile named ".jpg" has no extension; the base name decides,
	// not the dots elsewhere in the path.
	dates := &stubDates{dates: map[string]time.Time{
		"/a/2021/03/15/.jpg": time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC),
	}}
	a := &Audit{Dates: dates, Reporter: &report.Capture{}}

	marker := archive.NewDateMarker(2021).WithMonth(3).WithDay(15)
	if a.ProcessFile("/a/2021/03/15/.jpg", marker, false) {
		t.Error("extensionless dotfile flagged")
	}
}

func TestAuditPartialMarker(t *testing.T) {
	// A month-level marker only checks year and month.
	dates := &stubDates{dates: map[string]time.Time{
		"/a/2021/03/x.jpg": time.Date(2021, 3, 28, 0, 0, 0, 0, time.UTC),
	}}
	a := &Audit{Dates: dates, Reporter: &report.Capture{}}

	if a.ProcessFile("/a/2021/03/x.jpg", archive.NewDateMarker(2021).WithMonth(3), false) {
		t.Error("day should not be checked when the marker has no day")
	}
}
