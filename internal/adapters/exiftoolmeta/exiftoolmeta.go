// Package exiftoolmeta reads embedded image metadata through a long-lived
// exiftool process using barasher/go-exiftool.
package exiftoolmeta

import (
	"fmt"
	"strings"

	exiftool "github.com/barasher/go-exiftool"

	"github.com/niwi/photoarc/internal/ports"
)

// iptcFields are the exiftool field names folded into the "IPTC" metadata
// directory; everything else lands in "EXIF". exiftool's flat output drops
// the group, so the grouping the matcher depends on is rebuilt here.
var iptcFields = map[string]bool{
	"Keywords":                    true,
	"ObjectName":                  true,
	"Headline":                    true,
	"Caption-Abstract":            true,
	"Writer-Editor":               true,
	"By-line":                     true,
	"Credit":                      true,
	"Source":                      true,
	"City":                        true,
	"Sub-location":                true,
	"Province-State":              true,
	"Country-PrimaryLocationName": true,
	"CopyrightNotice":             true,
	"SpecialInstructions":         true,
}

// Reader implements ports.MetadataReader on top of exiftool.
type Reader struct {
	et *exiftool.Exiftool
}

// New starts the exiftool process. Callers must Close the Reader when done.
func New() (*Reader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("initializing exiftool: %w", err)
	}
	return &Reader{et: et}, nil
}

// Close stops the exiftool process.
func (r *Reader) Close() error {
	return r.et.Close()
}

// ReadMetadata extracts the file's metadata and groups it into directories.
func (r *Reader) ReadMetadata(path string) (ports.Metadata, error) {
	fm := r.et.ExtractMetadata(path)[0]
	if fm.Err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotAnImage, path)
	}

	metadata := ports.Metadata{}
	for name, value := range fm.Fields {
		group := "EXIF"
		if iptcFields[name] {
			group = "IPTC"
		}
		if metadata[group] == nil {
			metadata[group] = make(map[string]ports.MetadataTag)
		}
		metadata[group][name] = ports.MetadataTag{
			Name:        name,
			Description: renderValue(value),
		}
	}
	return metadata, nil
}

// renderValue flattens an exiftool field value to the display form
// exiftool itself prints: list values join with "; ".
func renderValue(value interface{}) string {
	if list, ok := value.([]interface{}); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprintf("%v", value)
}

// Compile-time check that Reader implements ports.MetadataReader.
var _ ports.MetadataReader = (*Reader)(nil)
