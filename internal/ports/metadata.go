package ports

import "errors"

// ErrNotAnImage reports that a file has no readable image metadata.
// Callers treat it as "no match", not as a failure of the run.
var ErrNotAnImage = errors.New("not an image file")

// MetadataTag is a single named metadata entry with its rendered value.
type MetadataTag struct {
	Name        string
	Description string
}

// Metadata maps a metadata directory name (e.g. "IPTC", "EXIF") to the
// tags it contains, keyed by tag name.
type Metadata map[string]map[string]MetadataTag

// MetadataReader extracts embedded metadata from an image file.
// Production code uses the exiftoolmeta adapter; tests use MockMetadataReader.
type MetadataReader interface {
	// ReadMetadata returns the file's metadata grouped by directory.
	// Returns ErrNotAnImage when the file is not a readable image.
	ReadMetadata(path string) (Metadata, error)
}
