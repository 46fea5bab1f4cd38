package mocks

import (
	"github.com/niwi/photoarc/internal/ports"
)

// MockMetadataReader implements ports.MetadataReader for testing.
type MockMetadataReader struct {
	// Metadata maps paths to the metadata returned for them.
	Metadata map[string]ports.Metadata
	// Errors maps paths to errors (for simulating unreadable files).
	Errors map[string]error
	// Reads records every path passed to ReadMetadata.
	Reads []string
}

// NewMockMetadataReader creates a new mock metadata reader.
func NewMockMetadataReader() *MockMetadataReader {
	return &MockMetadataReader{
		Metadata: make(map[string]ports.Metadata),
		Errors:   make(map[string]error),
	}
}

// AddKeywords registers a file whose IPTC Keywords field renders as desc.
func (m *MockMetadataReader) AddKeywords(path, desc string) {
	m.Metadata[path] = ports.Metadata{
		"IPTC": {
			"Keywords": {Name: "Keywords", Description: desc},
		},
	}
}

// ReadMetadata returns the registered metadata for path.
func (m *MockMetadataReader) ReadMetadata(path string) (ports.Metadata, error) {
	m.Reads = append(m.Reads, path)
	if err, ok := m.Errors[path]; ok {
		return nil, err
	}
	if md, ok := m.Metadata[path]; ok {
		return md, nil
	}
	return nil, ports.ErrNotAnImage
}

// Compile-time check that MockMetadataReader implements ports.MetadataReader.
var _ ports.MetadataReader = (*MockMetadataReader)(nil)
