// Package mocks provides mock implementations for testing.
package mocks

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/niwi/photoarc/internal/ports"
)

// MockFileSystem implements ports.FileSystem for testing.
type MockFileSystem struct {
	// Files maps paths to file contents for Open/Stat
	Files map[string][]byte
	// Dirs maps paths to directory entries for ReadDir
	Dirs map[string][]os.DirEntry
	// Errors maps paths to errors (for simulating failures)
	Errors map[string]error
	// Created records paths passed to MkdirAll and Create
	Created []string
}

// NewMockFileSystem creates a new mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:  make(map[string][]byte),
		Dirs:   make(map[string][]os.DirEntry),
		Errors: make(map[string]error),
	}
}

// AddDir registers a directory at path with the given child entries.
// Child names beginning with "d:" become directory entries, the rest files;
// the prefix keeps fixture tables compact.
func (m *MockFileSystem) AddDir(path string, children ...string) {
	entries := make([]os.DirEntry, 0, len(children))
	for _, child := range children {
		if name, ok := trimPrefix(child, "d:"); ok {
			entries = append(entries, &MockDirEntry{EntryName: name, Dir: true})
		} else {
			entries = append(entries, &MockDirEntry{EntryName: child})
			m.Files[filepath.Join(path, child)] = []byte{}
		}
	}
	m.Dirs[path] = entries
}

func trimPrefix(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):], true
	}
	return s, false
}

// ReadDir reads the named directory and returns directory entries.
func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if entries, ok := m.Dirs[name]; ok {
		return entries, nil
	}
	return nil, os.ErrNotExist
}

// Stat returns file info for the named file.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if _, ok := m.Dirs[name]; ok {
		return &MockFileInfo{FileName: filepath.Base(name), Dir: true}, nil
	}
	if content, ok := m.Files[name]; ok {
		return &MockFileInfo{FileName: filepath.Base(name), FileSize: int64(len(content))}, nil
	}
	return nil, os.ErrNotExist
}

// Open opens the named file for reading.
func (m *MockFileSystem) Open(name string) (fs.File, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	content, ok := m.Files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &mockFile{name: name, content: content}, nil
}

// MkdirAll creates a directory along with any necessary parents.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if err, ok := m.Errors[path]; ok {
		return err
	}
	if _, ok := m.Dirs[path]; !ok {
		m.Dirs[path] = nil
	}
	m.Created = append(m.Created, path)
	return nil
}

// Create creates or truncates the named file. Bytes written through the
// returned writer land in Files[name] once it is closed.
func (m *MockFileSystem) Create(name string) (io.WriteCloser, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	m.Files[name] = []byte{}
	m.Created = append(m.Created, name)
	return &mockWriter{fs: m, name: name}, nil
}

// MockFileInfo implements os.FileInfo for testing.
type MockFileInfo struct {
	FileName string
	FileSize int64
	Dir      bool
	Modified time.Time
}

func (fi *MockFileInfo) Name() string       { return fi.FileName }
func (fi *MockFileInfo) Size() int64        { return fi.FileSize }
func (fi *MockFileInfo) Mode() os.FileMode  { return 0 }
func (fi *MockFileInfo) ModTime() time.Time { return fi.Modified }
func (fi *MockFileInfo) IsDir() bool        { return fi.Dir }
func (fi *MockFileInfo) Sys() interface{}   { return nil }

// MockDirEntry implements os.DirEntry for testing.
type MockDirEntry struct {
	EntryName string
	Dir       bool
}

func (e *MockDirEntry) Name() string      { return e.EntryName }
func (e *MockDirEntry) IsDir() bool       { return e.Dir }
func (e *MockDirEntry) Type() fs.FileMode { return 0 }
func (e *MockDirEntry) Info() (fs.FileInfo, error) {
	return &MockFileInfo{FileName: e.EntryName, Dir: e.Dir}, nil
}

// mockFile implements fs.File for testing.
type mockFile struct {
	name    string
	content []byte
	offset  int
}

func (f *mockFile) Stat() (fs.FileInfo, error) {
	return &MockFileInfo{FileName: f.name, FileSize: int64(len(f.content))}, nil
}

func (f *mockFile) Read(p []byte) (int, error) {
	if f.offset >= len(f.content) {
		return 0, io.EOF
	}
	n := copy(p, f.content[f.offset:])
	f.offset += n
	return n, nil
}

func (f *mockFile) Close() error { return nil }

// mockWriter buffers writes and commits them to the owning filesystem on Close.
type mockWriter struct {
	fs   *MockFileSystem
	name string
	buf  []byte
}

func (w *mockWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *mockWriter) Close() error {
	w.fs.Files[w.name] = w.buf
	return nil
}

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
