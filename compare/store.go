// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compare

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds reference images addressed by slash-separated relative ids.
type Store interface {
	// Read returns the reference stored under id. A missing reference is
	// reported with an error wrapping fs.ErrNotExist.
	Read(id string) ([]byte, error)

	// Write stores data under id, replacing any previous reference.
	Write(id string, data []byte) error

	// Location returns a human readable location of id.
	Location(id string) string
}

// FileStore stores references as files below Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Location returns the file path of id.
func (s *FileStore) Location(id string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(id))
}

// Read implements Store.
func (s *FileStore) Read(id string) ([]byte, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Location(id))
}

// Write implements Store. Parent directories are created as needed.
func (s *FileStore) Write(id string, data []byte) error {
	if err := validID(id); err != nil {
		return err
	}
	path := s.Location(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// validID rejects ids that would escape the store directory.
func validID(id string) error {
	if id == "" {
		return fmt.Errorf("compare: empty reference id")
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(id)))
	if filepath.IsAbs(id) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("compare: reference id %q escapes the store", id)
	}
	return nil
}
