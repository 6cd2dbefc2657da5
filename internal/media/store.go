// Package media stores uploaded image binaries and addresses them by a relative path.
package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded binaries.
type Store interface {
	// Save writes data under dir and returns the generated relative path.
	Save(ctx context.Context, dir, filename, contentType string, data []byte) (string, error)
	// Remove deletes a previously saved path. Removing a missing path is not an error.
	Remove(ctx context.Context, relPath string) error
}

// NewPath generates a collision-free relative path under dir, keeping the
// original file extension.
func NewPath(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(dir, uuid.NewString()+ext)
}

// DiskStore keeps files below a local media root.
type DiskStore struct {
	root string
}

// NewDiskStore creates the media root if needed.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the directory served under /media.
func (s *DiskStore) Root() string {
	return s.root
}

func (s *DiskStore) Save(_ context.Context, dir, filename, _ string, data []byte) (string, error) {
	rel := NewPath(dir, filename)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	return rel, nil
}

func (s *DiskStore) Remove(_ context.Context, relPath string) error {
	full := filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+relPath)))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", relPath, err)
	}
	return nil
}
