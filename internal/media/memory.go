package media

import (
	"context"
	"errors"
	"sync"
)

// ErrFailingStore is returned by a MemoryStore after FailAfter saves.
var ErrFailingStore = errors.New("media store unavailable")

// MemoryStore keeps files in memory. It backs MEDIA_BACKEND=memory and tests.
type MemoryStore struct {
	mu    sync.Mutex
	files map[string][]byte

	// FailAfter makes Save fail once this many saves succeeded; zero disables it.
	FailAfter int
	saves     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, dir, filename, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAfter > 0 && s.saves >= s.FailAfter {
		return "", ErrFailingStore
	}
	s.saves++
	rel := NewPath(dir, filename)
	s.files[rel] = append([]byte(nil), data...)
	return rel, nil
}

func (s *MemoryStore) Remove(_ context.Context, relPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, relPath)
	return nil
}

// Get returns the stored bytes for a path.
func (s *MemoryStore) Get(relPath string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[relPath]
	return b, ok
}

// Len returns the number of stored files.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
