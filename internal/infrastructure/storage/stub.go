package storage

import (
	"context"
	"errors"
	"sync"
)

// StubImageStore is an in-memory ImageStore for development and tests.
// Uploaded bytes are held in a map; URLs are synthesized from BaseURL.
type StubImageStore struct {
	// BaseURL is the base URL for generated object URLs.
	// Defaults to "https://storage.example.com" if not set.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubImageStore creates a new StubImageStore
func NewStubImageStore() *StubImageStore {
	return &StubImageStore{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubImageStore implements ImageStore
var _ ImageStore = (*StubImageStore)(nil)

// Upload stores the bytes in memory and returns a synthesized URL.
func (s *StubImageStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return s.BaseURL + "/" + key, nil
}

// Delete removes the object; missing keys are not an error.
func (s *StubImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Exists reports whether a key was uploaded.
func (s *StubImageStore) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}
