package storage

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryObject struct {
	data        []byte
	contentType string
	updated     time.Time
}

// MemoryStore is a thread-safe in-memory blob store, used for tests and
// single-process development deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore creates a new empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
	}
}

// Put stores data at path, overwriting any existing object
func (s *MemoryStore) Put(_ context.Context, path string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)

	s.objects[path] = memoryObject{
		data:        copied,
		contentType: contentType,
		updated:     time.Now(),
	}
	return nil
}

// Get returns the object at path, or ErrNotFound if absent
func (s *MemoryStore) Get(_ context.Context, path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[path]
	if !ok {
		return nil, ErrNotFound
	}

	copied := make([]byte, len(obj.data))
	copy(copied, obj.data)
	return copied, nil
}

// Exists reports whether an object is present at path
func (s *MemoryStore) Exists(_ context.Context, path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[path]
	return ok, nil
}

// Delete removes the object at path, ignoring absent objects
func (s *MemoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, path)
	return nil
}

// List returns every object whose path starts with prefix
func (s *MemoryStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var objects []ObjectInfo
	for path, obj := range s.objects {
		if strings.HasPrefix(path, prefix) {
			objects = append(objects, ObjectInfo{
				Path:    path,
				Size:    int64(len(obj.data)),
				Updated: obj.updated,
			})
		}
	}
	return objects, nil
}

// Touch backdates the stored timestamp of an object. Test helper for
// retention sweeps.
func (s *MemoryStore) Touch(path string, updated time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if obj, ok := s.objects[path]; ok {
		obj.updated = updated
		s.objects[path] = obj
	}
}
