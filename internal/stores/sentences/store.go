// Package sentences persists each session's most recently uploaded sentence
// list so the client can redisplay it after a reload. The list is replaced
// wholesale on every upload.
package sentences

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"readaloud/internal/storage"
)

// Path returns the blob path of a session's sentence list
func Path(sessionID string) string {
	return sessionID + "/sentences"
}

// Store reads and writes session sentence lists through the blob store.
type Store struct {
	blobs storage.BlobStore
}

// NewStore creates a sentence store over the given blob store
func NewStore(blobs storage.BlobStore) *Store {
	return &Store{blobs: blobs}
}

// Save overwrites the session's sentence list
func (s *Store) Save(ctx context.Context, sessionID string, list []string) error {
	data := []byte(strings.Join(list, "\n"))
	if err := s.blobs.Put(ctx, Path(sessionID), data, "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("save sentences for session %s: %w", sessionID, err)
	}
	return nil
}

// Load returns the session's sentence list, or an empty list if the session
// has never uploaded one
func (s *Store) Load(ctx context.Context, sessionID string) ([]string, error) {
	data, err := s.blobs.Get(ctx, Path(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sentences for session %s: %w", sessionID, err)
	}

	if len(data) == 0 {
		return []string{}, nil
	}
	return strings.Split(string(data), "\n"), nil
}
