// Package storage abstracts the byte storage that holds audio blobs,
// mapping blobs, and sentence lists. The service only ever talks to the
// BlobStore interface; the concrete backend is chosen once at startup.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no object exists at the given path.
var ErrNotFound = errors.New("object not found")

// ObjectInfo describes a stored object for listing purposes.
type ObjectInfo struct {
	Path    string
	Size    int64
	Updated time.Time
}

// BlobStore is a key-value store for byte payloads addressed by a
// slash-separated path. Individual operations are atomic; there are no
// transactional guarantees across calls.
type BlobStore interface {
	// Put stores data at path, overwriting any existing object
	Put(ctx context.Context, path string, data []byte, contentType string) error

	// Get returns the object at path, or ErrNotFound if absent
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether an object is present at path
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes the object at path. Deleting an absent object is a no-op
	Delete(ctx context.Context, path string) error

	// List returns every object whose path starts with prefix
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
