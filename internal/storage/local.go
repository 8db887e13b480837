package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore persists objects as files under a root directory. Object paths
// map directly to file paths relative to the root.
type LocalStore struct {
	root string
}

// NewLocalStore creates a local filesystem store rooted at dir, creating
// the directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: dir}, nil
}

// resolve maps an object path to a file path, rejecting anything that
// would escape the root
func (s *LocalStore) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty object path")
	}

	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object path %q", path)
	}

	return filepath.Join(s.root, clean), nil
}

// Put writes data to the file backing path. The content type is not
// recorded; the filesystem has nowhere to keep it.
func (s *LocalStore) Put(_ context.Context, path string, data []byte, _ string) error {
	file, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("write object %s: %w", path, err)
	}
	return nil
}

// Get reads the file backing path
func (s *LocalStore) Get(_ context.Context, path string) ([]byte, error) {
	file, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", path, err)
	}
	return data, nil
}

// Exists reports whether the file backing path is present
func (s *LocalStore) Exists(_ context.Context, path string) (bool, error) {
	file, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(file); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("stat object %s: %w", path, err)
	}
	return true, nil
}

// Delete removes the file backing path, ignoring absent files
func (s *LocalStore) Delete(_ context.Context, path string) error {
	file, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete object %s: %w", path, err)
	}
	return nil
}

// List walks the root and returns every object whose path starts with prefix
func (s *LocalStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo

	err := filepath.WalkDir(s.root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, file)
		if err != nil {
			return err
		}

		path := filepath.ToSlash(rel)
		if !strings.HasPrefix(path, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		objects = append(objects, ObjectInfo{
			Path:    path,
			Size:    info.Size(),
			Updated: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	return objects, nil
}
