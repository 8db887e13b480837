// Package mapping persists the per-session association between audio
// filenames and the sentence text they were recorded from. The mapping is
// the source of truth for packaging: its entries decide which blobs end up
// in the archive and what the manifest says about them.
package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"readaloud/internal/storage"
)

// ErrCorrupt is returned by Load when the persisted payload cannot be
// parsed as a mapping.
var ErrCorrupt = errors.New("corrupt mapping payload")

// Entry is one filename/sentence pair.
type Entry struct {
	Filename string `json:"filename"`
	Sentence string `json:"sentence"`
}

// Mapping is an ordered filename-to-sentence mapping. Filenames are unique;
// entries keep their first-insertion order so the packaged manifest lists
// recordings in the order they were made.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty mapping
func New() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Set upserts the sentence for filename. An existing filename keeps its
// position; a new one is appended.
func (m *Mapping) Set(filename, sentence string) {
	if i, ok := m.index[filename]; ok {
		m.entries[i].Sentence = sentence
		return
	}
	m.index[filename] = len(m.entries)
	m.entries = append(m.entries, Entry{Filename: filename, Sentence: sentence})
}

// Get returns the sentence recorded under filename
func (m *Mapping) Get(filename string) (string, bool) {
	i, ok := m.index[filename]
	if !ok {
		return "", false
	}
	return m.entries[i].Sentence, true
}

// Len returns the number of entries
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Entries returns the entries in insertion order
func (m *Mapping) Entries() []Entry {
	return m.entries
}

// Path returns the blob path of a session's mapping
func Path(sessionID string) string {
	return sessionID + "/mapping"
}

// AudioPath returns the blob path of one of a session's recordings
func AudioPath(sessionID, filename string) string {
	return sessionID + "/" + filename
}

// Store reads and writes session mappings through the blob store.
type Store struct {
	blobs storage.BlobStore
}

// NewStore creates a mapping store over the given blob store
func NewStore(blobs storage.BlobStore) *Store {
	return &Store{blobs: blobs}
}

// Load reads the session's mapping. A session with no persisted mapping
// yields an empty one.
func (s *Store) Load(ctx context.Context, sessionID string) (*Mapping, error) {
	data, err := s.blobs.Get(ctx, Path(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load mapping for session %s: %w", sessionID, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	m := New()
	for _, e := range entries {
		m.Set(e.Filename, e.Sentence)
	}
	return m, nil
}

// Save serializes the full mapping and overwrites the session's mapping
// blob. Callers must load-mutate-save; updates are not incremental.
func (s *Store) Save(ctx context.Context, sessionID string, m *Mapping) error {
	data, err := json.Marshal(m.Entries())
	if err != nil {
		return fmt.Errorf("serialize mapping: %w", err)
	}

	if err := s.blobs.Put(ctx, Path(sessionID), data, "application/json"); err != nil {
		return fmt.Errorf("save mapping for session %s: %w", sessionID, err)
	}
	return nil
}

// Clear deletes the session's mapping blob. Clearing a session with no
// mapping is a no-op.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.blobs.Delete(ctx, Path(sessionID)); err != nil {
		return fmt.Errorf("clear mapping for session %s: %w", sessionID, err)
	}
	return nil
}
