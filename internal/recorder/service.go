// Package recorder implements the recording workflow: sentence-file
// ingestion, per-sentence audio recording, and the destructive packaging of
// a session's recordings into a ZIP archive.
package recorder

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"readaloud/internal/storage"
	"readaloud/internal/stores/mapping"
	"readaloud/internal/stores/sentences"
)

// ManifestName is the fixed name of the TSV manifest inside the archive.
const ManifestName = "mapping.tsv"

const manifestHeader = "audio_filename\tsentence"

var (
	// ErrNoRecordings is returned by Package when the session has no mapping.
	ErrNoRecordings = errors.New("no recordings found")

	// ErrInvalidText is returned by Ingest when the uploaded file is not
	// valid UTF-8 text.
	ErrInvalidText = errors.New("sentence file is not valid text")
)

// Service coordinates the stores behind the recording workflow. Construct
// one at startup and share it across handlers.
type Service struct {
	blobs     storage.BlobStore
	mappings  *mapping.Store
	sentences *sentences.Store
	locks     *sessionLocks
}

// NewService creates a recorder service over the given blob store
func NewService(blobs storage.BlobStore) *Service {
	return &Service{
		blobs:     blobs,
		mappings:  mapping.NewStore(blobs),
		sentences: sentences.NewStore(blobs),
		locks:     newSessionLocks(),
	}
}

// Filename derives the audio filename for a sentence. It is a pure function
// of the sentence text, so re-recording the same sentence overwrites the
// prior blob and mapping entry.
func Filename(sentence string) string {
	sum := md5.Sum([]byte(sentence))
	return hex.EncodeToString(sum[:]) + ".webm"
}

// Ingest normalizes an uploaded sentence file into an ordered list of
// non-empty trimmed lines and persists it for the session
func (s *Service) Ingest(ctx context.Context, sessionID string, file []byte) ([]string, error) {
	if !utf8.Valid(file) {
		return nil, ErrInvalidText
	}

	lines := strings.Split(string(file), "\n")
	list := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			list = append(list, line)
		}
	}

	if err := s.sentences.Save(ctx, sessionID, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Sentences returns the session's most recently ingested sentence list
func (s *Service) Sentences(ctx context.Context, sessionID string) ([]string, error) {
	return s.sentences.Load(ctx, sessionID)
}

// Record stores one audio blob for a sentence and upserts the session's
// mapping. The blob is written before the mapping is touched: a failed blob
// write must never leave a mapping entry pointing at nothing.
func (s *Service) Record(ctx context.Context, sessionID, sentence string, audio []byte) (string, error) {
	if strings.TrimSpace(sentence) == "" {
		return "", fmt.Errorf("sentence text cannot be empty")
	}

	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	filename := Filename(sentence)
	if err := s.blobs.Put(ctx, mapping.AudioPath(sessionID, filename), audio, "audio/webm"); err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}

	m, err := s.mappings.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	m.Set(filename, sentence)
	if err := s.mappings.Save(ctx, sessionID, m); err != nil {
		return "", err
	}

	return filename, nil
}

// Package bundles every recording of the session plus a TSV manifest into an
// in-memory ZIP archive, deleting the audio blobs and the mapping as it
// goes. After a successful call no session state remains: downloading is a
// one-time claim of the recordings.
//
// A mapping entry whose blob is already gone is skipped, not fatal; partial
// recovery of a user's recordings beats total failure.
func (s *Service) Package(ctx context.Context, sessionID string) ([]byte, error) {
	lock := s.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	m, err := s.mappings.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if m.Len() == 0 {
		return nil, ErrNoRecordings
	}

	var manifest strings.Builder
	manifest.WriteString(manifestHeader + "\n")

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, entry := range m.Entries() {
		manifest.WriteString(entry.Filename + "\t" + entry.Sentence + "\n")

		path := mapping.AudioPath(sessionID, entry.Filename)
		audio, err := s.blobs.Get(ctx, path)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				log.Printf("[RECORDER]: skipping %s: %v", path, err)
			}
			continue
		}

		w, err := zw.Create(entry.Filename)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("add %s to archive: %w", entry.Filename, err)
		}
		if _, err := w.Write(audio); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write %s to archive: %w", entry.Filename, err)
		}

		if err := s.blobs.Delete(ctx, path); err != nil {
			log.Printf("[RECORDER]: failed to delete %s: %v", path, err)
		}
	}

	w, err := zw.Create(ManifestName)
	if err != nil {
		zw.Close()
		return nil, fmt.Errorf("add manifest to archive: %w", err)
	}
	if _, err := w.Write([]byte(manifest.String())); err != nil {
		zw.Close()
		return nil, fmt.Errorf("write manifest to archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	if err := s.mappings.Clear(ctx, sessionID); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
