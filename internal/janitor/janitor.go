// Package janitor sweeps abandoned session state out of the blob store.
// The packaging flow destroys a session's blobs on download, but a session
// whose cookie simply expires would otherwise leak its recordings forever.
package janitor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"readaloud/internal/storage"
)

// Janitor periodically deletes every object belonging to sessions whose
// newest object is older than the retention window.
type Janitor struct {
	blobs     storage.BlobStore
	schedule  string
	retention time.Duration
	cron      *cron.Cron
}

// New creates a janitor. An empty schedule disables the sweep.
func New(blobs storage.BlobStore, schedule string, retention time.Duration) *Janitor {
	return &Janitor{
		blobs:     blobs,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(),
	}
}

// Start begins the scheduled sweep
func (j *Janitor) Start() error {
	if j.schedule == "" {
		log.Printf("[JANITOR]: no cleanup schedule configured, retention sweep disabled")
		return nil
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.Sweep(context.Background(), time.Now().Add(-j.retention)); err != nil {
			log.Printf("[JANITOR]: sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	log.Printf("[JANITOR]: sweeping sessions idle for %s on schedule %q", j.retention, j.schedule)
	return nil
}

// Stop gracefully stops the scheduled sweep
func (j *Janitor) Stop() {
	j.cron.Stop()
}

// Sweep deletes every session whose newest object predates cutoff. Objects
// are grouped by the session id prefix of their path.
func (j *Janitor) Sweep(ctx context.Context, cutoff time.Time) error {
	objects, err := j.blobs.List(ctx, "")
	if err != nil {
		return fmt.Errorf("list objects: %w", err)
	}

	paths := make(map[string][]string)
	newest := make(map[string]time.Time)
	for _, obj := range objects {
		sessionID, _, ok := strings.Cut(obj.Path, "/")
		if !ok {
			continue
		}
		paths[sessionID] = append(paths[sessionID], obj.Path)
		if obj.Updated.After(newest[sessionID]) {
			newest[sessionID] = obj.Updated
		}
	}

	removed := 0
	for sessionID, sessionPaths := range paths {
		if !newest[sessionID].Before(cutoff) {
			continue
		}

		for _, path := range sessionPaths {
			if err := j.blobs.Delete(ctx, path); err != nil {
				log.Printf("[JANITOR]: failed to delete %s: %v", path, err)
			}
		}
		removed++
	}

	if removed > 0 {
		log.Printf("[JANITOR]: removed %d expired session(s)", removed)
	}
	return nil
}
