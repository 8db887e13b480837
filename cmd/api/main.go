package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"readaloud/internal/api"
	"readaloud/internal/janitor"
	"readaloud/internal/recorder"
	"readaloud/internal/storage"
	"readaloud/pkg/utils"
)

// Start the API server
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Construct the configured blob store once; everything persists through it
	blobs, err := newBlobStore(context.Background(), cfg)
	if err != nil {
		log.Fatal("[API-MAIN]: ", err)
	}

	svc := recorder.NewService(blobs)

	// Retention sweep for sessions whose cookies expired before download
	j := janitor.New(blobs,
		cfg.Get("CLEANUP_SCHEDULE"),
		cfg.GetDurationWithDefault("SESSION_RETENTION", 30*24*time.Hour))
	if err := j.Start(); err != nil {
		log.Fatal("[API-MAIN]: ", err)
	}
	defer j.Stop()

	// Start
	api.Start(cfg, svc)
}

// newBlobStore selects the storage backend from configuration
func newBlobStore(ctx context.Context, cfg *utils.Config) (storage.BlobStore, error) {
	switch backend := cfg.GetWithDefault("STORAGE_BACKEND", "local"); backend {
	case "local":
		return storage.NewLocalStore(cfg.GetWithDefault("STORAGE_LOCAL_DIR", "data"))

	case "gcs":
		bucket := cfg.Get("GCS_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET must be set for the gcs backend")
		}
		return storage.NewGCSStore(ctx, bucket, cfg.Get("GCS_CREDENTIALS_FILE"))

	case "memory":
		return storage.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}
}
