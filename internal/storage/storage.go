package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/config"
)

// ErrNotFound is returned by Download when no object exists under key.
var ErrNotFound = errors.New("object not found")

type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// New returns the backend selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal:
		return NewLocalStorage(cfg.MediaDir)
	case config.StorageS3:
		return NewS3Storage(ctx, S3Options{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			UseSSL:          cfg.S3UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// UploadKey namespaces an uploaded file under a random id so that two
// uploads with the same name never collide.
func UploadKey(id, filename string) string {
	return fmt.Sprintf("uploads/%s/%s", id, filename)
}

func ReportName(datasetID int64) string {
	return fmt.Sprintf("report_%d.pdf", datasetID)
}

func ReportKey(name string) string {
	return "reports/" + name
}
