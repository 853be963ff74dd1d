package services

import (
	"context"

	"github.com/gloucester-auto/dealership-api/config"
)

// ImageStore abstracts the object store backing vehicle images. Store
// validates the payload before any write and returns a publicly fetchable
// URL. Delete is best-effort from the caller's point of view: repository
// cleanup logs failures instead of propagating them.
type ImageStore interface {
	Store(ctx context.Context, data []byte, contentType, originalName string) (string, error)
	Delete(ctx context.Context, url string) error
}

var imageStoreInstance ImageStore

// InitImageStore initializes the image store selected by the configuration:
// S3 when a bucket is configured, the local-disk store otherwise.
func InitImageStore(cfg *config.Config) (ImageStore, error) {
	var (
		store ImageStore
		err   error
	)

	if cfg.UsesS3() {
		store, err = NewS3ImageStore(cfg)
	} else {
		store, err = NewLocalImageStore(cfg.UploadDir, cfg.PublicBaseURL)
	}
	if err != nil {
		return nil, err
	}

	imageStoreInstance = store
	return store, nil
}

// GetImageStore returns the initialized image store instance
func GetImageStore() ImageStore {
	return imageStoreInstance
}

// SetImageStore sets the image store instance (primarily for testing)
func SetImageStore(store ImageStore) {
	imageStoreInstance = store
}
