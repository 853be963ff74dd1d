package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gloucester-auto/dealership-api/utils"
)

// LocalImageStore implements ImageStore on the local filesystem. Files are
// written under dir and served at <baseURL>/uploads/<name>.
type LocalImageStore struct {
	dir     string
	baseURL string
}

// NewLocalImageStore creates a disk-backed image store, creating the upload
// directory if needed.
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the directory uploads are written to.
func (s *LocalImageStore) Dir() string {
	return s.dir
}

// Store validates the payload and writes it to disk under a unique name.
func (s *LocalImageStore) Store(_ context.Context, data []byte, contentType, originalName string) (string, error) {
	if err := utils.ValidateImage(int64(len(data)), contentType); err != nil {
		return "", err
	}

	ext := utils.ImageExtension(contentType, originalName)
	name := fmt.Sprintf("%s-%d%s", uuid.NewString(), time.Now().Unix(), ext)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, name), nil
}

// Delete removes the file behind a previously returned URL. URLs that do not
// point into the upload directory, and files already gone, are ignored.
func (s *LocalImageStore) Delete(_ context.Context, imageURL string) error {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return nil
	}

	name := path.Base(parsed.Path)
	// Reject anything that could escape the upload directory.
	if name == "" || name == "." || name == "/" || strings.Contains(name, "..") {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
