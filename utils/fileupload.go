package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// MaxImageSize is 10MB in bytes
	MaxImageSize = 10 * 1024 * 1024
)

// allowedImageTypes maps accepted MIME types to a canonical file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImage checks an image payload against the size ceiling and the
// MIME allow-list. It must pass before any bytes are written to storage.
func ValidateImage(size int64, contentType string) error {
	if size > MaxImageSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxImageSize/(1024*1024)),
		}
	}

	if _, ok := allowedImageTypes[normalizeContentType(contentType)]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only image files allowed (JPEG, PNG, WebP, GIF)",
		}
	}

	return nil
}

// ImageExtension returns the file extension for a stored image, preferring
// the MIME type and falling back to the original filename.
func ImageExtension(contentType, originalName string) string {
	if ext, ok := allowedImageTypes[normalizeContentType(contentType)]; ok {
		return ext
	}
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" {
		return ext
	}
	return ".bin"
}

// normalizeContentType strips parameters such as "; charset=" and lowercases.
func normalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
