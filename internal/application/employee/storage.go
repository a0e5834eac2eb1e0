package employee

import (
	"context"
	"time"
)

// AllowedDocumentContentTypes whitelists content types accepted for
// employee documents. SVG is excluded because it can carry scripts.
var AllowedDocumentContentTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain":      true,
	"text/csv":        true,
	"application/zip": true,
}

// AllowedPhotoContentTypes whitelists content types accepted for
// profile photos.
var AllowedPhotoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ObjectStorageService defines the object storage operations the
// employee services need. Implemented by the infrastructure layer
// (S3 or a local stub).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file.
	// Returns the upload URL and expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file.
	// Returns the download URL and expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage.
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// DocumentServiceConfig holds configuration for document and photo handling.
type DocumentServiceConfig struct {
	UploadURLExpiry         time.Duration
	DownloadURLExpiry       time.Duration
	MaxDocumentsPerEmployee int
	MaxDocumentSizeBytes    int64
}

// DefaultDocumentServiceConfig returns the default configuration.
func DefaultDocumentServiceConfig() DocumentServiceConfig {
	return DocumentServiceConfig{
		UploadURLExpiry:         15 * time.Minute,
		DownloadURLExpiry:       1 * time.Hour,
		MaxDocumentsPerEmployee: 50,
		MaxDocumentSizeBytes:    25 << 20,
	}
}
