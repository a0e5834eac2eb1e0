package training

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/domain/training"
)

// AllowedMaterialContentTypes whitelists what trainers may upload as
// course material.
var AllowedMaterialContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.ms-powerpoint":                                             true,
	"video/mp4":                                                                 true,
	"video/webm":                                                                true,
	"image/jpeg":                                                                true,
	"image/png":                                                                 true,
	"application/zip":                                                           true,
	"text/plain":                                                                true,
}

// ObjectStorageService abstracts presigned-URL object storage for
// training materials.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// MaterialServiceConfig bounds material uploads
type MaterialServiceConfig struct {
	UploadURLExpiry      time.Duration
	DownloadURLExpiry    time.Duration
	MaxMaterialsPerEntry int
	MaxMaterialSizeBytes int64
}

// DefaultMaterialServiceConfig returns the default upload limits
func DefaultMaterialServiceConfig() MaterialServiceConfig {
	return MaterialServiceConfig{
		UploadURLExpiry:      15 * time.Minute,
		DownloadURLExpiry:    time.Hour,
		MaxMaterialsPerEntry: 30,
		MaxMaterialSizeBytes: 500 << 20, // video content
	}
}

// MaterialService handles training material uploads through presigned URLs
type MaterialService struct {
	trainingRepo   training.TrainingRepository
	storageService ObjectStorageService
	config         MaterialServiceConfig
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(trainingRepo training.TrainingRepository, storageService ObjectStorageService) *MaterialService {
	return &MaterialService{
		trainingRepo:   trainingRepo,
		storageService: storageService,
		config:         DefaultMaterialServiceConfig(),
	}
}

// SetConfig overrides the default upload limits
func (s *MaterialService) SetConfig(config MaterialServiceConfig) {
	s.config = config
}

// InitiateUpload issues a presigned PUT URL for a new material
func (s *MaterialService) InitiateUpload(ctx context.Context, trainingID uuid.UUID, req InitiateMaterialUploadRequest) (*InitiateMaterialUploadResponse, error) {
	entry, err := s.trainingRepo.FindByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	if !AllowedMaterialContentTypes[req.ContentType] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE", "Content type is not allowed for training materials: "+req.ContentType)
	}
	if req.SizeBytes > s.config.MaxMaterialSizeBytes {
		return nil, shared.NewDomainError("MATERIAL_TOO_LARGE", "Material exceeds the maximum allowed size")
	}
	if len(entry.Materials) >= s.config.MaxMaterialsPerEntry {
		return nil, shared.NewDomainError("MATERIAL_LIMIT_EXCEEDED", "Training has reached the maximum number of materials")
	}

	storageKey := materialStorageKey(trainingID, req.FileName)
	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateMaterialUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload attaches the uploaded object to the training after
// verifying it actually exists in storage.
func (s *MaterialService) ConfirmUpload(ctx context.Context, trainingID uuid.UUID, req ConfirmMaterialRequest) (*TrainingResponse, error) {
	entry, err := s.trainingRepo.FindByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storageService.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify uploaded material")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Uploaded material was not found in storage")
	}

	if _, err := entry.AddMaterial(req.Name, req.StorageKey, req.MimeType, req.SizeBytes); err != nil {
		return nil, err
	}

	if err := s.trainingRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToTrainingResponse(entry)
	return &response, nil
}

// GetDownloadURL issues a presigned GET URL for a material
func (s *MaterialService) GetDownloadURL(ctx context.Context, trainingID, materialID uuid.UUID) (*MaterialDownloadResponse, error) {
	entry, err := s.trainingRepo.FindByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	var storageKey string
	for _, m := range entry.Materials {
		if m.ID == materialID {
			storageKey = m.StorageKey
			break
		}
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("MATERIAL_NOT_FOUND", "Training does not have this material")
	}

	url, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &MaterialDownloadResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// DeleteMaterial detaches a material and removes the stored object
func (s *MaterialService) DeleteMaterial(ctx context.Context, trainingID, materialID uuid.UUID) error {
	entry, err := s.trainingRepo.FindByID(ctx, trainingID)
	if err != nil {
		return err
	}

	var storageKey string
	for _, m := range entry.Materials {
		if m.ID == materialID {
			storageKey = m.StorageKey
			break
		}
	}

	if err := entry.RemoveMaterial(materialID); err != nil {
		return err
	}

	if err := s.trainingRepo.Save(ctx, entry); err != nil {
		return err
	}

	if storageKey != "" {
		// Best effort, the record is already detached
		_ = s.storageService.DeleteObject(ctx, storageKey)
	}

	return nil
}

func materialStorageKey(trainingID uuid.UUID, fileName string) string {
	return fmt.Sprintf("trainings/%s/materials/%s%s", trainingID, uuid.New(), filepath.Ext(fileName))
}
