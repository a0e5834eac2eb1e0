package training

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/domain/shared"
)

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func newMaterialService(trainingRepo *MockTrainingRepository, storage *MockObjectStorage) *MaterialService {
	return NewMaterialService(trainingRepo, storage)
}

func TestInitiateUploadIssuesPresignedURL(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	storage := new(MockObjectStorage)
	service := newMaterialService(trainingRepo, storage)

	entry := newTestTraining(t)
	expiresAt := time.Now().Add(15 * time.Minute)
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	storage.On("GenerateUploadURL", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "trainings/"+entry.ID.String()+"/materials/") && strings.HasSuffix(key, ".pdf")
	}), "application/pdf", 15*time.Minute).Return("https://bucket.example.com/upload", expiresAt, nil)

	resp, err := service.InitiateUpload(context.Background(), entry.ID, InitiateMaterialUploadRequest{
		FileName:    "slides.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1 << 20,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/upload", resp.UploadURL)
	assert.True(t, strings.HasSuffix(resp.StorageKey, ".pdf"))
	assert.Equal(t, expiresAt, resp.ExpiresAt)
}

func TestInitiateUploadDisallowedContentType(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	storage := new(MockObjectStorage)
	service := newMaterialService(trainingRepo, storage)

	entry := newTestTraining(t)
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)

	_, err := service.InitiateUpload(context.Background(), entry.ID, InitiateMaterialUploadRequest{
		FileName:    "setup.exe",
		ContentType: "application/x-msdownload",
		SizeBytes:   1 << 20,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DISALLOWED_CONTENT_TYPE", domainErr.Code)
	storage.AssertNotCalled(t, "GenerateUploadURL")
}

func TestInitiateUploadTooLarge(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	storage := new(MockObjectStorage)
	service := newMaterialService(trainingRepo, storage)
	service.SetConfig(MaterialServiceConfig{
		UploadURLExpiry:      15 * time.Minute,
		DownloadURLExpiry:    time.Hour,
		MaxMaterialsPerEntry: 30,
		MaxMaterialSizeBytes: 1 << 20,
	})

	entry := newTestTraining(t)
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)

	_, err := service.InitiateUpload(context.Background(), entry.ID, InitiateMaterialUploadRequest{
		FileName:    "course.mp4",
		ContentType: "video/mp4",
		SizeBytes:   2 << 20,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MATERIAL_TOO_LARGE", domainErr.Code)
}

func TestConfirmUploadAttachesMaterial(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	storage := new(MockObjectStorage)
	service := newMaterialService(trainingRepo, storage)

	entry := newTestTraining(t)
	key := "trainings/" + entry.ID.String() + "/materials/abc.pdf"
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	storage.On("ObjectExists", mock.Anything, key).Return(true, nil)
	trainingRepo.On("Save", mock.Anything, entry).Return(nil)

	resp, err := service.ConfirmUpload(context.Background(), entry.ID, ConfirmMaterialRequest{
		StorageKey: key,
		Name:       "Course Slides",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
	})

	require.NoError(t, err)
	require.Len(t, resp.Materials, 1)
	assert.Equal(t, "Course Slides", resp.Materials[0].Name)
}

func TestConfirmUploadMissingObject(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	storage := new(MockObjectStorage)
	service := newMaterialService(trainingRepo, storage)

	entry := newTestTraining(t)
	key := "trainings/" + entry.ID.String() + "/materials/missing.pdf"
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	storage.On("ObjectExists", mock.Anything, key).Return(false, nil)

	_, err := service.ConfirmUpload(context.Background(), entry.ID, ConfirmMaterialRequest{
		StorageKey: key,
		Name:       "Course Slides",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPLOAD_NOT_FOUND", domainErr.Code)
	trainingRepo.AssertNotCalled(t, "Save")
}

func TestDeleteMaterialRemovesStoredObject(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	storage := new(MockObjectStorage)
	service := newMaterialService(trainingRepo, storage)

	entry := newTestTraining(t)
	material, err := entry.AddMaterial("Course Slides", "trainings/key.pdf", "application/pdf", 2048)
	require.NoError(t, err)

	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	trainingRepo.On("Save", mock.Anything, entry).Return(nil)
	storage.On("DeleteObject", mock.Anything, "trainings/key.pdf").Return(nil)

	err = service.DeleteMaterial(context.Background(), entry.ID, material.ID)

	require.NoError(t, err)
	assert.Empty(t, entry.Materials)
	storage.AssertCalled(t, "DeleteObject", mock.Anything, "trainings/key.pdf")
}

func TestGetDownloadURLUnknownMaterial(t *testing.T) {
	trainingRepo := new(MockTrainingRepository)
	storage := new(MockObjectStorage)
	service := newMaterialService(trainingRepo, storage)

	entry := newTestTraining(t)
	trainingRepo.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)

	_, err := service.GetDownloadURL(context.Background(), entry.ID, uuid.New())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MATERIAL_NOT_FOUND", domainErr.Code)
}
