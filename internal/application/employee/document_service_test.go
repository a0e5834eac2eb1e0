package employee

import (
	"context"
	"strings"
	"testing"
	"time"

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

func TestInitiateDocumentUpload(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	service := NewDocumentService(empRepo, storage)

	emp := newTestEmployee(t, "EMP-0001")
	expiresAt := time.Now().Add(15 * time.Minute)

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	storage.On("GenerateUploadURL", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "employees/"+emp.ID.String()+"/documents/") && strings.HasSuffix(key, ".pdf")
	}), "application/pdf", 15*time.Minute).Return("https://storage/upload", expiresAt, nil)

	resp, err := service.InitiateDocumentUpload(context.Background(), emp.ID, InitiateUploadRequest{
		FileName:    "contract.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://storage/upload", resp.UploadURL)
	assert.NotEmpty(t, resp.StorageKey)
}

func TestInitiateDocumentUploadDisallowedType(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	service := NewDocumentService(empRepo, storage)

	emp := newTestEmployee(t, "EMP-0001")
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)

	_, err := service.InitiateDocumentUpload(context.Background(), emp.ID, InitiateUploadRequest{
		FileName:    "script.svg",
		ContentType: "image/svg+xml",
		SizeBytes:   1024,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DISALLOWED_CONTENT_TYPE", domainErr.Code)
	storage.AssertNotCalled(t, "GenerateUploadURL")
}

func TestConfirmDocumentUpload(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	service := NewDocumentService(empRepo, storage)

	emp := newTestEmployee(t, "EMP-0001")
	key := "employees/" + emp.ID.String() + "/documents/abc.pdf"

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	storage.On("ObjectExists", mock.Anything, key).Return(true, nil)
	empRepo.On("Save", mock.Anything, emp).Return(nil)

	doc, err := service.ConfirmDocumentUpload(context.Background(), emp.ID, ConfirmDocumentRequest{
		StorageKey: key,
		Name:       "contract.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  1024,
	})

	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", doc.Name)
	require.Len(t, emp.Documents, 1)
	assert.Equal(t, key, emp.Documents[0].StorageKey)
}

func TestConfirmDocumentUploadMissingObject(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	service := NewDocumentService(empRepo, storage)

	emp := newTestEmployee(t, "EMP-0001")
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	storage.On("ObjectExists", mock.Anything, "missing-key").Return(false, nil)

	_, err := service.ConfirmDocumentUpload(context.Background(), emp.ID, ConfirmDocumentRequest{
		StorageKey: "missing-key",
		Name:       "contract.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  1024,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UPLOAD_NOT_FOUND", domainErr.Code)
	empRepo.AssertNotCalled(t, "Save")
}

func TestDeleteDocumentRemovesObject(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	service := NewDocumentService(empRepo, storage)

	emp := newTestEmployee(t, "EMP-0001")
	doc, err := emp.AddDocument("contract.pdf", "employees/x/documents/abc.pdf", "application/pdf", 1024)
	require.NoError(t, err)

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	empRepo.On("Save", mock.Anything, emp).Return(nil)
	storage.On("DeleteObject", mock.Anything, "employees/x/documents/abc.pdf").Return(nil)

	require.NoError(t, service.DeleteDocument(context.Background(), emp.ID, doc.ID))
	assert.Empty(t, emp.Documents)
	storage.AssertExpectations(t)
}

func TestConfirmPhotoUploadReplacesPrevious(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	service := NewDocumentService(empRepo, storage)

	emp := newTestEmployee(t, "EMP-0001")
	emp.SetPhoto("employees/x/photo/old.jpg")

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	storage.On("ObjectExists", mock.Anything, "employees/x/photo/new.jpg").Return(true, nil)
	empRepo.On("Save", mock.Anything, emp).Return(nil)
	storage.On("DeleteObject", mock.Anything, "employees/x/photo/old.jpg").Return(nil)

	resp, err := service.ConfirmPhotoUpload(context.Background(), emp.ID, "employees/x/photo/new.jpg")

	require.NoError(t, err)
	assert.True(t, resp.HasPhoto)
	assert.Equal(t, "employees/x/photo/new.jpg", emp.PhotoKey)
	storage.AssertExpectations(t)
}

func TestGetPhotoURLWithoutPhoto(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	service := NewDocumentService(empRepo, storage)

	emp := newTestEmployee(t, "EMP-0001")
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)

	_, err := service.GetPhotoURL(context.Background(), emp.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PHOTO_NOT_FOUND", domainErr.Code)
}
