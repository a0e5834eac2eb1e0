package employee

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// DocumentService handles employee document and photo storage flows.
// Uploads are two-step: the client requests a presigned URL, uploads
// directly to object storage, then confirms so the key is attached to
// the employee record.
type DocumentService struct {
	employeeRepo   employee.EmployeeRepository
	storageService ObjectStorageService
	config         DocumentServiceConfig
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	employeeRepo employee.EmployeeRepository,
	storageService ObjectStorageService,
) *DocumentService {
	return &DocumentService{
		employeeRepo:   employeeRepo,
		storageService: storageService,
		config:         DefaultDocumentServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *DocumentService) SetConfig(config DocumentServiceConfig) {
	s.config = config
}

// InitiateDocumentUpload returns a presigned URL for uploading a document
func (s *DocumentService) InitiateDocumentUpload(ctx context.Context, employeeID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if !AllowedDocumentContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type %q is not allowed for documents", req.ContentType))
	}
	if req.SizeBytes > s.config.MaxDocumentSizeBytes {
		return nil, shared.NewDomainError("DOCUMENT_TOO_LARGE",
			fmt.Sprintf("Document exceeds the %d byte limit", s.config.MaxDocumentSizeBytes))
	}
	if len(emp.Documents) >= s.config.MaxDocumentsPerEmployee {
		return nil, shared.NewDomainError("DOCUMENT_LIMIT_EXCEEDED",
			fmt.Sprintf("Maximum %d documents per employee allowed", s.config.MaxDocumentsPerEmployee))
	}

	storageKey := documentStorageKey(employeeID, req.FileName)
	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmDocumentUpload verifies the object landed in storage and
// attaches it to the employee record
func (s *DocumentService) ConfirmDocumentUpload(ctx context.Context, employeeID uuid.UUID, req ConfirmDocumentRequest) (*DocumentResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storageService.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "File not found in storage. Upload the file first.")
	}

	doc, err := emp.AddDocument(req.Name, req.StorageKey, req.MimeType, req.SizeBytes)
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	return &DocumentResponse{
		ID:         doc.ID,
		Name:       doc.Name,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		UploadedAt: doc.UploadedAt,
	}, nil
}

// GetDocumentDownloadURL returns a presigned download URL for a document
func (s *DocumentService) GetDocumentDownloadURL(ctx context.Context, employeeID, documentID uuid.UUID) (*DownloadURLResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var storageKey string
	for _, d := range emp.Documents {
		if d.ID == documentID {
			storageKey = d.StorageKey
			break
		}
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("DOCUMENT_NOT_FOUND", "Employee does not have this document")
	}

	url, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &DownloadURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// DeleteDocument detaches a document from the employee and removes the
// object from storage. Storage deletion failures are not fatal once the
// record no longer references the key.
func (s *DocumentService) DeleteDocument(ctx context.Context, employeeID, documentID uuid.UUID) error {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return err
	}

	var storageKey string
	for _, d := range emp.Documents {
		if d.ID == documentID {
			storageKey = d.StorageKey
			break
		}
	}

	if err := emp.RemoveDocument(documentID); err != nil {
		return err
	}
	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return err
	}

	if storageKey != "" {
		_ = s.storageService.DeleteObject(ctx, storageKey)
	}

	return nil
}

// InitiatePhotoUpload returns a presigned URL for uploading a profile photo
func (s *DocumentService) InitiatePhotoUpload(ctx context.Context, employeeID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	if _, err := s.employeeRepo.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}

	if !AllowedPhotoContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("DISALLOWED_CONTENT_TYPE",
			fmt.Sprintf("Content type %q is not allowed for photos", req.ContentType))
	}

	storageKey := photoStorageKey(employeeID, req.FileName)
	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmPhotoUpload verifies the photo was uploaded and sets it as the
// profile photo, replacing any previous one
func (s *DocumentService) ConfirmPhotoUpload(ctx context.Context, employeeID uuid.UUID, storageKey string) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storageService.ObjectExists(ctx, storageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "File not found in storage. Upload the file first.")
	}

	previousKey := emp.PhotoKey
	emp.SetPhoto(storageKey)

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	if previousKey != "" && previousKey != storageKey {
		_ = s.storageService.DeleteObject(ctx, previousKey)
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// GetPhotoURL returns a presigned download URL for the profile photo
func (s *DocumentService) GetPhotoURL(ctx context.Context, employeeID uuid.UUID) (*DownloadURLResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.PhotoKey == "" {
		return nil, shared.NewDomainError("PHOTO_NOT_FOUND", "Employee has no profile photo")
	}

	url, expiresAt, err := s.storageService.GenerateDownloadURL(ctx, emp.PhotoKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("DOWNLOAD_URL_FAILED", "Failed to generate download URL")
	}

	return &DownloadURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

func documentStorageKey(employeeID uuid.UUID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("employees/%s/documents/%s%s", employeeID, uuid.New(), ext)
}

func photoStorageKey(employeeID uuid.UUID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("employees/%s/photo/%s%s", employeeID, uuid.New(), ext)
}
