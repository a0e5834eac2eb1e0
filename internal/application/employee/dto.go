package employee

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
)

// CreateEmployeeRequest represents a request to create an employee.
// Code is optional; when empty the next code under the default prefix
// is allocated.
type CreateEmployeeRequest struct {
	Code          string     `json:"code" binding:"omitempty,max=20"`
	FirstName     string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName      string     `json:"last_name" binding:"required,min=1,max=100"`
	MiddleName    string     `json:"middle_name" binding:"max=100"`
	Email         string     `json:"email" binding:"omitempty,email,max=200"`
	Phone         string     `json:"phone" binding:"max=50"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	PositionGroup string     `json:"position_group" binding:"required"`
	PositionTitle string     `json:"position_title" binding:"max=200"`
	Grade         string     `json:"grade" binding:"max=10"`
	DepartmentID  *uuid.UUID `json:"department_id"`
	LineManagerID *uuid.UUID `json:"line_manager_id"`
	HireDate      time.Time  `json:"hire_date" binding:"required"`
	Tags          []string   `json:"tags"`
}

// UpdateEmployeeRequest represents a request to update personal fields
type UpdateEmployeeRequest struct {
	FirstName   string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName    string     `json:"last_name" binding:"required,min=1,max=100"`
	MiddleName  string     `json:"middle_name" binding:"max=100"`
	Email       string     `json:"email" binding:"omitempty,email,max=200"`
	Phone       string     `json:"phone" binding:"max=50"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

// SetPositionRequest represents a request to change position data
type SetPositionRequest struct {
	PositionGroup string `json:"position_group" binding:"required"`
	PositionTitle string `json:"position_title" binding:"required,min=1,max=200"`
	Grade         string `json:"grade" binding:"max=10"`
}

// ChangeManagerRequest represents a request to change the line manager.
// A nil manager ID clears the manager.
type ChangeManagerRequest struct {
	LineManagerID *uuid.UUID `json:"line_manager_id"`
}

// SetDepartmentRequest represents a request to move an employee to a department
type SetDepartmentRequest struct {
	DepartmentID *uuid.UUID `json:"department_id"`
}

// TerminateEmployeeRequest represents a termination request
type TerminateEmployeeRequest struct {
	TerminationDate time.Time `json:"termination_date" binding:"required"`
}

// TagRequest represents a tag add/remove request
type TagRequest struct {
	Tag string `json:"tag" binding:"required,min=1,max=50"`
}

// EmployeeListFilter represents filter options for employee queries
type EmployeeListFilter struct {
	Keyword       string     `form:"keyword"`
	Status        string     `form:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
	DepartmentID  *uuid.UUID `form:"department_id"`
	LineManagerID *uuid.UUID `form:"line_manager_id"`
	PositionGroup string     `form:"position_group"`
	Tag           string     `form:"tag"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DocumentResponse represents an attached document in API responses
type DocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID              uuid.UUID          `json:"id"`
	Code            string             `json:"code"`
	FirstName       string             `json:"first_name"`
	LastName        string             `json:"last_name"`
	MiddleName      string             `json:"middle_name,omitempty"`
	FullName        string             `json:"full_name"`
	Email           string             `json:"email,omitempty"`
	Phone           string             `json:"phone,omitempty"`
	DateOfBirth     *time.Time         `json:"date_of_birth,omitempty"`
	PositionGroup   string             `json:"position_group"`
	PositionTitle   string             `json:"position_title,omitempty"`
	Grade           string             `json:"grade,omitempty"`
	DepartmentID    *uuid.UUID         `json:"department_id,omitempty"`
	LineManagerID   *uuid.UUID         `json:"line_manager_id,omitempty"`
	Status          string             `json:"status"`
	HireDate        time.Time          `json:"hire_date"`
	TerminationDate *time.Time         `json:"termination_date,omitempty"`
	HasPhoto        bool               `json:"has_photo"`
	Documents       []DocumentResponse `json:"documents"`
	Tags            []string           `json:"tags"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Version         int                `json:"version"`
}

// EmployeeListResponse represents a list item for employees
type EmployeeListResponse struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email,omitempty"`
	PositionGroup string     `json:"position_group"`
	PositionTitle string     `json:"position_title,omitempty"`
	Grade         string     `json:"grade,omitempty"`
	DepartmentID  *uuid.UUID `json:"department_id,omitempty"`
	LineManagerID *uuid.UUID `json:"line_manager_id,omitempty"`
	Status        string     `json:"status"`
	HireDate      time.Time  `json:"hire_date"`
	Tags          []string   `json:"tags"`
}

// InitiateUploadRequest represents a request for a presigned upload URL
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
}

// InitiateUploadResponse carries the presigned upload URL and the
// storage key the client must confirm with
type InitiateUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmDocumentRequest finalizes an uploaded document
type ConfirmDocumentRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
	Name       string `json:"name" binding:"required,min=1,max=255"`
	MimeType   string `json:"mime_type" binding:"required"`
	SizeBytes  int64  `json:"size_bytes" binding:"required,min=1"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OrgChartNode is a node in the organization chart tree
type OrgChartNode struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	FullName      string          `json:"full_name"`
	PositionGroup string          `json:"position_group"`
	PositionTitle string          `json:"position_title,omitempty"`
	DepartmentID  *uuid.UUID      `json:"department_id,omitempty"`
	DirectReports int             `json:"direct_reports"`
	TotalReports  int             `json:"total_reports"`
	Children      []*OrgChartNode `json:"children"`
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e *employee.Employee) EmployeeResponse {
	docs := make([]DocumentResponse, 0, len(e.Documents))
	for _, d := range e.Documents {
		docs = append(docs, DocumentResponse{
			ID:         d.ID,
			Name:       d.Name,
			MimeType:   d.MimeType,
			SizeBytes:  d.SizeBytes,
			UploadedAt: d.UploadedAt,
		})
	}

	return EmployeeResponse{
		ID:              e.ID,
		Code:            e.Code,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		MiddleName:      e.MiddleName,
		FullName:        e.FullName(),
		Email:           e.Email,
		Phone:           e.Phone,
		DateOfBirth:     e.DateOfBirth,
		PositionGroup:   string(e.PositionGroup),
		PositionTitle:   e.PositionTitle,
		Grade:           e.Grade,
		DepartmentID:    e.DepartmentID,
		LineManagerID:   e.LineManagerID,
		Status:          string(e.Status),
		HireDate:        e.HireDate,
		TerminationDate: e.TerminationDate,
		HasPhoto:        e.PhotoKey != "",
		Documents:       docs,
		Tags:            e.Tags,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}

// ToEmployeeListResponse converts a domain Employee to EmployeeListResponse
func ToEmployeeListResponse(e *employee.Employee) EmployeeListResponse {
	return EmployeeListResponse{
		ID:            e.ID,
		Code:          e.Code,
		FullName:      e.FullName(),
		Email:         e.Email,
		PositionGroup: string(e.PositionGroup),
		PositionTitle: e.PositionTitle,
		Grade:         e.Grade,
		DepartmentID:  e.DepartmentID,
		LineManagerID: e.LineManagerID,
		Status:        string(e.Status),
		HireDate:      e.HireDate,
		Tags:          e.Tags,
	}
}
