package training

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/training"
)

// CreateTrainingRequest is the request to create a catalog entry
type CreateTrainingRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	DurationHrs int    `json:"duration_hrs" binding:"min=0"`
}

// UpdateTrainingRequest is the request to update a catalog entry
type UpdateTrainingRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	DurationHrs int    `json:"duration_hrs" binding:"min=0"`
}

// AssignRequest assigns a training to one or more employees
type AssignRequest struct {
	TrainingID  uuid.UUID   `json:"training_id" binding:"required"`
	EmployeeIDs []uuid.UUID `json:"employee_ids" binding:"required,min=1"`
	DueDate     time.Time   `json:"due_date" binding:"required"`
}

// CompleteRequest marks an assignment completed
type CompleteRequest struct {
	Score *int `json:"score" binding:"omitempty,min=0,max=100"`
}

// TrainingListFilter carries catalog query parameters
type TrainingListFilter struct {
	Keyword  string `form:"keyword"`
	Type     string `form:"type"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// AssignmentListFilter carries assignment query parameters
type AssignmentListFilter struct {
	TrainingID *uuid.UUID `form:"training_id"`
	EmployeeID *uuid.UUID `form:"employee_id"`
	Status     string     `form:"status"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// MaterialResponse describes an attached training material
type MaterialResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// TrainingResponse is the API representation of a catalog entry
type TrainingResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	DurationHrs int                `json:"duration_hrs"`
	Materials   []MaterialResponse `json:"materials"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// AssignmentResponse is the API representation of an assignment
type AssignmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	TrainingID  uuid.UUID  `json:"training_id"`
	EmployeeID  uuid.UUID  `json:"employee_id"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `json:"status"`
	Score       *int       `json:"score,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BulkAssignResponse summarizes a bulk assignment
type BulkAssignResponse struct {
	Assigned []AssignmentResponse `json:"assigned"`
	Skipped  int                  `json:"skipped"`
}

// CompletionReportResponse aggregates completion counts for a training
type CompletionReportResponse struct {
	TrainingID     uuid.UUID `json:"training_id"`
	Total          int64     `json:"total"`
	Completed      int64     `json:"completed"`
	Overdue        int64     `json:"overdue"`
	CompletionRate float64   `json:"completion_rate"`
}

// DepartmentCompletionReportResponse aggregates completion counts across
// every assignment held by a department's employees
type DepartmentCompletionReportResponse struct {
	DepartmentID   uuid.UUID `json:"department_id"`
	Employees      int       `json:"employees"`
	Total          int64     `json:"total"`
	Completed      int64     `json:"completed"`
	Overdue        int64     `json:"overdue"`
	CompletionRate float64   `json:"completion_rate"`
}

// InitiateMaterialUploadRequest starts a material upload
type InitiateMaterialUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
}

// InitiateMaterialUploadResponse carries the presigned upload URL
type InitiateMaterialUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmMaterialRequest attaches an uploaded material
type ConfirmMaterialRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
	Name       string `json:"name" binding:"required,max=200"`
	MimeType   string `json:"mime_type" binding:"required"`
	SizeBytes  int64  `json:"size_bytes" binding:"required,min=1"`
}

// MaterialDownloadResponse carries a presigned download URL
type MaterialDownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToTrainingResponse converts a domain training to its API representation
func ToTrainingResponse(t *training.Training) TrainingResponse {
	materials := make([]MaterialResponse, 0, len(t.Materials))
	for _, m := range t.Materials {
		materials = append(materials, MaterialResponse{
			ID:         m.ID,
			Name:       m.Name,
			MimeType:   m.MimeType,
			SizeBytes:  m.SizeBytes,
			UploadedAt: m.UploadedAt,
		})
	}

	return TrainingResponse{
		ID:          t.ID,
		Title:       t.Title,
		Type:        string(t.Type),
		Description: t.Description,
		DurationHrs: t.DurationHrs,
		Materials:   materials,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToAssignmentResponse converts a domain assignment to its API representation
func ToAssignmentResponse(a *training.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		TrainingID:  a.TrainingID,
		EmployeeID:  a.EmployeeID,
		DueDate:     a.DueDate,
		Status:      string(a.Status),
		Score:       a.Score,
		StartedAt:   a.StartedAt,
		CompletedAt: a.CompletedAt,
		CreatedAt:   a.CreatedAt,
	}
}
