package bulk

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/bulk"
)

// ImportRequest carries an uploaded file and its processing options.
type ImportRequest struct {
	FileName     string
	FileSize     int64
	Reader       io.Reader
	ConflictMode string
	DryRun       bool
	ImportedBy   uuid.UUID
}

// ImportHistoryListFilter defines query parameters for listing import runs.
type ImportHistoryListFilter struct {
	EntityType string `form:"entity_type"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// ImportErrorResponse describes one rejected row.
type ImportErrorResponse struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportResultResponse is the outcome of a validate or import run.
type ImportResultResponse struct {
	HistoryID    *uuid.UUID            `json:"history_id,omitempty"`
	EntityType   string                `json:"entity_type"`
	Status       string                `json:"status"`
	DryRun       bool                  `json:"dry_run"`
	TotalRows    int                   `json:"total_rows"`
	SuccessRows  int                   `json:"success_rows"`
	ErrorRows    int                   `json:"error_rows"`
	SkippedRows  int                   `json:"skipped_rows"`
	UpdatedRows  int                   `json:"updated_rows"`
	Errors       []ImportErrorResponse `json:"errors"`
	ErrorsCapped bool                  `json:"errors_capped"`
	Preview      []map[string]string   `json:"preview,omitempty"`
}

// ImportHistoryResponse is the API representation of one import run.
type ImportHistoryResponse struct {
	ID           uuid.UUID             `json:"id"`
	EntityType   string                `json:"entity_type"`
	FileName     string                `json:"file_name"`
	FileSize     int64                 `json:"file_size"`
	TotalRows    int                   `json:"total_rows"`
	SuccessRows  int                   `json:"success_rows"`
	ErrorRows    int                   `json:"error_rows"`
	SkippedRows  int                   `json:"skipped_rows"`
	UpdatedRows  int                   `json:"updated_rows"`
	ConflictMode string                `json:"conflict_mode"`
	Status       string                `json:"status"`
	Errors       []ImportErrorResponse `json:"errors,omitempty"`
	ImportedBy   *uuid.UUID            `json:"imported_by,omitempty"`
	StartedAt    *time.Time            `json:"started_at,omitempty"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// EmployeeExportFilter narrows which employees land in the workbook.
type EmployeeExportFilter struct {
	Keyword      string `form:"keyword"`
	Status       string `form:"status"`
	DepartmentID string `form:"department_id"`
	Tag          string `form:"tag"`
}

// AssetBatchExportFilter narrows which asset batches land in the workbook.
type AssetBatchExportFilter struct {
	Keyword  string `form:"keyword"`
	Category string `form:"category"`
	IsActive *bool  `form:"is_active"`
}

// ToImportHistoryResponse converts a domain import history to its API shape.
func ToImportHistoryResponse(h *bulk.ImportHistory) *ImportHistoryResponse {
	return &ImportHistoryResponse{
		ID:           h.ID,
		EntityType:   string(h.EntityType),
		FileName:     h.FileName,
		FileSize:     h.FileSize,
		TotalRows:    h.TotalRows,
		SuccessRows:  h.SuccessRows,
		ErrorRows:    h.ErrorRows,
		SkippedRows:  h.SkippedRows,
		UpdatedRows:  h.UpdatedRows,
		ConflictMode: string(h.ConflictMode),
		Status:       string(h.Status),
		Errors:       toErrorResponses(h.ErrorDetails),
		ImportedBy:   h.ImportedBy,
		StartedAt:    h.StartedAt,
		CompletedAt:  h.CompletedAt,
		CreatedAt:    h.CreatedAt,
	}
}

func toErrorResponses(details []bulk.ImportErrorDetail) []ImportErrorResponse {
	out := make([]ImportErrorResponse, 0, len(details))
	for _, d := range details {
		out = append(out, ImportErrorResponse{
			Row:     d.Row,
			Column:  d.Column,
			Code:    d.Code,
			Message: d.Message,
			Value:   d.Value,
		})
	}
	return out
}
