package asset

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// AssetBatchRepository defines the persistence operations for asset batches
type AssetBatchRepository interface {
	Save(ctx context.Context, batch *AssetBatch) error
	FindByID(ctx context.Context, id uuid.UUID) (*AssetBatch, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*AssetBatch, error)
	FindByName(ctx context.Context, name string) (*AssetBatch, error)
	FindAll(ctx context.Context, filter BatchFilter) (*shared.Paginated[*AssetBatch], error)
	FindLowStock(ctx context.Context, threshold int) ([]*AssetBatch, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssetAssignmentRepository defines the persistence operations for assignments
type AssetAssignmentRepository interface {
	Save(ctx context.Context, assignment *AssetAssignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*AssetAssignment, error)
	FindAll(ctx context.Context, filter AssignmentFilter) (*shared.Paginated[*AssetAssignment], error)
	FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*AssetAssignment, error)
	CountOpenByBatch(ctx context.Context, batchID uuid.UUID) (int64, error)
}

// BatchFilter defines filtering options for batch queries
type BatchFilter struct {
	Keyword  string
	Category *AssetCategory
	IsActive *bool
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// NewBatchFilter creates a filter with sensible defaults
func NewBatchFilter() BatchFilter {
	return BatchFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// WithKeyword filters by batch name keyword
func (f BatchFilter) WithKeyword(keyword string) BatchFilter {
	f.Keyword = keyword
	return f
}

// WithCategory filters by asset category
func (f BatchFilter) WithCategory(category AssetCategory) BatchFilter {
	f.Category = &category
	return f
}

// WithActive filters by active flag
func (f BatchFilter) WithActive(active bool) BatchFilter {
	f.IsActive = &active
	return f
}

// WithPagination sets pagination parameters
func (f BatchFilter) WithPagination(page, pageSize int) BatchFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f BatchFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f BatchFilter) Limit() int {
	return f.PageSize
}

// AssignmentFilter defines filtering options for assignment queries
type AssignmentFilter struct {
	BatchID    *uuid.UUID
	EmployeeID *uuid.UUID
	Status     *AssignmentStatus
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
}

// NewAssignmentFilter creates a filter with sensible defaults
func NewAssignmentFilter() AssignmentFilter {
	return AssignmentFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// WithBatchID filters by batch
func (f AssignmentFilter) WithBatchID(batchID uuid.UUID) AssignmentFilter {
	f.BatchID = &batchID
	return f
}

// WithEmployeeID filters by employee
func (f AssignmentFilter) WithEmployeeID(employeeID uuid.UUID) AssignmentFilter {
	f.EmployeeID = &employeeID
	return f
}

// WithStatus filters by assignment status
func (f AssignmentFilter) WithStatus(status AssignmentStatus) AssignmentFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f AssignmentFilter) WithPagination(page, pageSize int) AssignmentFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f AssignmentFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f AssignmentFilter) Limit() int {
	return f.PageSize
}
