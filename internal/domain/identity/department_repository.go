package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// DepartmentRepository defines the persistence operations for departments
type DepartmentRepository interface {
	Save(ctx context.Context, dept *Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)
	FindByCode(ctx context.Context, code string) (*Department, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Department, error)
	FindAll(ctx context.Context, filter DepartmentFilter) (*shared.Paginated[*Department], error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*Department, error)
	FindRoots(ctx context.Context) ([]*Department, error)
	FindDescendants(ctx context.Context, path string) ([]*Department, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
}

// DepartmentFilter defines filtering options for department queries
type DepartmentFilter struct {
	Keyword  string
	Status   *DepartmentStatus
	ParentID *uuid.UUID
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// NewDepartmentFilter creates a filter with sensible defaults
func NewDepartmentFilter() DepartmentFilter {
	return DepartmentFilter{
		Page:     1,
		PageSize: 50,
		OrderBy:  "sort_order",
		OrderDir: "asc",
	}
}

// WithKeyword filters by code/name keyword
func (f DepartmentFilter) WithKeyword(keyword string) DepartmentFilter {
	f.Keyword = keyword
	return f
}

// WithStatus filters by status
func (f DepartmentFilter) WithStatus(status DepartmentStatus) DepartmentFilter {
	f.Status = &status
	return f
}

// WithParentID filters by parent department
func (f DepartmentFilter) WithParentID(parentID uuid.UUID) DepartmentFilter {
	f.ParentID = &parentID
	return f
}

// WithPagination sets pagination parameters
func (f DepartmentFilter) WithPagination(page, pageSize int) DepartmentFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 200 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f DepartmentFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f DepartmentFilter) Limit() int {
	return f.PageSize
}
