package jobdesc

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// JobDescriptionRepository defines the persistence operations for JDs
type JobDescriptionRepository interface {
	Save(ctx context.Context, jd *JobDescription) error
	FindByID(ctx context.Context, id uuid.UUID) (*JobDescription, error)
	FindAll(ctx context.Context, filter JobDescriptionFilter) (*shared.Paginated[*JobDescription], error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAssignments(ctx context.Context, id uuid.UUID) (int64, error)
}

// AssignmentRepository defines the persistence operations for JD assignments
type AssignmentRepository interface {
	Save(ctx context.Context, assignment *Assignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	FindAll(ctx context.Context, filter AssignmentFilter) (*shared.Paginated[*Assignment], error)
	FindPendingForActor(ctx context.Context, actorID uuid.UUID) ([]*Assignment, error)
	FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Assignment, error)
}

// JobDescriptionFilter defines filtering options for JD queries
type JobDescriptionFilter struct {
	Keyword       string
	PositionGroup *employee.PositionGroup
	DepartmentID  *uuid.UUID
	IsActive      *bool
	Page          int
	PageSize      int
	OrderBy       string
	OrderDir      string
}

// NewJobDescriptionFilter creates a filter with sensible defaults
func NewJobDescriptionFilter() JobDescriptionFilter {
	return JobDescriptionFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// WithKeyword filters by title keyword
func (f JobDescriptionFilter) WithKeyword(keyword string) JobDescriptionFilter {
	f.Keyword = keyword
	return f
}

// WithPositionGroup filters by position group
func (f JobDescriptionFilter) WithPositionGroup(group employee.PositionGroup) JobDescriptionFilter {
	f.PositionGroup = &group
	return f
}

// WithDepartmentID filters by department
func (f JobDescriptionFilter) WithDepartmentID(departmentID uuid.UUID) JobDescriptionFilter {
	f.DepartmentID = &departmentID
	return f
}

// WithActive filters by active flag
func (f JobDescriptionFilter) WithActive(active bool) JobDescriptionFilter {
	f.IsActive = &active
	return f
}

// WithPagination sets pagination parameters
func (f JobDescriptionFilter) WithPagination(page, pageSize int) JobDescriptionFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f JobDescriptionFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f JobDescriptionFilter) Limit() int {
	return f.PageSize
}

// AssignmentFilter defines filtering options for assignment queries
type AssignmentFilter struct {
	JobDescriptionID *uuid.UUID
	EmployeeID       *uuid.UUID
	LineManagerID    *uuid.UUID
	Status           *ApprovalStatus
	Page             int
	PageSize         int
	OrderBy          string
	OrderDir         string
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

// WithJobDescriptionID filters by job description
func (f AssignmentFilter) WithJobDescriptionID(id uuid.UUID) AssignmentFilter {
	f.JobDescriptionID = &id
	return f
}

// WithEmployeeID filters by employee
func (f AssignmentFilter) WithEmployeeID(id uuid.UUID) AssignmentFilter {
	f.EmployeeID = &id
	return f
}

// WithLineManagerID filters by line manager
func (f AssignmentFilter) WithLineManagerID(id uuid.UUID) AssignmentFilter {
	f.LineManagerID = &id
	return f
}

// WithStatus filters by approval status
func (f AssignmentFilter) WithStatus(status ApprovalStatus) AssignmentFilter {
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
