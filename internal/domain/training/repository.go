package training

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// TrainingRepository defines the persistence operations for the catalog
type TrainingRepository interface {
	Save(ctx context.Context, training *Training) error
	FindByID(ctx context.Context, id uuid.UUID) (*Training, error)
	FindAll(ctx context.Context, filter TrainingFilter) (*shared.Paginated[*Training], error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAssignments(ctx context.Context, id uuid.UUID) (int64, error)
}

// AssignmentRepository defines the persistence operations for assignments
type AssignmentRepository interface {
	Save(ctx context.Context, assignment *Assignment) error
	SaveAll(ctx context.Context, assignments []*Assignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	FindAll(ctx context.Context, filter AssignmentFilter) (*shared.Paginated[*Assignment], error)
	FindOpenPastDue(ctx context.Context, now time.Time) ([]*Assignment, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Assignment, error)
	ExistsOpen(ctx context.Context, trainingID, employeeID uuid.UUID) (bool, error)
	CompletionStats(ctx context.Context, trainingID uuid.UUID) (*CompletionStats, error)
}

// CompletionStats aggregates completion counts for a training
type CompletionStats struct {
	Total     int64
	Completed int64
	Overdue   int64
}

// CompletionRate returns the completed fraction, 0 when no assignments
func (s CompletionStats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// TrainingFilter defines filtering options for catalog queries
type TrainingFilter struct {
	Keyword  string
	Type     *TrainingType
	IsActive *bool
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// NewTrainingFilter creates a filter with sensible defaults
func NewTrainingFilter() TrainingFilter {
	return TrainingFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "title",
		OrderDir: "asc",
	}
}

// WithKeyword filters by title keyword
func (f TrainingFilter) WithKeyword(keyword string) TrainingFilter {
	f.Keyword = keyword
	return f
}

// WithType filters by training type
func (f TrainingFilter) WithType(trainingType TrainingType) TrainingFilter {
	f.Type = &trainingType
	return f
}

// WithActive filters by active flag
func (f TrainingFilter) WithActive(active bool) TrainingFilter {
	f.IsActive = &active
	return f
}

// WithPagination sets pagination parameters
func (f TrainingFilter) WithPagination(page, pageSize int) TrainingFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f TrainingFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f TrainingFilter) Limit() int {
	return f.PageSize
}

// AssignmentFilter defines filtering options for assignment queries
type AssignmentFilter struct {
	TrainingID *uuid.UUID
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
		OrderBy:  "due_date",
		OrderDir: "asc",
	}
}

// WithTrainingID filters by training
func (f AssignmentFilter) WithTrainingID(id uuid.UUID) AssignmentFilter {
	f.TrainingID = &id
	return f
}

// WithEmployeeID filters by employee
func (f AssignmentFilter) WithEmployeeID(id uuid.UUID) AssignmentFilter {
	f.EmployeeID = &id
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
