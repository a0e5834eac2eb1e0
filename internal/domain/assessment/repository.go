package assessment

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// SelfAssessmentRepository defines the persistence operations for assessments
type SelfAssessmentRepository interface {
	Save(ctx context.Context, sa *SelfAssessment) error
	FindByID(ctx context.Context, id uuid.UUID) (*SelfAssessment, error)
	FindAll(ctx context.Context, filter AssessmentFilter) (*shared.Paginated[*SelfAssessment], error)
	FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, period string) (*SelfAssessment, error)
	FindPendingForReviewer(ctx context.Context, reviewerID uuid.UUID) ([]*SelfAssessment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssessmentFilter defines filtering options for assessment queries
type AssessmentFilter struct {
	EmployeeID *uuid.UUID
	ReviewerID *uuid.UUID
	Period     string
	Status     *AssessmentStatus
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
}

// NewAssessmentFilter creates a filter with sensible defaults
func NewAssessmentFilter() AssessmentFilter {
	return AssessmentFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// WithEmployeeID filters by employee
func (f AssessmentFilter) WithEmployeeID(id uuid.UUID) AssessmentFilter {
	f.EmployeeID = &id
	return f
}

// WithReviewerID filters by reviewer
func (f AssessmentFilter) WithReviewerID(id uuid.UUID) AssessmentFilter {
	f.ReviewerID = &id
	return f
}

// WithPeriod filters by review period
func (f AssessmentFilter) WithPeriod(period string) AssessmentFilter {
	f.Period = period
	return f
}

// WithStatus filters by status
func (f AssessmentFilter) WithStatus(status AssessmentStatus) AssessmentFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f AssessmentFilter) WithPagination(page, pageSize int) AssessmentFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f AssessmentFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f AssessmentFilter) Limit() int {
	return f.PageSize
}
