package grading

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// ScenarioRepository defines the persistence operations for salary scenarios
type ScenarioRepository interface {
	Save(ctx context.Context, scenario *SalaryScenario) error
	FindByID(ctx context.Context, id uuid.UUID) (*SalaryScenario, error)
	FindAll(ctx context.Context, filter ScenarioFilter) (*shared.Paginated[*SalaryScenario], error)
	FindCurrent(ctx context.Context) (*SalaryScenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ApplyExclusive applies the scenario and archives the previously
	// applied one in a single transaction.
	ApplyExclusive(ctx context.Context, scenario *SalaryScenario) error
}

// ScenarioFilter defines filtering options for scenario queries
type ScenarioFilter struct {
	Keyword  string
	Status   *ScenarioStatus
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// NewScenarioFilter creates a filter with sensible defaults
func NewScenarioFilter() ScenarioFilter {
	return ScenarioFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// WithKeyword filters by name keyword
func (f ScenarioFilter) WithKeyword(keyword string) ScenarioFilter {
	f.Keyword = keyword
	return f
}

// WithStatus filters by scenario status
func (f ScenarioFilter) WithStatus(status ScenarioStatus) ScenarioFilter {
	f.Status = &status
	return f
}

// WithPagination sets pagination parameters
func (f ScenarioFilter) WithPagination(page, pageSize int) ScenarioFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f ScenarioFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f ScenarioFilter) Limit() int {
	return f.PageSize
}
