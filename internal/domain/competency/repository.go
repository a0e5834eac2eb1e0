package competency

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// SkillGroupRepository defines the persistence operations for skill groups
type SkillGroupRepository interface {
	Save(ctx context.Context, group *SkillGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*SkillGroup, error)
	FindByName(ctx context.Context, name string) (*SkillGroup, error)
	FindAll(ctx context.Context, filter TaxonomyFilter) (*shared.Paginated[*SkillGroup], error)
	FindSkillGroup(ctx context.Context, skillID uuid.UUID) (*SkillGroup, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// BehavioralGroupRepository defines the persistence operations for
// behavioral competency groups
type BehavioralGroupRepository interface {
	Save(ctx context.Context, group *BehavioralGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*BehavioralGroup, error)
	FindAll(ctx context.Context, filter TaxonomyFilter) (*shared.Paginated[*BehavioralGroup], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// PositionSkillMatrixRepository defines the persistence operations for
// position-group skill matrices
type PositionSkillMatrixRepository interface {
	Save(ctx context.Context, matrix *PositionSkillMatrix) error
	FindByPositionGroup(ctx context.Context, group employee.PositionGroup) (*PositionSkillMatrix, error)
	FindAll(ctx context.Context) ([]*PositionSkillMatrix, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaxonomyFilter defines filtering options for taxonomy queries
type TaxonomyFilter struct {
	Keyword  string
	IsActive *bool
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// NewTaxonomyFilter creates a filter with sensible defaults
func NewTaxonomyFilter() TaxonomyFilter {
	return TaxonomyFilter{
		Page:     1,
		PageSize: 50,
		OrderBy:  "name",
		OrderDir: "asc",
	}
}

// WithKeyword filters by name keyword
func (f TaxonomyFilter) WithKeyword(keyword string) TaxonomyFilter {
	f.Keyword = keyword
	return f
}

// WithActive filters by active flag
func (f TaxonomyFilter) WithActive(active bool) TaxonomyFilter {
	f.IsActive = &active
	return f
}

// WithPagination sets pagination parameters
func (f TaxonomyFilter) WithPagination(page, pageSize int) TaxonomyFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 200 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f TaxonomyFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f TaxonomyFilter) Limit() int {
	return f.PageSize
}
