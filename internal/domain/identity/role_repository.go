package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// RoleRepository defines the persistence operations for roles
type RoleRepository interface {
	Save(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByCode(ctx context.Context, code string) (*Role, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Role, error)
	FindAll(ctx context.Context, filter RoleFilter) (*shared.Paginated[*Role], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// RoleFilter defines filtering options for role queries
type RoleFilter struct {
	Keyword   string
	IsEnabled *bool
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
}

// NewRoleFilter creates a filter with sensible defaults
func NewRoleFilter() RoleFilter {
	return RoleFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "sort_order",
		OrderDir: "asc",
	}
}

// WithKeyword filters by code/name keyword
func (f RoleFilter) WithKeyword(keyword string) RoleFilter {
	f.Keyword = keyword
	return f
}

// WithEnabled filters by enabled status
func (f RoleFilter) WithEnabled(enabled bool) RoleFilter {
	f.IsEnabled = &enabled
	return f
}

// WithPagination sets pagination parameters
func (f RoleFilter) WithPagination(page, pageSize int) RoleFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// Offset returns the offset for pagination
func (f RoleFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f RoleFilter) Limit() int {
	return f.PageSize
}
