package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// UserRepository defines the persistence operations for users
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) (*shared.Paginated[*User], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, roleID uuid.UUID) (int64, error)
}

// UserFilter defines filtering options for user queries
type UserFilter struct {
	Keyword      string
	Status       *UserStatus
	RoleID       *uuid.UUID
	DepartmentID *uuid.UUID
	Page         int
	PageSize     int
	OrderBy      string
	OrderDir     string
}

// NewUserFilter creates a filter with sensible defaults
func NewUserFilter() UserFilter {
	return UserFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// WithKeyword filters by username/email/display name keyword
func (f UserFilter) WithKeyword(keyword string) UserFilter {
	f.Keyword = keyword
	return f
}

// WithStatus filters by user status
func (f UserFilter) WithStatus(status UserStatus) UserFilter {
	f.Status = &status
	return f
}

// WithRoleID filters by assigned role
func (f UserFilter) WithRoleID(roleID uuid.UUID) UserFilter {
	f.RoleID = &roleID
	return f
}

// WithDepartmentID filters by department
func (f UserFilter) WithDepartmentID(departmentID uuid.UUID) UserFilter {
	f.DepartmentID = &departmentID
	return f
}

// WithPagination sets pagination parameters
func (f UserFilter) WithPagination(page, pageSize int) UserFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// WithSorting sets sorting parameters
func (f UserFilter) WithSorting(orderBy, orderDir string) UserFilter {
	if orderBy != "" {
		f.OrderBy = orderBy
	}
	if orderDir == "asc" || orderDir == "desc" {
		f.OrderDir = orderDir
	}
	return f
}

// Offset returns the offset for pagination
func (f UserFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f UserFilter) Limit() int {
	return f.PageSize
}
