package employee

import (
	"context"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// EmployeeRepository defines the persistence operations for employees
type EmployeeRepository interface {
	Save(ctx context.Context, emp *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Employee, error)
	FindAll(ctx context.Context, filter EmployeeFilter) (*shared.Paginated[*Employee], error)
	FindByManager(ctx context.Context, managerID uuid.UUID) ([]*Employee, error)
	FindAllActive(ctx context.Context) ([]*Employee, error)
	FindAllNotTerminated(ctx context.Context) ([]*Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error)
	NextCode(ctx context.Context, prefix string) (string, error)
}

// EmployeeFilter defines filtering options for employee queries
type EmployeeFilter struct {
	Keyword       string
	Status        *EmployeeStatus
	DepartmentID  *uuid.UUID
	LineManagerID *uuid.UUID
	PositionGroup *PositionGroup
	Tag           string
	Page          int
	PageSize      int
	OrderBy       string
	OrderDir      string
}

// NewEmployeeFilter creates a filter with sensible defaults
func NewEmployeeFilter() EmployeeFilter {
	return EmployeeFilter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "code",
		OrderDir: "asc",
	}
}

// WithKeyword filters by code/name/email keyword
func (f EmployeeFilter) WithKeyword(keyword string) EmployeeFilter {
	f.Keyword = keyword
	return f
}

// WithStatus filters by employee status
func (f EmployeeFilter) WithStatus(status EmployeeStatus) EmployeeFilter {
	f.Status = &status
	return f
}

// WithDepartmentID filters by department
func (f EmployeeFilter) WithDepartmentID(departmentID uuid.UUID) EmployeeFilter {
	f.DepartmentID = &departmentID
	return f
}

// WithLineManagerID filters by line manager
func (f EmployeeFilter) WithLineManagerID(managerID uuid.UUID) EmployeeFilter {
	f.LineManagerID = &managerID
	return f
}

// WithPositionGroup filters by position group
func (f EmployeeFilter) WithPositionGroup(group PositionGroup) EmployeeFilter {
	f.PositionGroup = &group
	return f
}

// WithTag filters by tag
func (f EmployeeFilter) WithTag(tag string) EmployeeFilter {
	f.Tag = tag
	return f
}

// WithPagination sets pagination parameters
func (f EmployeeFilter) WithPagination(page, pageSize int) EmployeeFilter {
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 && pageSize <= 100 {
		f.PageSize = pageSize
	}
	return f
}

// WithSorting sets sorting parameters
func (f EmployeeFilter) WithSorting(orderBy, orderDir string) EmployeeFilter {
	if orderBy != "" {
		f.OrderBy = orderBy
	}
	if orderDir == "asc" || orderDir == "desc" {
		f.OrderDir = orderDir
	}
	return f
}

// Offset returns the offset for pagination
func (f EmployeeFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f EmployeeFilter) Limit() int {
	return f.PageSize
}
