package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
)

// DefaultCodePrefix is the prefix used when allocating employee codes.
const DefaultCodePrefix = "EMP"

// EmployeeService handles employee master data operations
type EmployeeService struct {
	employeeRepo   employee.EmployeeRepository
	departmentRepo identity.DepartmentRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	departmentRepo identity.DepartmentRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
	}
}

// Create creates a new employee record. When no code is supplied the
// next sequential code under the default prefix is allocated.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	group, err := employee.ParsePositionGroup(req.PositionGroup)
	if err != nil {
		return nil, err
	}

	code := req.Code
	if code == "" {
		code, err = s.employeeRepo.NextCode(ctx, DefaultCodePrefix)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := s.employeeRepo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this code already exists")
		}
	}

	emp, err := employee.NewEmployee(code, req.FirstName, req.LastName, group, req.HireDate)
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Phone != "" || req.MiddleName != "" || req.DateOfBirth != nil {
		if err := emp.UpdatePersonal(req.FirstName, req.LastName, req.MiddleName, req.Email, req.Phone, req.DateOfBirth); err != nil {
			return nil, err
		}
	}

	if req.PositionTitle != "" {
		if err := emp.SetPosition(group, req.PositionTitle, req.Grade); err != nil {
			return nil, err
		}
	}

	if req.DepartmentID != nil {
		if err := s.checkDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		emp.SetDepartment(req.DepartmentID)
	}

	if req.LineManagerID != nil {
		if err := s.checkManager(ctx, emp, *req.LineManagerID); err != nil {
			return nil, err
		}
		if err := emp.ChangeManager(req.LineManagerID); err != nil {
			return nil, err
		}
	}

	for _, tag := range req.Tags {
		if err := emp.AddTag(tag); err != nil {
			return nil, err
		}
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(emp)
	return &response, nil
}

// GetByCode retrieves an employee by code
func (s *EmployeeService) GetByCode(ctx context.Context, code string) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(emp)
	return &response, nil
}

// List retrieves employees matching the filter
func (s *EmployeeService) List(ctx context.Context, filter EmployeeListFilter) (*shared.Paginated[EmployeeListResponse], error) {
	domainFilter := employee.NewEmployeeFilter().
		WithKeyword(filter.Keyword).
		WithTag(filter.Tag).
		WithPagination(filter.Page, filter.PageSize).
		WithSorting(filter.OrderBy, filter.OrderDir)

	if filter.Status != "" {
		domainFilter = domainFilter.WithStatus(employee.EmployeeStatus(filter.Status))
	}
	if filter.DepartmentID != nil {
		domainFilter = domainFilter.WithDepartmentID(*filter.DepartmentID)
	}
	if filter.LineManagerID != nil {
		domainFilter = domainFilter.WithLineManagerID(*filter.LineManagerID)
	}
	if filter.PositionGroup != "" {
		group, err := employee.ParsePositionGroup(filter.PositionGroup)
		if err != nil {
			return nil, err
		}
		domainFilter = domainFilter.WithPositionGroup(group)
	}

	page, err := s.employeeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]EmployeeListResponse, 0, len(page.Items))
	for _, emp := range page.Items {
		items = append(items, ToEmployeeListResponse(emp))
	}

	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update updates the employee's personal fields
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := emp.UpdatePersonal(req.FirstName, req.LastName, req.MiddleName, req.Email, req.Phone, req.DateOfBirth); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// SetPosition changes the employee's position group, title, and grade
func (s *EmployeeService) SetPosition(ctx context.Context, id uuid.UUID, req SetPositionRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group, err := employee.ParsePositionGroup(req.PositionGroup)
	if err != nil {
		return nil, err
	}

	if err := emp.SetPosition(group, req.PositionTitle, req.Grade); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// SetDepartment moves the employee to another department
func (s *EmployeeService) SetDepartment(ctx context.Context, id uuid.UUID, req SetDepartmentRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		if err := s.checkDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}
	emp.SetDepartment(req.DepartmentID)

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// ChangeManager changes the employee's line manager, rejecting
// self-management and cycles in the reporting chain
func (s *EmployeeService) ChangeManager(ctx context.Context, id uuid.UUID, req ChangeManagerRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LineManagerID != nil {
		if err := s.checkManager(ctx, emp, *req.LineManagerID); err != nil {
			return nil, err
		}
	}

	if err := emp.ChangeManager(req.LineManagerID); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// Terminate terminates the employee
func (s *EmployeeService) Terminate(ctx context.Context, id uuid.UUID, req TerminateEmployeeRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := emp.Terminate(req.TerminationDate); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// PutOnLeave marks the employee as on leave
func (s *EmployeeService) PutOnLeave(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := emp.PutOnLeave(); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// Reactivate returns the employee to active status
func (s *EmployeeService) Reactivate(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := emp.Reactivate(); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// Delete removes an employee record. Employees with direct reports
// cannot be deleted; reassign their reports or terminate instead.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.employeeRepo.FindByID(ctx, id); err != nil {
		return err
	}

	reports, err := s.employeeRepo.FindByManager(ctx, id)
	if err != nil {
		return err
	}
	if len(reports) > 0 {
		return shared.NewDomainError("HAS_DIRECT_REPORTS", "Employee has direct reports; reassign them first")
	}

	return s.employeeRepo.Delete(ctx, id)
}

// AddTag adds a tag to the employee
func (s *EmployeeService) AddTag(ctx context.Context, id uuid.UUID, req TagRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := emp.AddTag(req.Tag); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

// RemoveTag removes a tag from the employee
func (s *EmployeeService) RemoveTag(ctx context.Context, id uuid.UUID, tag string) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := emp.RemoveTag(tag); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(emp)
	return &response, nil
}

func (s *EmployeeService) checkDepartment(ctx context.Context, departmentID uuid.UUID) error {
	_, err := s.departmentRepo.FindByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_DEPARTMENT", "Department not found")
		}
		return err
	}
	return nil
}

// checkManager verifies the manager exists, is not terminated, and that
// assigning them would not create a cycle in the reporting chain.
func (s *EmployeeService) checkManager(ctx context.Context, emp *employee.Employee, managerID uuid.UUID) error {
	return employee.CheckManagerAssignment(ctx, s.employeeRepo, emp, managerID)
}
