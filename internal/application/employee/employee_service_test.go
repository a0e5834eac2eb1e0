package employee

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
)

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Save(ctx context.Context, emp *employee.Employee) error {
	args := m.Called(ctx, emp)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByCode(ctx context.Context, code string) (*employee.Employee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*employee.Employee, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter employee.EmployeeFilter) (*shared.Paginated[*employee.Employee], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*employee.Employee]), args.Error(1)
}

func (m *MockEmployeeRepository) FindByManager(ctx context.Context, managerID uuid.UUID) ([]*employee.Employee, error) {
	args := m.Called(ctx, managerID)
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAllActive(ctx context.Context) ([]*employee.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAllNotTerminated(ctx context.Context) ([]*employee.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) NextCode(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

// MockDepartmentRepository is a mock implementation of DepartmentRepository
type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Save(ctx context.Context, dept *identity.Department) error {
	args := m.Called(ctx, dept)
	return args.Error(0)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindByCode(ctx context.Context, code string) (*identity.Department, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Department, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindAll(ctx context.Context, filter identity.DepartmentFilter) (*shared.Paginated[*identity.Department], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*identity.Department]), args.Error(1)
}

func (m *MockDepartmentRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*identity.Department, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]*identity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindRoots(ctx context.Context) ([]*identity.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*identity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindDescendants(ctx context.Context, path string) ([]*identity.Department, error) {
	args := m.Called(ctx, path)
	return args.Get(0).([]*identity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepartmentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newTestEmployee(t *testing.T, code string) *employee.Employee {
	t.Helper()
	emp, err := employee.NewEmployee(code, "Jane", "Doe", employee.PositionGroupSpecialist, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return emp
}

func TestEmployeeServiceCreateAllocatesCode(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	deptRepo := new(MockDepartmentRepository)
	service := NewEmployeeService(empRepo, deptRepo)

	empRepo.On("NextCode", mock.Anything, DefaultCodePrefix).Return("EMP-0007", nil)
	empRepo.On("Save", mock.Anything, mock.AnythingOfType("*employee.Employee")).Return(nil)

	resp, err := service.Create(context.Background(), CreateEmployeeRequest{
		FirstName:     "Jane",
		LastName:      "Doe",
		PositionGroup: "SPECIALIST",
		HireDate:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "EMP-0007", resp.Code)
	assert.Equal(t, "ACTIVE", resp.Status)
	empRepo.AssertExpectations(t)
}

func TestEmployeeServiceCreateDuplicateCode(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	deptRepo := new(MockDepartmentRepository)
	service := NewEmployeeService(empRepo, deptRepo)

	empRepo.On("ExistsByCode", mock.Anything, "EMP-0001").Return(true, nil)

	_, err := service.Create(context.Background(), CreateEmployeeRequest{
		Code:          "EMP-0001",
		FirstName:     "Jane",
		LastName:      "Doe",
		PositionGroup: "SPECIALIST",
		HireDate:      time.Now(),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	empRepo.AssertNotCalled(t, "Save")
}

func TestEmployeeServiceCreateUnknownPositionGroup(t *testing.T) {
	service := NewEmployeeService(new(MockEmployeeRepository), new(MockDepartmentRepository))

	_, err := service.Create(context.Background(), CreateEmployeeRequest{
		FirstName:     "Jane",
		LastName:      "Doe",
		PositionGroup: "WIZARD",
		HireDate:      time.Now(),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_POSITION_GROUP", domainErr.Code)
}

func TestEmployeeServiceCreateUnknownDepartment(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	deptRepo := new(MockDepartmentRepository)
	service := NewEmployeeService(empRepo, deptRepo)

	deptID := uuid.New()
	empRepo.On("NextCode", mock.Anything, DefaultCodePrefix).Return("EMP-0008", nil)
	deptRepo.On("FindByID", mock.Anything, deptID).Return(nil, shared.ErrNotFound)

	_, err := service.Create(context.Background(), CreateEmployeeRequest{
		FirstName:     "Jane",
		LastName:      "Doe",
		PositionGroup: "SPECIALIST",
		HireDate:      time.Now(),
		DepartmentID:  &deptID,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DEPARTMENT", domainErr.Code)
}

func TestEmployeeServiceChangeManagerSelf(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	service := NewEmployeeService(empRepo, new(MockDepartmentRepository))

	emp := newTestEmployee(t, "EMP-0001")
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)

	_, err := service.ChangeManager(context.Background(), emp.ID, ChangeManagerRequest{LineManagerID: &emp.ID})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MANAGER", domainErr.Code)
}

func TestEmployeeServiceChangeManagerCycle(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	service := NewEmployeeService(empRepo, new(MockDepartmentRepository))

	// B reports to A; making B manager of A would close a cycle.
	empA := newTestEmployee(t, "EMP-0001")
	empB := newTestEmployee(t, "EMP-0002")
	empB.LineManagerID = &empA.ID

	empRepo.On("FindByID", mock.Anything, empA.ID).Return(empA, nil)
	empRepo.On("FindByID", mock.Anything, empB.ID).Return(empB, nil)

	_, err := service.ChangeManager(context.Background(), empA.ID, ChangeManagerRequest{LineManagerID: &empB.ID})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MANAGER_CYCLE", domainErr.Code)
	empRepo.AssertNotCalled(t, "Save")
}

func TestEmployeeServiceChangeManagerTerminated(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	service := NewEmployeeService(empRepo, new(MockDepartmentRepository))

	emp := newTestEmployee(t, "EMP-0001")
	manager := newTestEmployee(t, "EMP-0002")
	require.NoError(t, manager.Terminate(time.Now()))

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	empRepo.On("FindByID", mock.Anything, manager.ID).Return(manager, nil)

	_, err := service.ChangeManager(context.Background(), emp.ID, ChangeManagerRequest{LineManagerID: &manager.ID})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_MANAGER", domainErr.Code)
}

func TestEmployeeServiceChangeManagerValid(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	service := NewEmployeeService(empRepo, new(MockDepartmentRepository))

	emp := newTestEmployee(t, "EMP-0001")
	manager := newTestEmployee(t, "EMP-0002")

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	empRepo.On("FindByID", mock.Anything, manager.ID).Return(manager, nil)
	empRepo.On("Save", mock.Anything, emp).Return(nil)

	resp, err := service.ChangeManager(context.Background(), emp.ID, ChangeManagerRequest{LineManagerID: &manager.ID})

	require.NoError(t, err)
	require.NotNil(t, resp.LineManagerID)
	assert.Equal(t, manager.ID, *resp.LineManagerID)
	empRepo.AssertExpectations(t)
}

func TestEmployeeServiceTerminate(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	service := NewEmployeeService(empRepo, new(MockDepartmentRepository))

	emp := newTestEmployee(t, "EMP-0001")
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	empRepo.On("Save", mock.Anything, emp).Return(nil)

	resp, err := service.Terminate(context.Background(), emp.ID, TerminateEmployeeRequest{
		TerminationDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "TERMINATED", resp.Status)
	require.NotNil(t, resp.TerminationDate)
}

func TestEmployeeServiceDeleteWithReports(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	service := NewEmployeeService(empRepo, new(MockDepartmentRepository))

	emp := newTestEmployee(t, "EMP-0001")
	report := newTestEmployee(t, "EMP-0002")

	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	empRepo.On("FindByManager", mock.Anything, emp.ID).Return([]*employee.Employee{report}, nil)

	err := service.Delete(context.Background(), emp.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "HAS_DIRECT_REPORTS", domainErr.Code)
	empRepo.AssertNotCalled(t, "Delete")
}

func TestEmployeeServiceDelete(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	service := NewEmployeeService(empRepo, new(MockDepartmentRepository))

	emp := newTestEmployee(t, "EMP-0001")
	empRepo.On("FindByID", mock.Anything, emp.ID).Return(emp, nil)
	empRepo.On("FindByManager", mock.Anything, emp.ID).Return([]*employee.Employee{}, nil)
	empRepo.On("Delete", mock.Anything, emp.ID).Return(nil)

	require.NoError(t, service.Delete(context.Background(), emp.ID))
	empRepo.AssertExpectations(t)
}

func TestEmployeeServiceList(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	service := NewEmployeeService(empRepo, new(MockDepartmentRepository))

	emp := newTestEmployee(t, "EMP-0001")
	page := shared.NewPaginated([]*employee.Employee{emp}, 1, 1, 20)

	empRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f employee.EmployeeFilter) bool {
		return f.Keyword == "jane" && f.Status != nil && *f.Status == employee.EmployeeStatusActive
	})).Return(&page, nil)

	result, err := service.List(context.Background(), EmployeeListFilter{Keyword: "jane", Status: "ACTIVE"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "EMP-0001", result.Items[0].Code)
}
