package bulk

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/bulk"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
	csvimport "github.com/hris/backend/internal/infrastructure/import"
)

type MockImportHistoryRepository struct {
	mock.Mock
}

func (m *MockImportHistoryRepository) Save(ctx context.Context, history *bulk.ImportHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockImportHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulk.ImportHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bulk.ImportHistory), args.Error(1)
}

func (m *MockImportHistoryRepository) FindAll(ctx context.Context, filter bulk.ImportHistoryFilter) (*shared.Paginated[*bulk.ImportHistory], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*bulk.ImportHistory]), args.Error(1)
}

func (m *MockImportHistoryRepository) FindPending(ctx context.Context) ([]*bulk.ImportHistory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bulk.ImportHistory), args.Error(1)
}

func (m *MockImportHistoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAllActive(ctx context.Context) ([]*employee.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*employee.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAllNotTerminated(ctx context.Context) ([]*employee.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *asset.AssetBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*asset.AssetBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.AssetBatch), args.Error(1)
}

func (m *MockBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*asset.AssetBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.AssetBatch), args.Error(1)
}

func (m *MockBatchRepository) FindByName(ctx context.Context, name string) (*asset.AssetBatch, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asset.AssetBatch), args.Error(1)
}

func (m *MockBatchRepository) FindAll(ctx context.Context, filter asset.BatchFilter) (*shared.Paginated[*asset.AssetBatch], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*asset.AssetBatch]), args.Error(1)
}

func (m *MockBatchRepository) FindLowStock(ctx context.Context, threshold int) ([]*asset.AssetBatch, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*asset.AssetBatch), args.Error(1)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindRoots(ctx context.Context) ([]*identity.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindDescendants(ctx context.Context, path string) ([]*identity.Department, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type importMocks struct {
	historyRepo    *MockImportHistoryRepository
	employeeRepo   *MockEmployeeRepository
	batchRepo      *MockBatchRepository
	departmentRepo *MockDepartmentRepository
}

func newImportService() (*ImportService, importMocks) {
	m := importMocks{
		historyRepo:    new(MockImportHistoryRepository),
		employeeRepo:   new(MockEmployeeRepository),
		batchRepo:      new(MockBatchRepository),
		departmentRepo: new(MockDepartmentRepository),
	}
	return NewImportService(m.historyRepo, m.employeeRepo, m.batchRepo, m.departmentRepo), m
}

func importRequest(csv, conflictMode string) ImportRequest {
	return ImportRequest{
		FileName:     "upload.csv",
		FileSize:     int64(len(csv)),
		Reader:       strings.NewReader(csv),
		ConflictMode: conflictMode,
		ImportedBy:   uuid.New(),
	}
}

func existingEmployee(t *testing.T, code string) *employee.Employee {
	t.Helper()
	emp, err := employee.NewEmployee(code, "Jane", "Doe", employee.PositionGroupSpecialist,
		time.Date(2022, 4, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return emp
}

func TestImportEmployeesCreatesRows(t *testing.T) {
	svc, m := newImportService()
	csv := "first_name,last_name,position_group,hire_date\n" +
		"Alice,Young,specialist,2024-01-15\n" +
		"Boris,Ivanov,junior,2024-02-01\n"

	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)
	m.employeeRepo.On("NextCode", mock.Anything, "EMP").Return("EMP-0100", nil).Once()
	m.employeeRepo.On("NextCode", mock.Anything, "EMP").Return("EMP-0101", nil).Once()
	m.employeeRepo.On("Save", mock.Anything, mock.AnythingOfType("*employee.Employee")).Return(nil)

	result, err := svc.ImportEmployees(context.Background(), importRequest(csv, ""))

	require.NoError(t, err)
	assert.Equal(t, string(bulk.ImportStatusCompleted), result.Status)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.SuccessRows)
	assert.Equal(t, 0, result.ErrorRows)
	require.NotNil(t, result.HistoryID)
	m.employeeRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestImportEmployeesDryRunReportsErrorsWithoutPersisting(t *testing.T) {
	svc, m := newImportService()
	csv := "first_name,last_name,position_group,hire_date\n" +
		"Alice,,specialist,2024-01-15\n"

	req := importRequest(csv, "")
	req.DryRun = true
	result, err := svc.ImportEmployees(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, "invalid", result.Status)
	assert.Equal(t, 1, result.ErrorRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, csvimport.ErrCodeRequiredField, result.Errors[0].Code)
	assert.Nil(t, result.HistoryID)
	m.historyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.employeeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportEmployeesFailModeRejectsExistingCode(t *testing.T) {
	svc, m := newImportService()
	csv := "code,first_name,last_name,position_group,hire_date\n" +
		"EMP-0001,Alice,Young,specialist,2024-01-15\n"

	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)
	m.employeeRepo.On("ExistsByCode", mock.Anything, "EMP-0001").Return(true, nil)

	result, err := svc.ImportEmployees(context.Background(), importRequest(csv, "fail"))

	require.NoError(t, err)
	assert.Equal(t, string(bulk.ImportStatusFailed), result.Status)
	assert.Equal(t, 1, result.ErrorRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, csvimport.ErrCodeDuplicateInDB, result.Errors[0].Code)
	m.employeeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportEmployeesSkipModeSkipsExisting(t *testing.T) {
	svc, m := newImportService()
	csv := "code,first_name,last_name,position_group,hire_date\n" +
		"EMP-0001,Alice,Young,specialist,2024-01-15\n"

	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)
	m.employeeRepo.On("FindByCode", mock.Anything, "EMP-0001").Return(existingEmployee(t, "EMP-0001"), nil)

	result, err := svc.ImportEmployees(context.Background(), importRequest(csv, "skip"))

	require.NoError(t, err)
	assert.Equal(t, string(bulk.ImportStatusCompleted), result.Status)
	assert.Equal(t, 1, result.SkippedRows)
	assert.Equal(t, 0, result.SuccessRows)
	m.employeeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportEmployeesUpdateModeUpdatesExisting(t *testing.T) {
	svc, m := newImportService()
	csv := "code,first_name,last_name,position_group,position_title,hire_date\n" +
		"EMP-0001,Alice,Young,senior_specialist,Staff Engineer,2024-01-15\n"

	existing := existingEmployee(t, "EMP-0001")
	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)
	m.employeeRepo.On("FindByCode", mock.Anything, "EMP-0001").Return(existing, nil)
	m.employeeRepo.On("Save", mock.Anything, mock.MatchedBy(func(emp *employee.Employee) bool {
		return emp.PositionTitle == "Staff Engineer" &&
			emp.PositionGroup == employee.PositionGroupSeniorSpecialist &&
			emp.FirstName == "Alice"
	})).Return(nil)

	result, err := svc.ImportEmployees(context.Background(), importRequest(csv, "update"))

	require.NoError(t, err)
	assert.Equal(t, string(bulk.ImportStatusCompleted), result.Status)
	assert.Equal(t, 1, result.UpdatedRows)
}

func TestImportEmployeesUpdateModeRejectsManagerCycle(t *testing.T) {
	svc, m := newImportService()
	csv := "code,first_name,last_name,position_group,line_manager_code,hire_date\n" +
		"EMP-0001,Alice,Young,specialist,EMP-0002,2024-01-15\n" +
		"EMP-0002,Boris,Ivanov,specialist,EMP-0001,2024-02-01\n"

	empA := existingEmployee(t, "EMP-0001")
	empB := existingEmployee(t, "EMP-0002")

	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)
	m.employeeRepo.On("ExistsByCode", mock.Anything, "EMP-0001").Return(true, nil)
	m.employeeRepo.On("ExistsByCode", mock.Anything, "EMP-0002").Return(true, nil)
	m.employeeRepo.On("FindByCode", mock.Anything, "EMP-0001").Return(empA, nil)
	m.employeeRepo.On("FindByCode", mock.Anything, "EMP-0002").Return(empB, nil)
	m.employeeRepo.On("FindByID", mock.Anything, empA.ID).Return(empA, nil)
	m.employeeRepo.On("FindByID", mock.Anything, empB.ID).Return(empB, nil)
	m.employeeRepo.On("Save", mock.Anything, mock.MatchedBy(func(emp *employee.Employee) bool {
		return emp.Code == "EMP-0001"
	})).Return(nil)

	result, err := svc.ImportEmployees(context.Background(), importRequest(csv, "update"))

	// The first row reports EMP-0001 to EMP-0002; the second would close
	// the loop and must be rejected instead of persisted.
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedRows)
	assert.Equal(t, 1, result.ErrorRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "MANAGER_CYCLE", result.Errors[0].Code)
	m.employeeRepo.AssertNumberOfCalls(t, "Save", 1)
	assert.Nil(t, empB.LineManagerID)
}

func TestImportEmployeesRejectsTerminatedManager(t *testing.T) {
	svc, m := newImportService()
	csv := "code,first_name,last_name,position_group,line_manager_code,hire_date\n" +
		"EMP-0001,Alice,Young,specialist,EMP-0002,2024-01-15\n"

	empA := existingEmployee(t, "EMP-0001")
	manager := existingEmployee(t, "EMP-0002")
	require.NoError(t, manager.Terminate(time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)))

	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)
	m.employeeRepo.On("ExistsByCode", mock.Anything, "EMP-0002").Return(true, nil)
	m.employeeRepo.On("FindByCode", mock.Anything, "EMP-0001").Return(empA, nil)
	m.employeeRepo.On("FindByCode", mock.Anything, "EMP-0002").Return(manager, nil)
	m.employeeRepo.On("FindByID", mock.Anything, manager.ID).Return(manager, nil)

	result, err := svc.ImportEmployees(context.Background(), importRequest(csv, "update"))

	require.NoError(t, err)
	assert.Equal(t, string(bulk.ImportStatusFailed), result.Status)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "INVALID_MANAGER", result.Errors[0].Code)
	m.employeeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportEmployeesUnknownDepartmentReference(t *testing.T) {
	svc, m := newImportService()
	csv := "first_name,last_name,position_group,department_code,hire_date\n" +
		"Alice,Young,specialist,NOPE,2024-01-15\n"

	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)
	m.departmentRepo.On("ExistsByCode", mock.Anything, "NOPE").Return(false, nil)

	result, err := svc.ImportEmployees(context.Background(), importRequest(csv, ""))

	require.NoError(t, err)
	assert.Equal(t, string(bulk.ImportStatusFailed), result.Status)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, csvimport.ErrCodeReferenceNotFound, result.Errors[0].Code)
	m.employeeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestImportAssetBatchesCreatesBatch(t *testing.T) {
	svc, m := newImportService()
	csv := "name,category,initial_quantity,unit_cost\n" +
		"Dell Latitude 7440,laptop,25,1200.50\n"

	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)
	m.batchRepo.On("FindByName", mock.Anything, "Dell Latitude 7440").Return(nil, shared.ErrNotFound)
	m.batchRepo.On("Save", mock.Anything, mock.MatchedBy(func(batch *asset.AssetBatch) bool {
		return batch.Name == "Dell Latitude 7440" &&
			batch.Category == asset.AssetCategoryLaptop &&
			batch.InitialQuantity == 25 &&
			batch.AvailableQuantity == 25 &&
			batch.UnitCostCents == 120050
	})).Return(nil)

	result, err := svc.ImportAssetBatches(context.Background(), importRequest(csv, ""))

	require.NoError(t, err)
	assert.Equal(t, string(bulk.ImportStatusCompleted), result.Status)
	assert.Equal(t, 1, result.SuccessRows)
}

func TestImportRejectsOversizedFile(t *testing.T) {
	svc, _ := newImportService()
	svc.SetLimits(64, 0)

	req := importRequest("first_name,last_name,position_group,hire_date\n", "")
	req.FileSize = 1024

	_, err := svc.ImportEmployees(context.Background(), req)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FILE_TOO_LARGE", domainErr.Code)
}

func TestImportInvalidConflictMode(t *testing.T) {
	svc, _ := newImportService()

	_, err := svc.ImportEmployees(context.Background(), importRequest("code\n", "merge"))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CONFLICT_MODE", domainErr.Code)
}

func TestListHistoryInvalidEntityType(t *testing.T) {
	svc, _ := newImportService()

	_, err := svc.ListHistory(context.Background(), ImportHistoryListFilter{EntityType: "frogs"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ENTITY_TYPE", domainErr.Code)
}

func TestCancelPendingCancelsStuckRuns(t *testing.T) {
	svc, m := newImportService()

	first, err := bulk.NewImportHistory(bulk.ImportEntityEmployees, "a.csv", 10, bulk.ConflictModeFail, uuid.New())
	require.NoError(t, err)
	second, err := bulk.NewImportHistory(bulk.ImportEntityAssetBatches, "b.csv", 10, bulk.ConflictModeSkip, uuid.New())
	require.NoError(t, err)

	m.historyRepo.On("FindPending", mock.Anything).Return([]*bulk.ImportHistory{first, second}, nil)
	m.historyRepo.On("Save", mock.Anything, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)

	cancelled, err := svc.CancelPending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)
	assert.Equal(t, bulk.ImportStatusCancelled, first.Status)
	assert.Equal(t, bulk.ImportStatusCancelled, second.Status)
}
