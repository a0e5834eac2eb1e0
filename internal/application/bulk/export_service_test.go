package bulk

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
)

func newExportService() (*ExportService, importMocks) {
	m := importMocks{
		historyRepo:    new(MockImportHistoryRepository),
		employeeRepo:   new(MockEmployeeRepository),
		batchRepo:      new(MockBatchRepository),
		departmentRepo: new(MockDepartmentRepository),
	}
	svc := NewExportService(m.employeeRepo, m.departmentRepo, m.batchRepo)
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }
	return svc, m
}

func employeePage(items []*employee.Employee, total int64, page int) *shared.Paginated[*employee.Employee] {
	result := shared.NewPaginated(items, total, page, exportPageSize)
	return &result
}

func TestExportEmployeesResolvesLookups(t *testing.T) {
	svc, m := newExportService()

	manager := existingEmployee(t, "EMP-0009")
	emp := existingEmployee(t, "EMP-0001")
	dept, err := identity.NewDepartment("ENG", "Engineering")
	require.NoError(t, err)
	emp.SetDepartment(&dept.ID)
	require.NoError(t, emp.ChangeManager(&manager.ID))

	m.employeeRepo.On("FindAll", mock.Anything, mock.Anything).
		Return(employeePage([]*employee.Employee{emp}, 1, 1), nil)
	m.departmentRepo.On("FindByIDs", mock.Anything, []uuid.UUID{dept.ID}).
		Return([]*identity.Department{dept}, nil)
	m.employeeRepo.On("FindByIDs", mock.Anything, []uuid.UUID{manager.ID}).
		Return([]*employee.Employee{manager}, nil)

	var buf bytes.Buffer
	fileName, err := svc.ExportEmployees(context.Background(), &buf, EmployeeExportFilter{})

	require.NoError(t, err)
	assert.Equal(t, "employees_2025-06-02.xlsx", fileName)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	department, _ := f.GetCellValue("Employees", "J2")
	assert.Equal(t, "Engineering", department)
	managerCode, _ := f.GetCellValue("Employees", "K2")
	assert.Equal(t, "EMP-0009", managerCode)
}

func TestExportEmployeesDrainsAllPages(t *testing.T) {
	svc, m := newExportService()

	fullPage := make([]*employee.Employee, exportPageSize)
	for i := range fullPage {
		fullPage[i] = existingEmployee(t, fmt.Sprintf("EMP-%04d", i+1))
	}
	lastPage := []*employee.Employee{existingEmployee(t, "EMP-9999")}

	m.employeeRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f employee.EmployeeFilter) bool {
		return f.Page == 1
	})).Return(employeePage(fullPage, int64(exportPageSize+1), 1), nil)
	m.employeeRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f employee.EmployeeFilter) bool {
		return f.Page == 2
	})).Return(employeePage(lastPage, int64(exportPageSize+1), 2), nil)
	m.departmentRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*identity.Department{}, nil)
	m.employeeRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*employee.Employee{}, nil)

	var buf bytes.Buffer
	_, err := svc.ExportEmployees(context.Background(), &buf, EmployeeExportFilter{})

	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	assert.Len(t, rows, exportPageSize+2)
}

func TestExportAssetBatchesAppliesCategoryFilter(t *testing.T) {
	svc, m := newExportService()

	batch, err := asset.NewAssetBatch("Dell Latitude 7440", asset.AssetCategoryLaptop, 10)
	require.NoError(t, err)

	m.batchRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f asset.BatchFilter) bool {
		return f.Category != nil && *f.Category == asset.AssetCategoryLaptop
	})).Return(func() *shared.Paginated[*asset.AssetBatch] {
		result := shared.NewPaginated([]*asset.AssetBatch{batch}, 1, 1, exportPageSize)
		return &result
	}(), nil)

	var buf bytes.Buffer
	fileName, err := svc.ExportAssetBatches(context.Background(), &buf, AssetBatchExportFilter{Category: "laptop"})

	require.NoError(t, err)
	assert.Equal(t, "asset_batches_2025-06-02.xlsx", fileName)
	assert.True(t, strings.HasPrefix(fileName, "asset_batches_"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	name, _ := f.GetCellValue("Asset Batches", "A2")
	assert.Equal(t, "Dell Latitude 7440", name)
}

func TestExportAssetBatchesUnknownCategory(t *testing.T) {
	svc, _ := newExportService()

	var buf bytes.Buffer
	_, err := svc.ExportAssetBatches(context.Background(), &buf, AssetBatchExportFilter{Category: "spaceship"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ASSET_CATEGORY", domainErr.Code)
}
