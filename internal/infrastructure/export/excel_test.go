package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/employee"
)

func TestWriteEmployees(t *testing.T) {
	emp, err := employee.NewEmployee("EMP-0001", "Jane", "Doe", employee.PositionGroupSpecialist,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	deptID := uuid.New()
	emp.DepartmentID = &deptID
	emp.Tags = []string{"remote", "contractor"}

	var buf bytes.Buffer
	lookups := EmployeeLookups{
		DepartmentNames: map[uuid.UUID]string{deptID: "Engineering"},
	}
	require.NoError(t, WriteEmployees(&buf, []*employee.Employee{emp}, lookups))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Employees"
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Code", header)

	code, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "EMP-0001", code)

	department, _ := f.GetCellValue(sheet, "J2")
	assert.Equal(t, "Engineering", department)

	hireDate, _ := f.GetCellValue(sheet, "M2")
	assert.Equal(t, "2024-03-01", hireDate)

	tags, _ := f.GetCellValue(sheet, "O2")
	assert.Equal(t, "remote; contractor", tags)
}

func TestWriteAssetBatches(t *testing.T) {
	batch, err := asset.NewAssetBatch("Dell Latitude 2025", asset.AssetCategoryLaptop, 40)
	require.NoError(t, err)
	batch.UnitCostCents = 145000

	var buf bytes.Buffer
	require.NoError(t, WriteAssetBatches(&buf, []*asset.AssetBatch{batch}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Asset Batches"
	name, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "Dell Latitude 2025", name)

	available, _ := f.GetCellValue(sheet, "E2")
	assert.Equal(t, "40", available)

	unitCost, _ := f.GetCellValue(sheet, "H2")
	assert.Equal(t, "1450.00", unitCost)
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "employees_2025-02-10.xlsx", FileName("employees", now))
}
