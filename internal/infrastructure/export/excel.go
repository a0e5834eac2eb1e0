// Package export renders domain records as Excel workbooks for download.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/employee"
)

// ContentTypeXLSX is the MIME type of the generated workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "2006-01-02"

var employeeHeaders = []any{
	"Code", "First Name", "Last Name", "Middle Name", "Email", "Phone",
	"Position Group", "Position Title", "Grade", "Department",
	"Line Manager", "Status", "Hire Date", "Termination Date", "Tags",
}

var assetBatchHeaders = []any{
	"Name", "Category", "Serial Prefix", "Initial", "Available",
	"Assigned", "Out of Stock", "Unit Cost", "Purchased At", "Active",
}

// EmployeeLookups carries display values for employee foreign keys.
type EmployeeLookups struct {
	DepartmentNames map[uuid.UUID]string
	ManagerCodes    map[uuid.UUID]string
}

// FileName builds a dated attachment name, e.g. "employees_2025-02-10.xlsx".
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format(dateLayout))
}

// WriteEmployees writes an employee workbook to w.
func WriteEmployees(w io.Writer, employees []*employee.Employee, lookups EmployeeLookups) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Employees"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeaderRow(f, sheet, employeeHeaders); err != nil {
		return err
	}

	for i, emp := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := employeeRow(emp, lookups)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "D", 18)
	_ = f.SetColWidth(sheet, "E", "E", 30)
	_ = f.SetColWidth(sheet, "G", "K", 22)
	_ = f.SetColWidth(sheet, "O", "O", 30)

	return f.Write(w)
}

// WriteAssetBatches writes an asset batch workbook to w.
func WriteAssetBatches(w io.Writer, batches []*asset.AssetBatch) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Asset Batches"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeaderRow(f, sheet, assetBatchHeaders); err != nil {
		return err
	}

	for i, batch := range batches {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := assetBatchRow(batch)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "C", 16)
	_ = f.SetColWidth(sheet, "H", "I", 14)

	return f.Write(w)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []any) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func employeeRow(emp *employee.Employee, lookups EmployeeLookups) []any {
	department := ""
	if emp.DepartmentID != nil {
		department = lookups.DepartmentNames[*emp.DepartmentID]
	}
	manager := ""
	if emp.LineManagerID != nil {
		manager = lookups.ManagerCodes[*emp.LineManagerID]
	}
	return []any{
		emp.Code,
		emp.FirstName,
		emp.LastName,
		emp.MiddleName,
		emp.Email,
		emp.Phone,
		string(emp.PositionGroup),
		emp.PositionTitle,
		emp.Grade,
		department,
		manager,
		string(emp.Status),
		emp.HireDate.Format(dateLayout),
		formatDate(emp.TerminationDate),
		strings.Join(emp.Tags, "; "),
	}
}

func assetBatchRow(batch *asset.AssetBatch) []any {
	return []any{
		batch.Name,
		string(batch.Category),
		batch.SerialPrefix,
		batch.InitialQuantity,
		batch.AvailableQuantity,
		batch.AssignedQuantity,
		batch.OutOfStockQuantity,
		fmt.Sprintf("%.2f", float64(batch.UnitCostCents)/100),
		formatDate(batch.PurchasedAt),
		batch.IsActive,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
