package csvimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hris/backend/internal/domain/asset"
	"github.com/hris/backend/internal/domain/employee"
)

// Reference kinds resolved by the import service's lookup.
const (
	RefDepartment = "department"
	RefEmployee   = "employee"
)

// Employee CSV column names.
const (
	ColEmployeeCode    = "code"
	ColFirstName       = "first_name"
	ColLastName        = "last_name"
	ColMiddleName      = "middle_name"
	ColEmail           = "email"
	ColPhone           = "phone"
	ColDateOfBirth     = "date_of_birth"
	ColPositionGroup   = "position_group"
	ColPositionTitle   = "position_title"
	ColGrade           = "grade"
	ColDepartmentCode  = "department_code"
	ColLineManagerCode = "line_manager_code"
	ColHireDate        = "hire_date"
	ColTags            = "tags"
)

// Asset batch CSV column names.
const (
	ColBatchName       = "name"
	ColBatchCategory   = "category"
	ColSerialPrefix    = "serial_prefix"
	ColBatchDesc       = "description"
	ColInitialQuantity = "initial_quantity"
	ColUnitCost        = "unit_cost"
	ColPurchasedAt     = "purchased_at"
)

// EmployeeRequiredHeaders lists the columns an employee file must carry.
// The code column is optional; codes are allocated when absent.
func EmployeeRequiredHeaders() []string {
	return []string{ColFirstName, ColLastName, ColPositionGroup, ColHireDate}
}

// AssetBatchRequiredHeaders lists the columns an asset batch file must carry.
func AssetBatchRequiredHeaders() []string {
	return []string{ColBatchName, ColBatchCategory, ColInitialQuantity}
}

// EmployeeFieldRules returns the validation rules for an employee import.
func EmployeeFieldRules() []FieldRule {
	return []FieldRule{
		Field(ColEmployeeCode).
			Pattern(`^(?i)[A-Z]+-\d+$`, "PREFIX-NUMBER, e.g. EMP-0042").
			Unique().
			MaxLength(20).
			Build(),
		Field(ColFirstName).Required().MaxLength(100).Build(),
		Field(ColLastName).Required().MaxLength(100).Build(),
		Field(ColMiddleName).MaxLength(100).Build(),
		Field(ColEmail).Email().MaxLength(255).Unique().Build(),
		Field(ColPhone).MaxLength(30).Build(),
		Field(ColDateOfBirth).Date().Build(),
		Field(ColPositionGroup).Required().Custom(validPositionGroup).Build(),
		Field(ColPositionTitle).MaxLength(150).Build(),
		Field(ColGrade).MaxLength(10).Build(),
		Field(ColDepartmentCode).Reference(RefDepartment).MaxLength(30).Build(),
		Field(ColLineManagerCode).Reference(RefEmployee).MaxLength(20).Build(),
		Field(ColHireDate).Required().Date().Build(),
		Field(ColTags).MaxLength(500).Build(),
	}
}

// AssetBatchFieldRules returns the validation rules for an asset batch import.
func AssetBatchFieldRules() []FieldRule {
	return []FieldRule{
		Field(ColBatchName).Required().MaxLength(150).Unique().Build(),
		Field(ColBatchCategory).Required().Custom(validAssetCategory).Build(),
		Field(ColSerialPrefix).MaxLength(30).Build(),
		Field(ColBatchDesc).MaxLength(1000).Build(),
		Field(ColInitialQuantity).Required().Int().
			MinValue(decimal.NewFromInt(1)).
			MaxValue(decimal.NewFromInt(1_000_000)).
			Build(),
		Field(ColUnitCost).Decimal().MinValue(decimal.Zero).Build(),
		Field(ColPurchasedAt).Date().Build(),
	}
}

func validPositionGroup(value string) error {
	g := employee.PositionGroup(strings.ToUpper(strings.TrimSpace(value)))
	if !g.IsValid() {
		return fmt.Errorf("unknown position group '%s'", value)
	}
	return nil
}

func validAssetCategory(value string) error {
	c := asset.AssetCategory(strings.ToUpper(strings.TrimSpace(value)))
	if !c.IsValid() {
		return fmt.Errorf("unknown asset category '%s'", value)
	}
	return nil
}

// SplitTags splits the semicolon separated tags column into clean values.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
