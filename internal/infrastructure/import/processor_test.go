package csvimport

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeCSV = `code,first_name,last_name,email,position_group,department_code,hire_date
EMP-1,Jane,Doe,jane@example.com,SPECIALIST,ENG,2024-03-01
EMP-2,Ali,Veliyev,,MANAGER,ENG,2023-06-15
EMP-1,Nigar,Aliyeva,,JUNIOR,HR,2025-01-20
`

func TestProcessor_Process(t *testing.T) {
	lookup := func(kind, value string) (bool, error) {
		return value == "ENG", nil
	}
	p := NewProcessor(WithReferenceLookup(lookup), WithMaxErrors(10))

	outcome, err := p.Process(context.Background(), strings.NewReader(employeeCSV),
		"employees", EmployeeFieldRules(), EmployeeRequiredHeaders())
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.TotalRows)
	// Row 4 fails twice: duplicate code and unknown HR department.
	assert.Equal(t, 1, outcome.ErrorRows)
	assert.False(t, outcome.IsValid())
	require.Len(t, outcome.ValidRows, 2)
	assert.Equal(t, "EMP-1", outcome.ValidRows[0].Get("code"))
	assert.Equal(t, "EMP-2", outcome.ValidRows[1].Get("code"))
	assert.Len(t, outcome.Preview, 2)

	codes := make([]string, 0)
	for _, e := range outcome.Errors.Errors() {
		codes = append(codes, e.Code)
	}
	assert.Contains(t, codes, ErrCodeDuplicateInFile)
	assert.Contains(t, codes, ErrCodeReferenceNotFound)
}

func TestProcessor_MissingRequiredHeaders(t *testing.T) {
	p := NewProcessor()

	_, err := p.Process(context.Background(), strings.NewReader("code,first_name\nEMP-1,Jane\n"),
		"employees", EmployeeFieldRules(), EmployeeRequiredHeaders())
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestProcessor_MaxRows(t *testing.T) {
	csv := "name,category,initial_quantity\n" +
		"Laptops,LAPTOP,10\n" +
		"Monitors,MONITOR,20\n" +
		"Phones,PHONE,30\n"
	p := NewProcessor(WithMaxRows(2))

	outcome, err := p.Process(context.Background(), strings.NewReader(csv),
		"asset_batches", AssetBatchFieldRules(), AssetBatchRequiredHeaders())
	require.NoError(t, err)

	assert.Len(t, outcome.ValidRows, 2)
	assert.False(t, outcome.IsValid())

	var found bool
	for _, e := range outcome.Errors.Errors() {
		if e.Code == ErrCodeTooManyRows {
			found = true
		}
	}
	assert.True(t, found)
}

func TestProcessor_DBUniqueness(t *testing.T) {
	csv := "name,category,initial_quantity\nLaptops,LAPTOP,10\n"
	lookup := func(entityType, column, value string) (bool, error) {
		return entityType == "asset_batches" && value == "Laptops", nil
	}
	p := NewProcessor(WithUniqueLookup(lookup))

	outcome, err := p.Process(context.Background(), strings.NewReader(csv),
		"asset_batches", AssetBatchFieldRules(), AssetBatchRequiredHeaders())
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.ErrorRows)
	assert.Empty(t, outcome.ValidRows)
}

func TestProcessor_CheckFileSize(t *testing.T) {
	p := NewProcessor(WithMaxFileSize(100))

	assert.NoError(t, p.CheckFileSize(100))
	assert.ErrorIs(t, p.CheckFileSize(101), ErrFileTooLarge)
}
