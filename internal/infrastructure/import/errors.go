package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Import error codes surfaced in row-level error details.
const (
	ErrCodeParsing           = "ERR_IMPORT_CSV_PARSING"
	ErrCodeMissingHeader     = "ERR_IMPORT_MISSING_HEADER"
	ErrCodeValidation        = "ERR_IMPORT_VALIDATION"
	ErrCodeRequiredField     = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidType       = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeInvalidLength     = "ERR_IMPORT_INVALID_LENGTH"
	ErrCodeInvalidRange      = "ERR_IMPORT_INVALID_RANGE"
	ErrCodePatternMismatch   = "ERR_IMPORT_PATTERN_MISMATCH"
	ErrCodeDuplicateInFile   = "ERR_IMPORT_DUPLICATE_IN_FILE"
	ErrCodeDuplicateInDB     = "ERR_IMPORT_DUPLICATE_IN_DB"
	ErrCodeReferenceNotFound = "ERR_IMPORT_REFERENCE_NOT_FOUND"
	ErrCodeTooManyRows       = "ERR_IMPORT_TOO_MANY_ROWS"
)

var (
	// ErrEmptyFile is returned when the uploaded file has no content.
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the file has no header row.
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrFileTooLarge is returned when the file exceeds the configured limit.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)

// RowError describes a problem with a specific row and column.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a RowError without the offending value.
func NewRowError(row int, column, code, message string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message}
}

// NewRowErrorWithValue creates a RowError carrying the offending value.
func NewRowErrorWithValue(row int, column, code, message, value string) RowError {
	return RowError{Row: row, Column: column, Code: code, Message: message, Value: value}
}

// ErrorCollection accumulates row errors up to a cap while still counting
// everything past it.
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a collection keeping at most maxErrors entries.
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0, maxErrors),
		maxErrors: maxErrors,
	}
}

// Add records an error.
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequired records a missing required field.
func (ec *ErrorCollection) AddRequired(row int, column string) {
	ec.Add(NewRowError(row, column, ErrCodeRequiredField,
		fmt.Sprintf("field '%s' is required", column)))
}

// AddType records a value of the wrong type.
func (ec *ErrorCollection) AddType(row int, column, expectedType, value string) {
	ec.Add(NewRowErrorWithValue(row, column, ErrCodeInvalidType,
		fmt.Sprintf("expected %s", expectedType), value))
}

// AddLength records a length constraint violation.
func (ec *ErrorCollection) AddLength(row int, column string, minLen, maxLen int) {
	msg := fmt.Sprintf("length must be between %d and %d", minLen, maxLen)
	switch {
	case minLen <= 0:
		msg = fmt.Sprintf("length must be at most %d", maxLen)
	case maxLen <= 0:
		msg = fmt.Sprintf("length must be at least %d", minLen)
	}
	ec.Add(NewRowError(row, column, ErrCodeInvalidLength, msg))
}

// AddRange records a numeric range violation.
func (ec *ErrorCollection) AddRange(row int, column, min, max string) {
	ec.Add(NewRowError(row, column, ErrCodeInvalidRange,
		fmt.Sprintf("value must be between %s and %s", min, max)))
}

// AddPattern records a pattern mismatch.
func (ec *ErrorCollection) AddPattern(row int, column, patternDesc, value string) {
	ec.Add(NewRowErrorWithValue(row, column, ErrCodePatternMismatch,
		fmt.Sprintf("value does not match expected format: %s", patternDesc), value))
}

// AddDuplicate records a value already present in the file or the database.
func (ec *ErrorCollection) AddDuplicate(row int, column, value string, inDB bool) {
	code := ErrCodeDuplicateInFile
	msg := fmt.Sprintf("duplicate value '%s' found in file", value)
	if inDB {
		code = ErrCodeDuplicateInDB
		msg = fmt.Sprintf("value '%s' already exists", value)
	}
	ec.Add(NewRowErrorWithValue(row, column, code, msg, value))
}

// AddReference records a dangling reference to another entity.
func (ec *ErrorCollection) AddReference(row int, column, value, refType string) {
	ec.Add(NewRowErrorWithValue(row, column, ErrCodeReferenceNotFound,
		fmt.Sprintf("%s '%s' not found", refType, value), value))
}

// Errors returns the kept errors.
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// TotalCount returns the total number of errors including dropped ones.
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors reports whether any error was recorded.
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated reports whether some errors were dropped due to the cap.
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > ec.maxErrors
}

// Merge appends every kept error of other into this collection.
func (ec *ErrorCollection) Merge(other *ErrorCollection) {
	if other == nil {
		return
	}
	for _, e := range other.Errors() {
		ec.Add(e)
	}
}

func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", ec.totalCount)
	if ec.IsTruncated() {
		fmt.Fprintf(&sb, " (showing first %d)", ec.maxErrors)
	}
	sb.WriteString(":\n")
	for _, err := range ec.errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}
