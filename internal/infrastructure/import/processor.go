package csvimport

import (
	"context"
	"fmt"
	"io"
)

// Outcome is the result of parsing and validating one file.
type Outcome struct {
	TotalRows   int
	ValidRows   []*Row
	ErrorRows   int
	Errors      *ErrorCollection
	Preview     []map[string]string
	IsTruncated bool
}

// IsValid reports whether every data row passed validation.
func (o *Outcome) IsValid() bool {
	return o.ErrorRows == 0
}

// Processor parses and validates CSV uploads against a rule set.
// The reference and uniqueness lookups are optional; when nil the
// corresponding checks are skipped.
type Processor struct {
	maxFileSize     int64
	maxRows         int
	maxErrors       int
	previewRows     int
	referenceLookup ReferenceLookup
	uniqueLookup    UniqueLookup
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithMaxFileSize caps the accepted upload size in bytes.
func WithMaxFileSize(size int64) ProcessorOption {
	return func(p *Processor) {
		p.maxFileSize = size
	}
}

// WithMaxRows caps the number of data rows per file.
func WithMaxRows(rows int) ProcessorOption {
	return func(p *Processor) {
		p.maxRows = rows
	}
}

// WithMaxErrors caps the number of collected row errors.
func WithMaxErrors(n int) ProcessorOption {
	return func(p *Processor) {
		p.maxErrors = n
	}
}

// WithPreviewRows sets how many valid rows are kept as a preview.
func WithPreviewRows(rows int) ProcessorOption {
	return func(p *Processor) {
		p.previewRows = rows
	}
}

// WithReferenceLookup wires the lookup used for Reference rules.
func WithReferenceLookup(fn ReferenceLookup) ProcessorOption {
	return func(p *Processor) {
		p.referenceLookup = fn
	}
}

// WithUniqueLookup wires the lookup used for database uniqueness checks.
func WithUniqueLookup(fn UniqueLookup) ProcessorOption {
	return func(p *Processor) {
		p.uniqueLookup = fn
	}
}

// NewProcessor creates a processor with sane defaults.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		maxFileSize: 10 * 1024 * 1024,
		maxRows:     50000,
		maxErrors:   100,
		previewRows: 5,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxFileSize returns the configured upload size cap.
func (p *Processor) MaxFileSize() int64 {
	return p.maxFileSize
}

// CheckFileSize returns ErrFileTooLarge when size exceeds the cap.
func (p *Processor) CheckFileSize(size int64) error {
	if p.maxFileSize > 0 && size > p.maxFileSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, p.maxFileSize)
	}
	return nil
}

// Process parses the file, checks required headers and validates every row
// against the rules for the given entity type. Rows that pass all checks
// are returned in Outcome.ValidRows in file order.
func (p *Processor) Process(ctx context.Context, reader io.Reader, entityType string, rules []FieldRule, requiredHeaders []string) (*Outcome, error) {
	parser, err := NewCSVParser(reader)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.MissingHeaders(requiredHeaders); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %v", ErrMissingHeader, missing)
	}

	fieldValidator := NewFieldValidator(rules, p.maxErrors)

	var refValidator *ReferenceValidator
	if p.referenceLookup != nil {
		refValidator = NewReferenceValidator(p.referenceLookup, p.maxErrors)
	}
	var uniqueValidator *UniquenessValidator
	if p.uniqueLookup != nil {
		uniqueValidator = NewUniquenessValidator(p.uniqueLookup, p.maxErrors)
	}

	outcome := &Outcome{
		ValidRows: make([]*Row, 0),
		Errors:    NewErrorCollection(p.maxErrors),
		Preview:   make([]map[string]string, 0, p.previewRows),
	}
	parseErrors := NewErrorCollection(p.maxErrors)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors.Add(NewRowError(parser.CurrentRow(), "", ErrCodeParsing, err.Error()))
			outcome.ErrorRows++
			continue
		}
		if row.IsEmpty() {
			continue
		}

		outcome.TotalRows++
		if outcome.TotalRows > p.maxRows {
			parseErrors.Add(NewRowError(row.LineNumber, "", ErrCodeTooManyRows,
				fmt.Sprintf("file exceeds the limit of %d rows", p.maxRows)))
			outcome.ErrorRows++
			break
		}

		rowOK := fieldValidator.ValidateRow(row)

		if refValidator != nil {
			for _, rule := range rules {
				if rule.Reference == "" {
					continue
				}
				if !refValidator.ValidateReference(row.LineNumber, rule.Column, rule.Reference, row.Get(rule.Column)) {
					rowOK = false
				}
			}
		}

		if uniqueValidator != nil {
			for _, rule := range rules {
				if !rule.Unique {
					continue
				}
				if !uniqueValidator.ValidateUnique(row.LineNumber, rule.Column, entityType, row.Get(rule.Column)) {
					rowOK = false
				}
			}
		}

		if !rowOK {
			outcome.ErrorRows++
			continue
		}

		outcome.ValidRows = append(outcome.ValidRows, row)
		if len(outcome.Preview) < p.previewRows {
			preview := make(map[string]string, len(row.Data))
			for k, v := range row.Data {
				preview[k] = v
			}
			outcome.Preview = append(outcome.Preview, preview)
		}
	}

	outcome.Errors.Merge(parseErrors)
	outcome.Errors.Merge(fieldValidator.Errors())
	if refValidator != nil {
		outcome.Errors.Merge(refValidator.Errors())
	}
	if uniqueValidator != nil {
		outcome.Errors.Merge(uniqueValidator.Errors())
	}
	outcome.IsTruncated = outcome.Errors.IsTruncated()

	return outcome, nil
}
