package csvimport

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldType is the expected value type of a column.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
	TypeDate    FieldType = "date"
	TypeEmail   FieldType = "email"
	TypeBool    FieldType = "bool"
	TypeUUID    FieldType = "uuid"
)

// FieldRule defines the validation constraints for one column.
type FieldRule struct {
	Column      string
	Type        FieldType
	Required    bool
	MinLength   int
	MaxLength   int
	MinValue    *decimal.Decimal
	MaxValue    *decimal.Decimal
	Pattern     *regexp.Regexp
	PatternDesc string
	DateFormat  string
	Unique      bool
	Reference   string // Lookup kind for foreign references, e.g. "department", "employee"
	OneOf       []string
	CustomFunc  func(value string) error
}

// FieldRuleBuilder builds a FieldRule fluently.
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for the named column.
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{
		rule: FieldRule{
			Column:     column,
			Type:       TypeString,
			DateFormat: "2006-01-02",
		},
	}
}

// Required marks the column as mandatory.
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int expects an integer value.
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal expects a decimal value.
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// Date expects a date value in the configured format.
func (b *FieldRuleBuilder) Date() *FieldRuleBuilder {
	b.rule.Type = TypeDate
	return b
}

// DateFormat overrides the expected date layout.
func (b *FieldRuleBuilder) DateFormat(layout string) *FieldRuleBuilder {
	b.rule.DateFormat = layout
	return b
}

// Email expects an RFC 5322 address.
func (b *FieldRuleBuilder) Email() *FieldRuleBuilder {
	b.rule.Type = TypeEmail
	return b
}

// Bool expects a boolean-ish value.
func (b *FieldRuleBuilder) Bool() *FieldRuleBuilder {
	b.rule.Type = TypeBool
	return b
}

// UUID expects a canonical UUID.
func (b *FieldRuleBuilder) UUID() *FieldRuleBuilder {
	b.rule.Type = TypeUUID
	return b
}

// MinLength sets the minimum string length.
func (b *FieldRuleBuilder) MinLength(n int) *FieldRuleBuilder {
	b.rule.MinLength = n
	return b
}

// MaxLength sets the maximum string length.
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// MinValue sets the minimum numeric value.
func (b *FieldRuleBuilder) MinValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &v
	return b
}

// MaxValue sets the maximum numeric value.
func (b *FieldRuleBuilder) MaxValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MaxValue = &v
	return b
}

// Pattern requires the value to match a regular expression.
func (b *FieldRuleBuilder) Pattern(pattern, description string) *FieldRuleBuilder {
	b.rule.Pattern = regexp.MustCompile(pattern)
	b.rule.PatternDesc = description
	return b
}

// Unique requires the value to be unique within the file and, when a
// uniqueness lookup is wired, in the database.
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Reference marks the column as a reference of the named kind.
func (b *FieldRuleBuilder) Reference(kind string) *FieldRuleBuilder {
	b.rule.Reference = kind
	return b
}

// OneOf restricts the value to a fixed set.
func (b *FieldRuleBuilder) OneOf(values ...string) *FieldRuleBuilder {
	b.rule.OneOf = values
	return b
}

// Custom attaches an arbitrary validation function.
func (b *FieldRuleBuilder) Custom(fn func(value string) error) *FieldRuleBuilder {
	b.rule.CustomFunc = fn
	return b
}

// Build returns the finished rule.
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator applies field rules row by row, tracking in-file duplicates.
type FieldValidator struct {
	rules       []FieldRule
	uniqueCheck map[string]map[string]int // column -> value -> first line number
	errors      *ErrorCollection
}

// NewFieldValidator creates a validator for the given rules.
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	return &FieldValidator{
		rules:       rules,
		uniqueCheck: make(map[string]map[string]int),
		errors:      NewErrorCollection(maxErrors),
	}
}

// ValidateRow checks every rule against the row. Returns true when clean.
func (v *FieldValidator) ValidateRow(row *Row) bool {
	ok := true

	for _, rule := range v.rules {
		value := row.Get(rule.Column)

		if rule.Required && value == "" {
			v.errors.AddRequired(row.LineNumber, rule.Column)
			ok = false
			continue
		}
		if value == "" {
			continue
		}

		if err := checkType(value, rule.Type, rule.DateFormat); err != nil {
			v.errors.AddType(row.LineNumber, rule.Column, string(rule.Type), value)
			ok = false
			continue
		}

		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			v.errors.AddLength(row.LineNumber, rule.Column, rule.MinLength, rule.MaxLength)
			ok = false
		}
		if rule.MinLength > 0 && len(value) < rule.MinLength {
			v.errors.AddLength(row.LineNumber, rule.Column, rule.MinLength, rule.MaxLength)
			ok = false
		}

		if (rule.Type == TypeInt || rule.Type == TypeDecimal) && (rule.MinValue != nil || rule.MaxValue != nil) {
			if err := checkRange(value, rule.MinValue, rule.MaxValue); err != nil {
				v.errors.AddRange(row.LineNumber, rule.Column, boundString(rule.MinValue), boundString(rule.MaxValue))
				ok = false
			}
		}

		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			v.errors.AddPattern(row.LineNumber, rule.Column, rule.PatternDesc, value)
			ok = false
		}

		if len(rule.OneOf) > 0 && !containsValue(rule.OneOf, value) {
			v.errors.Add(NewRowErrorWithValue(row.LineNumber, rule.Column, ErrCodeValidation,
				fmt.Sprintf("value must be one of: %s", strings.Join(rule.OneOf, ", ")), value))
			ok = false
		}

		if rule.Unique {
			if v.uniqueCheck[rule.Column] == nil {
				v.uniqueCheck[rule.Column] = make(map[string]int)
			}
			key := strings.ToUpper(value)
			if firstLine, seen := v.uniqueCheck[rule.Column][key]; seen {
				v.errors.Add(NewRowErrorWithValue(row.LineNumber, rule.Column, ErrCodeDuplicateInFile,
					fmt.Sprintf("duplicate value '%s' (first seen in row %d)", value, firstLine), value))
				ok = false
			} else {
				v.uniqueCheck[rule.Column][key] = row.LineNumber
			}
		}

		if rule.CustomFunc != nil {
			if err := rule.CustomFunc(value); err != nil {
				v.errors.Add(NewRowErrorWithValue(row.LineNumber, rule.Column, ErrCodeValidation, err.Error(), value))
				ok = false
			}
		}
	}

	return ok
}

// Errors returns the accumulated errors.
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}

// Reset clears validator state for reuse across files.
func (v *FieldValidator) Reset() {
	v.uniqueCheck = make(map[string]map[string]int)
	v.errors = NewErrorCollection(100)
}

func checkType(value string, fieldType FieldType, dateFormat string) error {
	switch fieldType {
	case TypeString:
		return nil
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeDecimal:
		_, err := decimal.NewFromString(value)
		return err
	case TypeDate:
		_, err := time.Parse(dateFormat, value)
		return err
	case TypeEmail:
		_, err := mail.ParseAddress(value)
		return err
	case TypeBool:
		switch strings.ToLower(value) {
		case "true", "false", "1", "0", "yes", "no", "y", "n":
			return nil
		}
		return fmt.Errorf("invalid boolean value: %s", value)
	case TypeUUID:
		_, err := uuid.Parse(value)
		return err
	}
	return nil
}

func checkRange(value string, min, max *decimal.Decimal) error {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return err
	}
	if min != nil && d.LessThan(*min) {
		return fmt.Errorf("value %s is less than minimum %s", value, min.String())
	}
	if max != nil && d.GreaterThan(*max) {
		return fmt.Errorf("value %s is greater than maximum %s", value, max.String())
	}
	return nil
}

func boundString(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func containsValue(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}

// ReferenceLookup reports whether a referenced value of the given kind exists.
type ReferenceLookup func(kind, value string) (bool, error)

// UniqueLookup reports whether a value already exists for an entity field.
type UniqueLookup func(entityType, column, value string) (bool, error)

// ReferenceValidator resolves foreign references through a lookup with a
// per-file cache so repeated values hit the database once.
type ReferenceValidator struct {
	cache  map[string]map[string]bool
	lookup ReferenceLookup
	errors *ErrorCollection
}

// NewReferenceValidator creates a reference validator.
func NewReferenceValidator(lookup ReferenceLookup, maxErrors int) *ReferenceValidator {
	return &ReferenceValidator{
		cache:  make(map[string]map[string]bool),
		lookup: lookup,
		errors: NewErrorCollection(maxErrors),
	}
}

// ValidateReference checks that the value resolves. Empty values pass.
func (v *ReferenceValidator) ValidateReference(line int, column, kind, value string) bool {
	if value == "" {
		return true
	}

	if kinds := v.cache[kind]; kinds != nil {
		if exists, cached := kinds[value]; cached {
			if !exists {
				v.errors.AddReference(line, column, value, kind)
			}
			return exists
		}
	}

	exists, err := v.lookup(kind, value)
	if err != nil {
		v.errors.Add(NewRowError(line, column, ErrCodeValidation,
			fmt.Sprintf("error resolving %s reference: %v", kind, err)))
		return false
	}

	if v.cache[kind] == nil {
		v.cache[kind] = make(map[string]bool)
	}
	v.cache[kind][value] = exists

	if !exists {
		v.errors.AddReference(line, column, value, kind)
	}
	return exists
}

// Errors returns the accumulated errors.
func (v *ReferenceValidator) Errors() *ErrorCollection {
	return v.errors
}

// UniquenessValidator checks values against existing database records.
type UniquenessValidator struct {
	lookup UniqueLookup
	errors *ErrorCollection
}

// NewUniquenessValidator creates a uniqueness validator.
func NewUniquenessValidator(lookup UniqueLookup, maxErrors int) *UniquenessValidator {
	return &UniquenessValidator{
		lookup: lookup,
		errors: NewErrorCollection(maxErrors),
	}
}

// ValidateUnique reports whether the value is absent from the database.
func (v *UniquenessValidator) ValidateUnique(line int, column, entityType, value string) bool {
	if value == "" {
		return true
	}

	exists, err := v.lookup(entityType, column, value)
	if err != nil {
		v.errors.Add(NewRowError(line, column, ErrCodeValidation,
			fmt.Sprintf("error checking uniqueness: %v", err)))
		return false
	}
	if exists {
		v.errors.AddDuplicate(line, column, value, true)
		return false
	}
	return true
}

// Errors returns the accumulated errors.
func (v *UniquenessValidator) Errors() *ErrorCollection {
	return v.errors
}
