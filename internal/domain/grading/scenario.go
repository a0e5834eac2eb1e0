package grading

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// ScenarioStatus represents the lifecycle of a salary scenario
type ScenarioStatus string

const (
	ScenarioStatusDraft    ScenarioStatus = "DRAFT"    // Being edited, inputs incomplete
	ScenarioStatusSaved    ScenarioStatus = "SAVED"    // Inputs complete, grades computed and stored
	ScenarioStatusApplied  ScenarioStatus = "APPLIED"  // The current salary structure (at most one)
	ScenarioStatusArchived ScenarioStatus = "ARCHIVED" // Superseded structure
)

// HorizontalSteps is the number of chained horizontal growth rates per
// grade: LD → LQ → M → UQ → UD.
const HorizontalSteps = 4

// GradeInput holds the percentage inputs for one position group
type GradeInput struct {
	PositionGroup      employee.PositionGroup
	VerticalPercent    decimal.Decimal // Growth from the group below
	HorizontalPercents [HorizontalSteps]decimal.Decimal
}

// SalaryScenario represents a named, storable configuration of percentage
// inputs used to compute salary bands per position group.
type SalaryScenario struct {
	shared.BaseAggregateRoot
	Name       string
	Comment    string
	BaseValue  decimal.Decimal // Lower Decile of the lowest position group
	Inputs     []GradeInput    // One per position group, lowest to highest
	Status     ScenarioStatus
	Grades     []GradeBand // Computed bands, stored on save
	AppliedAt  *time.Time
	ArchivedAt *time.Time
}

// NewSalaryScenario creates a draft scenario
func NewSalaryScenario(name string, baseValue decimal.Decimal) (*SalaryScenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SCENARIO_NAME", "Scenario name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_SCENARIO_NAME", "Scenario name cannot exceed 200 characters")
	}
	if baseValue.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_BASE_VALUE", "Base value must be positive")
	}

	scenario := &SalaryScenario{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		BaseValue:         baseValue,
		Status:            ScenarioStatusDraft,
		Inputs:            make([]GradeInput, 0, len(employee.PositionGroupsOrdered)),
		Grades:            make([]GradeBand, 0),
	}

	scenario.AddDomainEvent(NewScenarioCreatedEvent(scenario))

	return scenario, nil
}

// SetBaseValue updates the base value. Only drafts are editable.
func (s *SalaryScenario) SetBaseValue(baseValue decimal.Decimal) error {
	if err := s.requireEditable(); err != nil {
		return err
	}
	if baseValue.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_BASE_VALUE", "Base value must be positive")
	}

	s.BaseValue = baseValue
	s.invalidateGrades()

	return nil
}

// SetInput adds or replaces the percentage inputs for a position group.
// Only drafts are editable.
func (s *SalaryScenario) SetInput(input GradeInput) error {
	if err := s.requireEditable(); err != nil {
		return err
	}
	if !input.PositionGroup.IsValid() {
		return shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group")
	}
	if input.VerticalPercent.LessThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_PERCENT", "Vertical percent cannot be negative")
	}
	for _, h := range input.HorizontalPercents {
		if h.LessThan(decimal.Zero) {
			return shared.NewDomainError("INVALID_PERCENT", "Horizontal percents cannot be negative")
		}
	}

	for i, existing := range s.Inputs {
		if existing.PositionGroup == input.PositionGroup {
			s.Inputs[i] = input
			s.invalidateGrades()
			return nil
		}
	}

	s.Inputs = append(s.Inputs, input)
	s.invalidateGrades()

	return nil
}

// InputFor returns the input for a position group, if present
func (s *SalaryScenario) InputFor(group employee.PositionGroup) *GradeInput {
	for i := range s.Inputs {
		if s.Inputs[i].PositionGroup == group {
			return &s.Inputs[i]
		}
	}
	return nil
}

// IsComplete returns true when every position group has an input
func (s *SalaryScenario) IsComplete() bool {
	for _, g := range employee.PositionGroupsOrdered {
		if s.InputFor(g) == nil {
			return false
		}
	}
	return true
}

// Save computes the grade bands and freezes the scenario.
// A saved scenario must have inputs for every position group.
func (s *SalaryScenario) Save() error {
	if s.Status != ScenarioStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft scenarios can be saved")
	}
	if !s.IsComplete() {
		return shared.NewDomainError("INCOMPLETE_INPUTS", "Scenario is missing inputs for one or more position groups")
	}

	grades, err := CalculateGrades(s.BaseValue, s.Inputs)
	if err != nil {
		return err
	}

	s.Grades = grades
	s.Status = ScenarioStatusSaved
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewScenarioSavedEvent(s))

	return nil
}

// Reopen returns a saved scenario to draft for further editing
func (s *SalaryScenario) Reopen() error {
	if s.Status != ScenarioStatusSaved {
		return shared.NewDomainError("INVALID_STATE", "Only saved scenarios can be reopened")
	}

	s.Status = ScenarioStatusDraft
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Apply promotes a saved scenario to the current salary structure.
// The service layer archives the previously applied scenario in the
// same transaction.
func (s *SalaryScenario) Apply() error {
	if s.Status != ScenarioStatusSaved {
		return shared.NewDomainError("INVALID_STATE", "Only saved scenarios can be applied")
	}

	now := time.Now()
	s.Status = ScenarioStatusApplied
	s.AppliedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewScenarioAppliedEvent(s))

	return nil
}

// Archive retires an applied scenario when a new one takes its place
func (s *SalaryScenario) Archive() error {
	if s.Status != ScenarioStatusApplied && s.Status != ScenarioStatusSaved {
		return shared.NewDomainError("INVALID_STATE", "Only applied or saved scenarios can be archived")
	}

	now := time.Now()
	s.Status = ScenarioStatusArchived
	s.ArchivedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// IsCurrent returns true if this scenario is the applied structure
func (s *SalaryScenario) IsCurrent() bool {
	return s.Status == ScenarioStatusApplied
}

func (s *SalaryScenario) requireEditable() error {
	if s.Status != ScenarioStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft scenarios can be modified")
	}
	return nil
}

// invalidateGrades drops stored bands after an input change
func (s *SalaryScenario) invalidateGrades() {
	s.Grades = s.Grades[:0]
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
