package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hris/backend/internal/domain/grading"
)

// SalaryScenarioModel is the persistence model for the SalaryScenario domain entity.
// Inputs and computed grade bands are stored as JSON columns; decimals
// serialize as strings to preserve precision.
type SalaryScenarioModel struct {
	AggregateModel
	Name       string                 `gorm:"type:varchar(200);not null"`
	Comment    string                 `gorm:"type:text"`
	BaseValue  decimal.Decimal        `gorm:"type:numeric(18,6);not null"`
	Inputs     string                 `gorm:"type:jsonb;default:'[]'"`
	Status     grading.ScenarioStatus `gorm:"type:varchar(20);not null;index"`
	Grades     string                 `gorm:"type:jsonb;default:'[]'"`
	AppliedAt  *time.Time
	ArchivedAt *time.Time
}

// TableName returns the table name for GORM
func (SalaryScenarioModel) TableName() string {
	return "salary_scenarios"
}

// ToDomain converts the persistence model to a domain SalaryScenario entity.
func (m *SalaryScenarioModel) ToDomain() (*grading.SalaryScenario, error) {
	var inputs []grading.GradeInput
	if m.Inputs != "" {
		if err := json.Unmarshal([]byte(m.Inputs), &inputs); err != nil {
			return nil, err
		}
	}

	var grades []grading.GradeBand
	if m.Grades != "" {
		if err := json.Unmarshal([]byte(m.Grades), &grades); err != nil {
			return nil, err
		}
	}

	scenario := &grading.SalaryScenario{
		Name:       m.Name,
		Comment:    m.Comment,
		BaseValue:  m.BaseValue,
		Inputs:     inputs,
		Status:     m.Status,
		Grades:     grades,
		AppliedAt:  m.AppliedAt,
		ArchivedAt: m.ArchivedAt,
	}
	m.PopulateAggregateRoot(&scenario.BaseAggregateRoot)
	return scenario, nil
}

// FromDomain populates the persistence model from a domain SalaryScenario entity.
func (m *SalaryScenarioModel) FromDomain(s *grading.SalaryScenario) error {
	inputs, err := json.Marshal(s.Inputs)
	if err != nil {
		return err
	}
	grades, err := json.Marshal(s.Grades)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Comment = s.Comment
	m.BaseValue = s.BaseValue
	m.Inputs = string(inputs)
	m.Status = s.Status
	m.Grades = string(grades)
	m.AppliedAt = s.AppliedAt
	m.ArchivedAt = s.ArchivedAt
	return nil
}

// SalaryScenarioModelFromDomain creates a new persistence model from a domain SalaryScenario entity.
func SalaryScenarioModelFromDomain(s *grading.SalaryScenario) (*SalaryScenarioModel, error) {
	m := &SalaryScenarioModel{}
	if err := m.FromDomain(s); err != nil {
		return nil, err
	}
	return m, nil
}
