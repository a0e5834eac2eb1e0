package models

import (
	"encoding/json"

	"github.com/hris/backend/internal/domain/competency"
	"github.com/hris/backend/internal/domain/employee"
)

// SkillGroupModel is the persistence model for the SkillGroup domain entity.
// Owned skills are stored as a JSON column.
type SkillGroupModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Skills      string `gorm:"type:jsonb;default:'[]'"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SkillGroupModel) TableName() string {
	return "skill_groups"
}

// ToDomain converts the persistence model to a domain SkillGroup entity.
func (m *SkillGroupModel) ToDomain() (*competency.SkillGroup, error) {
	var skills []competency.Skill
	if m.Skills != "" {
		if err := json.Unmarshal([]byte(m.Skills), &skills); err != nil {
			return nil, err
		}
	}

	group := &competency.SkillGroup{
		Name:        m.Name,
		Description: m.Description,
		Skills:      skills,
		IsActive:    m.IsActive,
	}
	m.PopulateAggregateRoot(&group.BaseAggregateRoot)
	return group, nil
}

// FromDomain populates the persistence model from a domain SkillGroup entity.
func (m *SkillGroupModel) FromDomain(g *competency.SkillGroup) error {
	skills, err := json.Marshal(g.Skills)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.Name = g.Name
	m.Description = g.Description
	m.Skills = string(skills)
	m.IsActive = g.IsActive
	return nil
}

// SkillGroupModelFromDomain creates a new persistence model from a domain SkillGroup entity.
func SkillGroupModelFromDomain(g *competency.SkillGroup) (*SkillGroupModel, error) {
	m := &SkillGroupModel{}
	if err := m.FromDomain(g); err != nil {
		return nil, err
	}
	return m, nil
}

// BehavioralGroupModel is the persistence model for the BehavioralGroup domain entity.
type BehavioralGroupModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description  string `gorm:"type:text"`
	Competencies string `gorm:"type:jsonb;default:'[]'"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BehavioralGroupModel) TableName() string {
	return "behavioral_groups"
}

// ToDomain converts the persistence model to a domain BehavioralGroup entity.
func (m *BehavioralGroupModel) ToDomain() (*competency.BehavioralGroup, error) {
	var competencies []competency.BehavioralCompetency
	if m.Competencies != "" {
		if err := json.Unmarshal([]byte(m.Competencies), &competencies); err != nil {
			return nil, err
		}
	}

	group := &competency.BehavioralGroup{
		Name:         m.Name,
		Description:  m.Description,
		Competencies: competencies,
		IsActive:     m.IsActive,
	}
	m.PopulateAggregateRoot(&group.BaseAggregateRoot)
	return group, nil
}

// FromDomain populates the persistence model from a domain BehavioralGroup entity.
func (m *BehavioralGroupModel) FromDomain(g *competency.BehavioralGroup) error {
	competencies, err := json.Marshal(g.Competencies)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.Name = g.Name
	m.Description = g.Description
	m.Competencies = string(competencies)
	m.IsActive = g.IsActive
	return nil
}

// BehavioralGroupModelFromDomain creates a new persistence model from a domain BehavioralGroup entity.
func BehavioralGroupModelFromDomain(g *competency.BehavioralGroup) (*BehavioralGroupModel, error) {
	m := &BehavioralGroupModel{}
	if err := m.FromDomain(g); err != nil {
		return nil, err
	}
	return m, nil
}

// PositionSkillMatrixModel is the persistence model for the PositionSkillMatrix domain entity.
// One row per position group; entries stored as a JSON column.
type PositionSkillMatrixModel struct {
	AggregateModel
	PositionGroup employee.PositionGroup `gorm:"type:varchar(30);not null;uniqueIndex"`
	Entries       string                 `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (PositionSkillMatrixModel) TableName() string {
	return "position_skill_matrices"
}

// ToDomain converts the persistence model to a domain PositionSkillMatrix entity.
func (m *PositionSkillMatrixModel) ToDomain() (*competency.PositionSkillMatrix, error) {
	var entries []competency.MatrixEntry
	if m.Entries != "" {
		if err := json.Unmarshal([]byte(m.Entries), &entries); err != nil {
			return nil, err
		}
	}

	matrix := &competency.PositionSkillMatrix{
		PositionGroup: m.PositionGroup,
		Entries:       entries,
	}
	m.PopulateAggregateRoot(&matrix.BaseAggregateRoot)
	return matrix, nil
}

// FromDomain populates the persistence model from a domain PositionSkillMatrix entity.
func (m *PositionSkillMatrixModel) FromDomain(mx *competency.PositionSkillMatrix) error {
	entries, err := json.Marshal(mx.Entries)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(mx.BaseAggregateRoot)
	m.PositionGroup = mx.PositionGroup
	m.Entries = string(entries)
	return nil
}

// PositionSkillMatrixModelFromDomain creates a new persistence model from a domain PositionSkillMatrix entity.
func PositionSkillMatrixModelFromDomain(mx *competency.PositionSkillMatrix) (*PositionSkillMatrixModel, error) {
	m := &PositionSkillMatrixModel{}
	if err := m.FromDomain(mx); err != nil {
		return nil, err
	}
	return m, nil
}
