package competency

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// Skill represents a single skill within a skill group
type Skill struct {
	ID          uuid.UUID
	Name        string
	Description string
	SortOrder   int
	IsActive    bool
}

// SkillGroup groups related skills (e.g., "Software Engineering").
// It is the aggregate root; skills are owned entities.
type SkillGroup struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Skills      []Skill
	IsActive    bool
}

// NewSkillGroup creates a new skill group
func NewSkillGroup(name, description string) (*SkillGroup, error) {
	if err := validateTaxonomyName(name); err != nil {
		return nil, err
	}

	group := &SkillGroup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		Skills:            make([]Skill, 0),
		IsActive:          true,
	}

	group.AddDomainEvent(NewSkillGroupCreatedEvent(group))

	return group, nil
}

// Rename renames the skill group
func (g *SkillGroup) Rename(name string) error {
	if err := validateTaxonomyName(name); err != nil {
		return err
	}

	g.Name = strings.TrimSpace(name)
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}

// AddSkill adds a skill to the group. Names are unique within the group.
func (g *SkillGroup) AddSkill(name, description string) (*Skill, error) {
	if err := validateTaxonomyName(name); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	for _, s := range g.Skills {
		if strings.EqualFold(s.Name, name) {
			return nil, shared.NewDomainError("SKILL_ALREADY_EXISTS", "Skill group already contains a skill with this name")
		}
	}

	skill := Skill{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		SortOrder:   len(g.Skills),
		IsActive:    true,
	}

	g.Skills = append(g.Skills, skill)
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	g.AddDomainEvent(NewSkillAddedEvent(g, &skill))

	return &skill, nil
}

// UpdateSkill updates a skill's name and description
func (g *SkillGroup) UpdateSkill(skillID uuid.UUID, name, description string) error {
	if err := validateTaxonomyName(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	idx := -1
	for i, s := range g.Skills {
		if s.ID == skillID {
			idx = i
		} else if strings.EqualFold(s.Name, name) {
			return shared.NewDomainError("SKILL_ALREADY_EXISTS", "Skill group already contains a skill with this name")
		}
	}
	if idx < 0 {
		return shared.NewDomainError("SKILL_NOT_FOUND", "Skill group does not contain this skill")
	}

	g.Skills[idx].Name = name
	g.Skills[idx].Description = description
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}

// DeactivateSkill retires a skill without removing historical references
func (g *SkillGroup) DeactivateSkill(skillID uuid.UUID) error {
	for i, s := range g.Skills {
		if s.ID == skillID {
			if !s.IsActive {
				return shared.NewDomainError("ALREADY_INACTIVE", "Skill is already inactive")
			}
			g.Skills[i].IsActive = false
			g.UpdatedAt = time.Now()
			g.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("SKILL_NOT_FOUND", "Skill group does not contain this skill")
}

// GetSkill returns a skill by ID
func (g *SkillGroup) GetSkill(skillID uuid.UUID) *Skill {
	for i := range g.Skills {
		if g.Skills[i].ID == skillID {
			return &g.Skills[i]
		}
	}
	return nil
}

// Deactivate retires the whole group
func (g *SkillGroup) Deactivate() error {
	if !g.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Skill group is already inactive")
	}

	g.IsActive = false
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	return nil
}

// PositionSkillMatrix maps a position group to the skills expected of it.
// It is an aggregate root keyed by position group.
type PositionSkillMatrix struct {
	shared.BaseAggregateRoot
	PositionGroup employee.PositionGroup
	Entries       []MatrixEntry
}

// MatrixEntry is one skill expectation in a position matrix
type MatrixEntry struct {
	SkillID       uuid.UUID
	ExpectedLevel int // 1..5
}

// NewPositionSkillMatrix creates an empty matrix for a position group
func NewPositionSkillMatrix(group employee.PositionGroup) (*PositionSkillMatrix, error) {
	if !group.IsValid() {
		return nil, shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group")
	}

	return &PositionSkillMatrix{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PositionGroup:     group,
		Entries:           make([]MatrixEntry, 0),
	}, nil
}

// SetEntry adds or replaces a skill expectation
func (m *PositionSkillMatrix) SetEntry(skillID uuid.UUID, level int) error {
	if skillID == uuid.Nil {
		return shared.NewDomainError("INVALID_SKILL_ID", "Skill ID cannot be empty")
	}
	if level < 1 || level > 5 {
		return shared.NewDomainError("INVALID_SKILL_LEVEL", "Expected level must be between 1 and 5")
	}

	for i, e := range m.Entries {
		if e.SkillID == skillID {
			m.Entries[i].ExpectedLevel = level
			m.UpdatedAt = time.Now()
			m.IncrementVersion()
			return nil
		}
	}

	m.Entries = append(m.Entries, MatrixEntry{SkillID: skillID, ExpectedLevel: level})
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// RemoveEntry removes a skill expectation
func (m *PositionSkillMatrix) RemoveEntry(skillID uuid.UUID) error {
	found := false
	newEntries := make([]MatrixEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if e.SkillID != skillID {
			newEntries = append(newEntries, e)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("ENTRY_NOT_FOUND", "Matrix does not contain this skill")
	}

	m.Entries = newEntries
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

func validateTaxonomyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
