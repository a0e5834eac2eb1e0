package jobdesc

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/shared"
)

// DutySection represents one ordered section of duties in a job description
type DutySection struct {
	ID        uuid.UUID
	Title     string
	Content   string
	SortOrder int
}

// RequiredSkill references a skill from the competency taxonomy
// together with the proficiency expected for the role
type RequiredSkill struct {
	SkillID       uuid.UUID
	RequiredLevel int // 1..5
}

// JobDescription represents an authored job description document.
// It is the aggregate root for JD content; assignment and approval
// live on JobDescriptionAssignment.
type JobDescription struct {
	shared.BaseAggregateRoot
	Title          string
	PositionGroup  employee.PositionGroup
	Grade          string
	DepartmentID   *uuid.UUID
	Purpose        string
	DutySections   []DutySection
	RequiredSkills []RequiredSkill
	Revision       int // Incremented on content changes
	IsActive       bool
}

// NewJobDescription creates a new job description
func NewJobDescription(title string, positionGroup employee.PositionGroup, purpose string) (*JobDescription, error) {
	if err := validateJDTitle(title); err != nil {
		return nil, err
	}
	if !positionGroup.IsValid() {
		return nil, shared.NewDomainError("INVALID_POSITION_GROUP", "Unknown position group")
	}

	jd := &JobDescription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		PositionGroup:     positionGroup,
		Purpose:           strings.TrimSpace(purpose),
		DutySections:      make([]DutySection, 0),
		RequiredSkills:    make([]RequiredSkill, 0),
		Revision:          1,
		IsActive:          true,
	}

	jd.AddDomainEvent(NewJobDescriptionCreatedEvent(jd))

	return jd, nil
}

// UpdateContent updates the JD's core content and bumps its revision
func (jd *JobDescription) UpdateContent(title, purpose, grade string) error {
	if err := validateJDTitle(title); err != nil {
		return err
	}

	jd.Title = strings.TrimSpace(title)
	jd.Purpose = strings.TrimSpace(purpose)
	jd.Grade = strings.TrimSpace(grade)
	jd.Revision++
	jd.UpdatedAt = time.Now()
	jd.IncrementVersion()

	jd.AddDomainEvent(NewJobDescriptionRevisedEvent(jd))

	return nil
}

// AddDutySection appends a duty section
func (jd *JobDescription) AddDutySection(title, content string) (*DutySection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_SECTION_TITLE", "Section title cannot be empty")
	}

	section := DutySection{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		SortOrder: len(jd.DutySections),
	}

	jd.DutySections = append(jd.DutySections, section)
	jd.Revision++
	jd.UpdatedAt = time.Now()
	jd.IncrementVersion()

	return &section, nil
}

// RemoveDutySection removes a duty section and compacts the ordering
func (jd *JobDescription) RemoveDutySection(sectionID uuid.UUID) error {
	found := false
	newSections := make([]DutySection, 0, len(jd.DutySections))
	for _, s := range jd.DutySections {
		if s.ID != sectionID {
			s.SortOrder = len(newSections)
			newSections = append(newSections, s)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("SECTION_NOT_FOUND", "Job description does not have this section")
	}

	jd.DutySections = newSections
	jd.Revision++
	jd.UpdatedAt = time.Now()
	jd.IncrementVersion()

	return nil
}

// SetRequiredSkill sets the required level for a skill (adds or replaces)
func (jd *JobDescription) SetRequiredSkill(skillID uuid.UUID, level int) error {
	if skillID == uuid.Nil {
		return shared.NewDomainError("INVALID_SKILL_ID", "Skill ID cannot be empty")
	}
	if level < 1 || level > 5 {
		return shared.NewDomainError("INVALID_SKILL_LEVEL", "Required level must be between 1 and 5")
	}

	for i, rs := range jd.RequiredSkills {
		if rs.SkillID == skillID {
			jd.RequiredSkills[i].RequiredLevel = level
			jd.touchRevision()
			return nil
		}
	}

	jd.RequiredSkills = append(jd.RequiredSkills, RequiredSkill{SkillID: skillID, RequiredLevel: level})
	jd.touchRevision()

	return nil
}

// RemoveRequiredSkill removes a required skill
func (jd *JobDescription) RemoveRequiredSkill(skillID uuid.UUID) error {
	found := false
	newSkills := make([]RequiredSkill, 0, len(jd.RequiredSkills))
	for _, rs := range jd.RequiredSkills {
		if rs.SkillID != skillID {
			newSkills = append(newSkills, rs)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("SKILL_NOT_FOUND", "Job description does not require this skill")
	}

	jd.RequiredSkills = newSkills
	jd.touchRevision()

	return nil
}

// Deactivate retires the job description from new assignments
func (jd *JobDescription) Deactivate() error {
	if !jd.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Job description is already inactive")
	}

	jd.IsActive = false
	jd.UpdatedAt = time.Now()
	jd.IncrementVersion()

	return nil
}

// Activate returns the job description to active status
func (jd *JobDescription) Activate() error {
	if jd.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Job description is already active")
	}

	jd.IsActive = true
	jd.UpdatedAt = time.Now()
	jd.IncrementVersion()

	return nil
}

func (jd *JobDescription) touchRevision() {
	jd.Revision++
	jd.UpdatedAt = time.Now()
	jd.IncrementVersion()
}

func validateJDTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_JD_TITLE", "Job description title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_JD_TITLE", "Job description title cannot exceed 200 characters")
	}
	return nil
}
