package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/employee"
	"github.com/hris/backend/internal/domain/jobdesc"
)

// JobDescriptionModel is the persistence model for the JobDescription domain entity.
// Duty sections and required skills are stored as JSON columns.
type JobDescriptionModel struct {
	AggregateModel
	Title          string                 `gorm:"type:varchar(200);not null"`
	PositionGroup  employee.PositionGroup `gorm:"type:varchar(30);not null;index"`
	Grade          string                 `gorm:"type:varchar(10)"`
	DepartmentID   *uuid.UUID             `gorm:"type:uuid;index"`
	Purpose        string                 `gorm:"type:text"`
	DutySections   string                 `gorm:"type:jsonb;default:'[]'"`
	RequiredSkills string                 `gorm:"type:jsonb;default:'[]'"`
	Revision       int                    `gorm:"not null;default:1"`
	IsActive       bool                   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (JobDescriptionModel) TableName() string {
	return "job_descriptions"
}

// ToDomain converts the persistence model to a domain JobDescription entity.
func (m *JobDescriptionModel) ToDomain() (*jobdesc.JobDescription, error) {
	var sections []jobdesc.DutySection
	if m.DutySections != "" {
		if err := json.Unmarshal([]byte(m.DutySections), &sections); err != nil {
			return nil, err
		}
	}

	var skills []jobdesc.RequiredSkill
	if m.RequiredSkills != "" {
		if err := json.Unmarshal([]byte(m.RequiredSkills), &skills); err != nil {
			return nil, err
		}
	}

	jd := &jobdesc.JobDescription{
		Title:          m.Title,
		PositionGroup:  m.PositionGroup,
		Grade:          m.Grade,
		DepartmentID:   m.DepartmentID,
		Purpose:        m.Purpose,
		DutySections:   sections,
		RequiredSkills: skills,
		Revision:       m.Revision,
		IsActive:       m.IsActive,
	}
	m.PopulateAggregateRoot(&jd.BaseAggregateRoot)
	return jd, nil
}

// FromDomain populates the persistence model from a domain JobDescription entity.
func (m *JobDescriptionModel) FromDomain(jd *jobdesc.JobDescription) error {
	sections, err := json.Marshal(jd.DutySections)
	if err != nil {
		return err
	}
	skills, err := json.Marshal(jd.RequiredSkills)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(jd.BaseAggregateRoot)
	m.Title = jd.Title
	m.PositionGroup = jd.PositionGroup
	m.Grade = jd.Grade
	m.DepartmentID = jd.DepartmentID
	m.Purpose = jd.Purpose
	m.DutySections = string(sections)
	m.RequiredSkills = string(skills)
	m.Revision = jd.Revision
	m.IsActive = jd.IsActive
	return nil
}

// JobDescriptionModelFromDomain creates a new persistence model from a domain JobDescription entity.
func JobDescriptionModelFromDomain(jd *jobdesc.JobDescription) (*JobDescriptionModel, error) {
	m := &JobDescriptionModel{}
	if err := m.FromDomain(jd); err != nil {
		return nil, err
	}
	return m, nil
}

// JobAssignmentModel is the persistence model for the job description Assignment entity.
// The transition history is stored as a JSON column.
type JobAssignmentModel struct {
	AggregateModel
	JobDescriptionID uuid.UUID              `gorm:"type:uuid;not null;index"`
	EmployeeID       *uuid.UUID             `gorm:"type:uuid;index"`
	LineManagerID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	Status           jobdesc.ApprovalStatus `gorm:"type:varchar(30);not null;index"`
	ManagerComment   string                 `gorm:"type:text"`
	EmployeeComment  string                 `gorm:"type:text"`
	SubmittedAt      *time.Time
	ApprovedAt       *time.Time
	History          string `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (JobAssignmentModel) TableName() string {
	return "job_assignments"
}

// ToDomain converts the persistence model to a domain Assignment entity.
func (m *JobAssignmentModel) ToDomain() (*jobdesc.Assignment, error) {
	var history []jobdesc.TransitionRecord
	if m.History != "" {
		if err := json.Unmarshal([]byte(m.History), &history); err != nil {
			return nil, err
		}
	}

	a := &jobdesc.Assignment{
		JobDescriptionID: m.JobDescriptionID,
		EmployeeID:       m.EmployeeID,
		LineManagerID:    m.LineManagerID,
		Status:           m.Status,
		ManagerComment:   m.ManagerComment,
		EmployeeComment:  m.EmployeeComment,
		SubmittedAt:      m.SubmittedAt,
		ApprovedAt:       m.ApprovedAt,
		History:          history,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a, nil
}

// FromDomain populates the persistence model from a domain Assignment entity.
func (m *JobAssignmentModel) FromDomain(a *jobdesc.Assignment) error {
	history, err := json.Marshal(a.History)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.JobDescriptionID = a.JobDescriptionID
	m.EmployeeID = a.EmployeeID
	m.LineManagerID = a.LineManagerID
	m.Status = a.Status
	m.ManagerComment = a.ManagerComment
	m.EmployeeComment = a.EmployeeComment
	m.SubmittedAt = a.SubmittedAt
	m.ApprovedAt = a.ApprovedAt
	m.History = string(history)
	return nil
}

// JobAssignmentModelFromDomain creates a new persistence model from a domain Assignment entity.
func JobAssignmentModelFromDomain(a *jobdesc.Assignment) (*JobAssignmentModel, error) {
	m := &JobAssignmentModel{}
	if err := m.FromDomain(a); err != nil {
		return nil, err
	}
	return m, nil
}
