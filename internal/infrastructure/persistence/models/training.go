package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/training"
)

// TrainingModel is the persistence model for the Training domain entity.
// Materials are stored as a JSON column.
type TrainingModel struct {
	AggregateModel
	Title       string                `gorm:"type:varchar(200);not null"`
	Type        training.TrainingType `gorm:"type:varchar(20);not null;index"`
	Description string                `gorm:"type:text"`
	DurationHrs int                   `gorm:"not null;default:0"`
	Materials   string                `gorm:"type:jsonb;default:'[]'"`
	IsActive    bool                  `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TrainingModel) TableName() string {
	return "trainings"
}

// ToDomain converts the persistence model to a domain Training entity.
func (m *TrainingModel) ToDomain() (*training.Training, error) {
	var materials []training.Material
	if m.Materials != "" {
		if err := json.Unmarshal([]byte(m.Materials), &materials); err != nil {
			return nil, err
		}
	}

	tr := &training.Training{
		Title:       m.Title,
		Type:        m.Type,
		Description: m.Description,
		DurationHrs: m.DurationHrs,
		Materials:   materials,
		IsActive:    m.IsActive,
	}
	m.PopulateAggregateRoot(&tr.BaseAggregateRoot)
	return tr, nil
}

// FromDomain populates the persistence model from a domain Training entity.
func (m *TrainingModel) FromDomain(tr *training.Training) error {
	materials, err := json.Marshal(tr.Materials)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(tr.BaseAggregateRoot)
	m.Title = tr.Title
	m.Type = tr.Type
	m.Description = tr.Description
	m.DurationHrs = tr.DurationHrs
	m.Materials = string(materials)
	m.IsActive = tr.IsActive
	return nil
}

// TrainingModelFromDomain creates a new persistence model from a domain Training entity.
func TrainingModelFromDomain(tr *training.Training) (*TrainingModel, error) {
	m := &TrainingModel{}
	if err := m.FromDomain(tr); err != nil {
		return nil, err
	}
	return m, nil
}

// TrainingAssignmentModel is the persistence model for the training Assignment entity.
type TrainingAssignmentModel struct {
	AggregateModel
	TrainingID  uuid.UUID                 `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID                 `gorm:"type:uuid;not null;index"`
	DueDate     time.Time                 `gorm:"not null;index"`
	Status      training.AssignmentStatus `gorm:"type:varchar(20);not null;index"`
	Score       *int
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (TrainingAssignmentModel) TableName() string {
	return "training_assignments"
}

// ToDomain converts the persistence model to a domain Assignment entity.
func (m *TrainingAssignmentModel) ToDomain() *training.Assignment {
	a := &training.Assignment{
		TrainingID:  m.TrainingID,
		EmployeeID:  m.EmployeeID,
		DueDate:     m.DueDate,
		Status:      m.Status,
		Score:       m.Score,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Assignment entity.
func (m *TrainingAssignmentModel) FromDomain(a *training.Assignment) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.TrainingID = a.TrainingID
	m.EmployeeID = a.EmployeeID
	m.DueDate = a.DueDate
	m.Status = a.Status
	m.Score = a.Score
	m.StartedAt = a.StartedAt
	m.CompletedAt = a.CompletedAt
}

// TrainingAssignmentModelFromDomain creates a new persistence model from a domain Assignment entity.
func TrainingAssignmentModelFromDomain(a *training.Assignment) *TrainingAssignmentModel {
	m := &TrainingAssignmentModel{}
	m.FromDomain(a)
	return m
}
