package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/assessment"
)

// SelfAssessmentModel is the persistence model for the SelfAssessment domain entity.
// Skill ratings are stored as a JSON column.
type SelfAssessmentModel struct {
	AggregateModel
	EmployeeID      uuid.UUID                   `gorm:"type:uuid;not null;index:idx_assessments_employee_period,unique"`
	ReviewerID      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Period          string                      `gorm:"type:varchar(20);not null;index:idx_assessments_employee_period,unique"`
	Status          assessment.AssessmentStatus `gorm:"type:varchar(20);not null;index"`
	Ratings         string                      `gorm:"type:jsonb;default:'[]'"`
	EmployeeComment string                      `gorm:"type:text"`
	ReviewerComment string                      `gorm:"type:text"`
	SubmittedAt     *time.Time
	ReviewedAt      *time.Time
}

// TableName returns the table name for GORM
func (SelfAssessmentModel) TableName() string {
	return "self_assessments"
}

// ToDomain converts the persistence model to a domain SelfAssessment entity.
func (m *SelfAssessmentModel) ToDomain() (*assessment.SelfAssessment, error) {
	var ratings []assessment.SkillRating
	if m.Ratings != "" {
		if err := json.Unmarshal([]byte(m.Ratings), &ratings); err != nil {
			return nil, err
		}
	}

	sa := &assessment.SelfAssessment{
		EmployeeID:      m.EmployeeID,
		ReviewerID:      m.ReviewerID,
		Period:          m.Period,
		Status:          m.Status,
		Ratings:         ratings,
		EmployeeComment: m.EmployeeComment,
		ReviewerComment: m.ReviewerComment,
		SubmittedAt:     m.SubmittedAt,
		ReviewedAt:      m.ReviewedAt,
	}
	m.PopulateAggregateRoot(&sa.BaseAggregateRoot)
	return sa, nil
}

// FromDomain populates the persistence model from a domain SelfAssessment entity.
func (m *SelfAssessmentModel) FromDomain(sa *assessment.SelfAssessment) error {
	ratings, err := json.Marshal(sa.Ratings)
	if err != nil {
		return err
	}

	m.FromDomainAggregateRoot(sa.BaseAggregateRoot)
	m.EmployeeID = sa.EmployeeID
	m.ReviewerID = sa.ReviewerID
	m.Period = sa.Period
	m.Status = sa.Status
	m.Ratings = string(ratings)
	m.EmployeeComment = sa.EmployeeComment
	m.ReviewerComment = sa.ReviewerComment
	m.SubmittedAt = sa.SubmittedAt
	m.ReviewedAt = sa.ReviewedAt
	return nil
}

// SelfAssessmentModelFromDomain creates a new persistence model from a domain SelfAssessment entity.
func SelfAssessmentModelFromDomain(sa *assessment.SelfAssessment) (*SelfAssessmentModel, error) {
	m := &SelfAssessmentModel{}
	if err := m.FromDomain(sa); err != nil {
		return nil, err
	}
	return m, nil
}
