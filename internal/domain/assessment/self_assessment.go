package assessment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// AssessmentStatus represents the lifecycle of a self-assessment
type AssessmentStatus string

const (
	AssessmentStatusDraft     AssessmentStatus = "DRAFT"
	AssessmentStatusSubmitted AssessmentStatus = "SUBMITTED"
	AssessmentStatusApproved  AssessmentStatus = "APPROVED"
	AssessmentStatusReturned  AssessmentStatus = "RETURNED"
)

// SkillRating is one self-rated skill in an assessment
type SkillRating struct {
	SkillID uuid.UUID
	Rating  int // 1..5
	Comment string
}

// SelfAssessment represents an employee's self-assessment against the
// competency taxonomy for a review period. Only DRAFT assessments are
// editable; the line manager reviews submissions.
type SelfAssessment struct {
	shared.BaseAggregateRoot
	EmployeeID      uuid.UUID
	ReviewerID      uuid.UUID // Line manager at creation time
	Period          string    // e.g. "2026-H1"
	Status          AssessmentStatus
	Ratings         []SkillRating
	EmployeeComment string
	ReviewerComment string
	SubmittedAt     *time.Time
	ReviewedAt      *time.Time
}

// NewSelfAssessment creates a draft self-assessment
func NewSelfAssessment(employeeID, reviewerID uuid.UUID, period string) (*SelfAssessment, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee ID cannot be empty")
	}
	if reviewerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REVIEWER_ID", "Reviewer ID cannot be empty")
	}
	if reviewerID == employeeID {
		return nil, shared.NewDomainError("INVALID_REVIEWER_ID", "Employee cannot review their own assessment")
	}
	period = strings.TrimSpace(period)
	if period == "" {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Review period cannot be empty")
	}

	sa := &SelfAssessment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeID:        employeeID,
		ReviewerID:        reviewerID,
		Period:            period,
		Status:            AssessmentStatusDraft,
		Ratings:           make([]SkillRating, 0),
	}

	sa.AddDomainEvent(NewAssessmentCreatedEvent(sa))

	return sa, nil
}

// SetRating adds or replaces a skill rating. Only allowed in DRAFT.
func (sa *SelfAssessment) SetRating(skillID uuid.UUID, rating int, comment string) error {
	if err := sa.requireEditable(); err != nil {
		return err
	}
	if skillID == uuid.Nil {
		return shared.NewDomainError("INVALID_SKILL_ID", "Skill ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	for i, r := range sa.Ratings {
		if r.SkillID == skillID {
			sa.Ratings[i].Rating = rating
			sa.Ratings[i].Comment = comment
			sa.touch()
			return nil
		}
	}

	sa.Ratings = append(sa.Ratings, SkillRating{SkillID: skillID, Rating: rating, Comment: comment})
	sa.touch()

	return nil
}

// RemoveRating removes a skill rating. Only allowed in DRAFT.
func (sa *SelfAssessment) RemoveRating(skillID uuid.UUID) error {
	if err := sa.requireEditable(); err != nil {
		return err
	}

	found := false
	newRatings := make([]SkillRating, 0, len(sa.Ratings))
	for _, r := range sa.Ratings {
		if r.SkillID != skillID {
			newRatings = append(newRatings, r)
		} else {
			found = true
		}
	}

	if !found {
		return shared.NewDomainError("RATING_NOT_FOUND", "Assessment does not rate this skill")
	}

	sa.Ratings = newRatings
	sa.touch()

	return nil
}

// SetEmployeeComment sets the overall self-comment. Only allowed in DRAFT.
func (sa *SelfAssessment) SetEmployeeComment(comment string) error {
	if err := sa.requireEditable(); err != nil {
		return err
	}

	sa.EmployeeComment = strings.TrimSpace(comment)
	sa.touch()

	return nil
}

// Submit sends the assessment to the reviewer.
// A returned assessment can be corrected and resubmitted.
func (sa *SelfAssessment) Submit() error {
	if sa.Status != AssessmentStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft assessments can be submitted")
	}
	if len(sa.Ratings) == 0 {
		return shared.NewDomainError("EMPTY_ASSESSMENT", "Assessment must rate at least one skill before submission")
	}

	now := time.Now()
	sa.Status = AssessmentStatusSubmitted
	sa.SubmittedAt = &now
	sa.UpdatedAt = now
	sa.IncrementVersion()

	sa.AddDomainEvent(NewAssessmentSubmittedEvent(sa))

	return nil
}

// Approve records the reviewer's approval
func (sa *SelfAssessment) Approve(reviewerID uuid.UUID, comment string) error {
	if sa.Status != AssessmentStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Only submitted assessments can be approved")
	}
	if reviewerID != sa.ReviewerID {
		return shared.NewDomainError("NOT_AUTHORIZED_ACTOR", "Only the assigned reviewer may approve this assessment")
	}

	now := time.Now()
	sa.Status = AssessmentStatusApproved
	sa.ReviewerComment = strings.TrimSpace(comment)
	sa.ReviewedAt = &now
	sa.UpdatedAt = now
	sa.IncrementVersion()

	sa.AddDomainEvent(NewAssessmentReviewedEvent(sa, AssessmentStatusApproved))

	return nil
}

// Return sends the assessment back to the employee for rework.
// The assessment becomes a draft again.
func (sa *SelfAssessment) Return(reviewerID uuid.UUID, comment string) error {
	if sa.Status != AssessmentStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Only submitted assessments can be returned")
	}
	if reviewerID != sa.ReviewerID {
		return shared.NewDomainError("NOT_AUTHORIZED_ACTOR", "Only the assigned reviewer may return this assessment")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return shared.NewDomainError("INVALID_COMMENT", "Return comment cannot be empty")
	}

	now := time.Now()
	sa.Status = AssessmentStatusDraft
	sa.ReviewerComment = comment
	sa.ReviewedAt = &now
	sa.UpdatedAt = now
	sa.IncrementVersion()

	sa.AddDomainEvent(NewAssessmentReviewedEvent(sa, AssessmentStatusReturned))

	return nil
}

// GetRating returns the rating for a skill, if present
func (sa *SelfAssessment) GetRating(skillID uuid.UUID) *SkillRating {
	for i := range sa.Ratings {
		if sa.Ratings[i].SkillID == skillID {
			return &sa.Ratings[i]
		}
	}
	return nil
}

// AverageRating returns the mean of all ratings, or 0 when empty
func (sa *SelfAssessment) AverageRating() float64 {
	if len(sa.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range sa.Ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(sa.Ratings))
}

func (sa *SelfAssessment) requireEditable() error {
	if sa.Status != AssessmentStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft assessments can be modified")
	}
	return nil
}

func (sa *SelfAssessment) touch() {
	sa.UpdatedAt = time.Now()
	sa.IncrementVersion()
}
