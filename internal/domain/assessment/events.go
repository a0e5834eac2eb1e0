package assessment

import (
	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for assessment events
const (
	EventTypeAssessmentCreated   = "SelfAssessmentCreated"
	EventTypeAssessmentSubmitted = "SelfAssessmentSubmitted"
	EventTypeAssessmentReviewed  = "SelfAssessmentReviewed"
)

// AggregateTypeSelfAssessment is the aggregate type for assessment events
const AggregateTypeSelfAssessment = "SelfAssessment"

// AssessmentCreatedEvent is raised when a self-assessment is opened
type AssessmentCreatedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID
	Period     string
}

// NewAssessmentCreatedEvent creates a new AssessmentCreatedEvent
func NewAssessmentCreatedEvent(sa *SelfAssessment) *AssessmentCreatedEvent {
	return &AssessmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssessmentCreated, AggregateTypeSelfAssessment, sa.ID),
		EmployeeID:      sa.EmployeeID,
		Period:          sa.Period,
	}
}

// AssessmentSubmittedEvent is raised when an assessment is submitted for review
type AssessmentSubmittedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID
	ReviewerID uuid.UUID
	Period     string
}

// NewAssessmentSubmittedEvent creates a new AssessmentSubmittedEvent
func NewAssessmentSubmittedEvent(sa *SelfAssessment) *AssessmentSubmittedEvent {
	return &AssessmentSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssessmentSubmitted, AggregateTypeSelfAssessment, sa.ID),
		EmployeeID:      sa.EmployeeID,
		ReviewerID:      sa.ReviewerID,
		Period:          sa.Period,
	}
}

// AssessmentReviewedEvent is raised when a reviewer approves or returns
// an assessment
type AssessmentReviewedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID
	Outcome    AssessmentStatus // APPROVED or RETURNED
}

// NewAssessmentReviewedEvent creates a new AssessmentReviewedEvent
func NewAssessmentReviewedEvent(sa *SelfAssessment, outcome AssessmentStatus) *AssessmentReviewedEvent {
	return &AssessmentReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssessmentReviewed, AggregateTypeSelfAssessment, sa.ID),
		EmployeeID:      sa.EmployeeID,
		Outcome:         outcome,
	}
}
