package jobdesc

import (
	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for job description events
const (
	EventTypeJobDescriptionCreated       = "JobDescriptionCreated"
	EventTypeJobDescriptionRevised       = "JobDescriptionRevised"
	EventTypeAssignmentCreated           = "JobDescriptionAssignmentCreated"
	EventTypeAssignmentSubmitted         = "JobDescriptionAssignmentSubmitted"
	EventTypeAssignmentApproved          = "JobDescriptionAssignmentApproved"
	EventTypeAssignmentRejected          = "JobDescriptionAssignmentRejected"
	EventTypeAssignmentRevisionRequested = "JobDescriptionAssignmentRevisionRequested"
)

// Aggregate types for job description events
const (
	AggregateTypeJobDescription = "JobDescription"
	AggregateTypeAssignment     = "JobDescriptionAssignment"
)

// JobDescriptionCreatedEvent is raised when a new JD is authored
type JobDescriptionCreatedEvent struct {
	shared.BaseDomainEvent
	Title string
}

// NewJobDescriptionCreatedEvent creates a new JobDescriptionCreatedEvent
func NewJobDescriptionCreatedEvent(jd *JobDescription) *JobDescriptionCreatedEvent {
	return &JobDescriptionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobDescriptionCreated, AggregateTypeJobDescription, jd.ID),
		Title:           jd.Title,
	}
}

// JobDescriptionRevisedEvent is raised when JD content changes
type JobDescriptionRevisedEvent struct {
	shared.BaseDomainEvent
	Title    string
	Revision int
}

// NewJobDescriptionRevisedEvent creates a new JobDescriptionRevisedEvent
func NewJobDescriptionRevisedEvent(jd *JobDescription) *JobDescriptionRevisedEvent {
	return &JobDescriptionRevisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobDescriptionRevised, AggregateTypeJobDescription, jd.ID),
		Title:           jd.Title,
		Revision:        jd.Revision,
	}
}

// AssignmentCreatedEvent is raised when a JD is assigned
type AssignmentCreatedEvent struct {
	shared.BaseDomainEvent
	JobDescriptionID uuid.UUID
	EmployeeID       *uuid.UUID
}

// NewAssignmentCreatedEvent creates a new AssignmentCreatedEvent
func NewAssignmentCreatedEvent(a *Assignment) *AssignmentCreatedEvent {
	return &AssignmentCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAssignmentCreated, AggregateTypeAssignment, a.ID),
		JobDescriptionID: a.JobDescriptionID,
		EmployeeID:       a.EmployeeID,
	}
}

// AssignmentSubmittedEvent is raised when an assignment enters the approval chain
type AssignmentSubmittedEvent struct {
	shared.BaseDomainEvent
	JobDescriptionID uuid.UUID
	LineManagerID    uuid.UUID
}

// NewAssignmentSubmittedEvent creates a new AssignmentSubmittedEvent
func NewAssignmentSubmittedEvent(a *Assignment) *AssignmentSubmittedEvent {
	return &AssignmentSubmittedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAssignmentSubmitted, AggregateTypeAssignment, a.ID),
		JobDescriptionID: a.JobDescriptionID,
		LineManagerID:    a.LineManagerID,
	}
}

// AssignmentApprovedEvent is raised when the approval chain completes
type AssignmentApprovedEvent struct {
	shared.BaseDomainEvent
	JobDescriptionID uuid.UUID
	EmployeeID       *uuid.UUID
}

// NewAssignmentApprovedEvent creates a new AssignmentApprovedEvent
func NewAssignmentApprovedEvent(a *Assignment) *AssignmentApprovedEvent {
	return &AssignmentApprovedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAssignmentApproved, AggregateTypeAssignment, a.ID),
		JobDescriptionID: a.JobDescriptionID,
		EmployeeID:       a.EmployeeID,
	}
}

// AssignmentRejectedEvent is raised on terminal rejection
type AssignmentRejectedEvent struct {
	shared.BaseDomainEvent
	JobDescriptionID uuid.UUID
	Comment          string
}

// NewAssignmentRejectedEvent creates a new AssignmentRejectedEvent
func NewAssignmentRejectedEvent(a *Assignment, comment string) *AssignmentRejectedEvent {
	return &AssignmentRejectedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAssignmentRejected, AggregateTypeAssignment, a.ID),
		JobDescriptionID: a.JobDescriptionID,
		Comment:          comment,
	}
}

// AssignmentRevisionRequestedEvent is raised when an approver sends the
// assignment back to its author
type AssignmentRevisionRequestedEvent struct {
	shared.BaseDomainEvent
	JobDescriptionID uuid.UUID
	Comment          string
}

// NewAssignmentRevisionRequestedEvent creates a new AssignmentRevisionRequestedEvent
func NewAssignmentRevisionRequestedEvent(a *Assignment, comment string) *AssignmentRevisionRequestedEvent {
	return &AssignmentRevisionRequestedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAssignmentRevisionRequested, AggregateTypeAssignment, a.ID),
		JobDescriptionID: a.JobDescriptionID,
		Comment:          comment,
	}
}
