package training

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for training events
const (
	EventTypeTrainingCreated   = "TrainingCreated"
	EventTypeTrainingAssigned  = "TrainingAssigned"
	EventTypeTrainingCompleted = "TrainingCompleted"
	EventTypeTrainingOverdue   = "TrainingOverdue"
)

// Aggregate types for training events
const (
	AggregateTypeTraining           = "Training"
	AggregateTypeTrainingAssignment = "TrainingAssignment"
)

// TrainingCreatedEvent is raised when a training is added to the catalog
type TrainingCreatedEvent struct {
	shared.BaseDomainEvent
	Title string
	Type  TrainingType
}

// NewTrainingCreatedEvent creates a new TrainingCreatedEvent
func NewTrainingCreatedEvent(t *Training) *TrainingCreatedEvent {
	return &TrainingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTrainingCreated, AggregateTypeTraining, t.ID),
		Title:           t.Title,
		Type:            t.Type,
	}
}

// TrainingAssignedEvent is raised when a training is assigned to an employee
type TrainingAssignedEvent struct {
	shared.BaseDomainEvent
	TrainingID uuid.UUID
	EmployeeID uuid.UUID
	DueDate    time.Time
}

// NewTrainingAssignedEvent creates a new TrainingAssignedEvent
func NewTrainingAssignedEvent(a *Assignment) *TrainingAssignedEvent {
	return &TrainingAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTrainingAssigned, AggregateTypeTrainingAssignment, a.ID),
		TrainingID:      a.TrainingID,
		EmployeeID:      a.EmployeeID,
		DueDate:         a.DueDate,
	}
}

// TrainingCompletedEvent is raised when an employee completes a training
type TrainingCompletedEvent struct {
	shared.BaseDomainEvent
	TrainingID uuid.UUID
	EmployeeID uuid.UUID
	Score      *int
}

// NewTrainingCompletedEvent creates a new TrainingCompletedEvent
func NewTrainingCompletedEvent(a *Assignment) *TrainingCompletedEvent {
	return &TrainingCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTrainingCompleted, AggregateTypeTrainingAssignment, a.ID),
		TrainingID:      a.TrainingID,
		EmployeeID:      a.EmployeeID,
		Score:           a.Score,
	}
}

// TrainingOverdueEvent is raised by the scheduler sweep when an
// unfinished assignment passes its due date
type TrainingOverdueEvent struct {
	shared.BaseDomainEvent
	TrainingID uuid.UUID
	EmployeeID uuid.UUID
	DueDate    time.Time
}

// NewTrainingOverdueEvent creates a new TrainingOverdueEvent
func NewTrainingOverdueEvent(a *Assignment) *TrainingOverdueEvent {
	return &TrainingOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTrainingOverdue, AggregateTypeTrainingAssignment, a.ID),
		TrainingID:      a.TrainingID,
		EmployeeID:      a.EmployeeID,
		DueDate:         a.DueDate,
	}
}
