package training

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// AssignmentStatus represents the completion state of a training assignment
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusCompleted  AssignmentStatus = "COMPLETED"
	AssignmentStatusOverdue    AssignmentStatus = "OVERDUE"
)

// Assignment links a training to an employee with a due date.
// The scheduler sweep marks unfinished assignments OVERDUE after the
// due date; an overdue training can still be started and completed.
type Assignment struct {
	shared.BaseAggregateRoot
	TrainingID  uuid.UUID
	EmployeeID  uuid.UUID
	DueDate     time.Time
	Status      AssignmentStatus
	Score       *int // Completion score 0..100, optional
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// NewAssignment assigns a training to an employee
func NewAssignment(trainingID, employeeID uuid.UUID, dueDate time.Time) (*Assignment, error) {
	if trainingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRAINING_ID", "Training ID cannot be empty")
	}
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee ID cannot be empty")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	assignment := &Assignment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TrainingID:        trainingID,
		EmployeeID:        employeeID,
		DueDate:           dueDate,
		Status:            AssignmentStatusAssigned,
	}

	assignment.AddDomainEvent(NewTrainingAssignedEvent(assignment))

	return assignment, nil
}

// Start marks the training as started by the employee
func (a *Assignment) Start() error {
	if a.Status != AssignmentStatusAssigned && a.Status != AssignmentStatusOverdue {
		return shared.NewDomainError("INVALID_STATE", "Training has already been started or completed")
	}

	now := time.Now()
	if a.Status == AssignmentStatusAssigned {
		a.Status = AssignmentStatusInProgress
	}
	a.StartedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	return nil
}

// Complete marks the training as completed with an optional score
func (a *Assignment) Complete(score *int) error {
	if a.Status == AssignmentStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Training is already completed")
	}
	if score != nil && (*score < 0 || *score > 100) {
		return shared.NewDomainError("INVALID_SCORE", "Score must be between 0 and 100")
	}

	now := time.Now()
	a.Status = AssignmentStatusCompleted
	a.Score = score
	if a.StartedAt == nil {
		a.StartedAt = &now
	}
	a.CompletedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewTrainingCompletedEvent(a))

	return nil
}

// MarkOverdue flags an unfinished assignment past its due date.
// Called by the scheduler sweep; completed assignments are never flagged.
func (a *Assignment) MarkOverdue(now time.Time) error {
	if a.Status == AssignmentStatusCompleted || a.Status == AssignmentStatusOverdue {
		return shared.NewDomainError("INVALID_STATE", "Assignment is not eligible for overdue marking")
	}
	if !now.After(a.DueDate) {
		return shared.NewDomainError("NOT_OVERDUE", "Due date has not passed")
	}

	a.Status = AssignmentStatusOverdue
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewTrainingOverdueEvent(a))

	return nil
}

// IsCompleted returns true if the training was completed
func (a *Assignment) IsCompleted() bool {
	return a.Status == AssignmentStatusCompleted
}

// IsOpen returns true while completion is still expected
func (a *Assignment) IsOpen() bool {
	return a.Status != AssignmentStatusCompleted
}
