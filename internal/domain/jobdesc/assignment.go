package jobdesc

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// ApprovalStatus represents the approval state of a JD assignment
type ApprovalStatus string

const (
	ApprovalStatusDraft              ApprovalStatus = "DRAFT"
	ApprovalStatusPendingLineManager ApprovalStatus = "PENDING_LINE_MANAGER"
	ApprovalStatusPendingEmployee    ApprovalStatus = "PENDING_EMPLOYEE"
	ApprovalStatusApproved           ApprovalStatus = "APPROVED"
	ApprovalStatusRejected           ApprovalStatus = "REJECTED"
	ApprovalStatusRevisionRequired   ApprovalStatus = "REVISION_REQUIRED"
)

// TransitionRecord captures one step in the approval history
type TransitionRecord struct {
	From       ApprovalStatus
	To         ApprovalStatus
	ActorID    uuid.UUID
	Comment    string
	OccurredAt time.Time
}

// Assignment links a job description to an employee (or a vacancy)
// and drives the approval workflow:
//
//	DRAFT → PENDING_LINE_MANAGER → PENDING_EMPLOYEE → APPROVED
//
// REJECTED is terminal; REVISION_REQUIRED returns the assignment to the
// author, who resubmits from DRAFT. Vacancy assignments (no employee)
// skip the employee stage and are approved by the line manager alone.
type Assignment struct {
	shared.BaseAggregateRoot
	JobDescriptionID uuid.UUID
	EmployeeID       *uuid.UUID // nil for vacancy assignments
	LineManagerID    uuid.UUID  // Approver for the first stage
	Status           ApprovalStatus
	ManagerComment   string
	EmployeeComment  string
	SubmittedAt      *time.Time
	ApprovedAt       *time.Time
	History          []TransitionRecord
}

// NewAssignment creates a draft assignment of a JD to an employee
func NewAssignment(jobDescriptionID uuid.UUID, employeeID *uuid.UUID, lineManagerID uuid.UUID) (*Assignment, error) {
	if jobDescriptionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JD_ID", "Job description ID cannot be empty")
	}
	if lineManagerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MANAGER_ID", "Line manager ID cannot be empty")
	}
	if employeeID != nil && *employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee ID cannot be empty")
	}
	if employeeID != nil && *employeeID == lineManagerID {
		return nil, shared.NewDomainError("INVALID_MANAGER_ID", "Employee cannot approve their own assignment as line manager")
	}

	assignment := &Assignment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		JobDescriptionID:  jobDescriptionID,
		EmployeeID:        employeeID,
		LineManagerID:     lineManagerID,
		Status:            ApprovalStatusDraft,
		History:           make([]TransitionRecord, 0),
	}

	assignment.AddDomainEvent(NewAssignmentCreatedEvent(assignment))

	return assignment, nil
}

// IsVacancy returns true if the assignment targets an open position
func (a *Assignment) IsVacancy() bool {
	return a.EmployeeID == nil
}

// Submit moves a draft (or revision-required) assignment into the
// line manager's approval queue
func (a *Assignment) Submit(actorID uuid.UUID) error {
	if a.Status != ApprovalStatusDraft && a.Status != ApprovalStatusRevisionRequired {
		return shared.NewDomainError("INVALID_STATE", "Only draft assignments can be submitted")
	}

	now := time.Now()
	a.transition(ApprovalStatusPendingLineManager, actorID, "", now)
	a.SubmittedAt = &now

	a.AddDomainEvent(NewAssignmentSubmittedEvent(a))

	return nil
}

// ApproveAsManager records the line manager's approval.
// Vacancy assignments are fully approved at this stage; assignments to
// an employee move on to the employee's acknowledgment.
func (a *Assignment) ApproveAsManager(actorID uuid.UUID, comment string) error {
	if a.Status != ApprovalStatusPendingLineManager {
		return shared.NewDomainError("INVALID_STATE", "Assignment is not awaiting line manager approval")
	}
	if actorID != a.LineManagerID {
		return shared.NewDomainError("NOT_AUTHORIZED_ACTOR", "Only the line manager of record may approve this stage")
	}

	now := time.Now()
	a.ManagerComment = strings.TrimSpace(comment)

	if a.IsVacancy() {
		a.transition(ApprovalStatusApproved, actorID, comment, now)
		a.ApprovedAt = &now
		a.AddDomainEvent(NewAssignmentApprovedEvent(a))
		return nil
	}

	a.transition(ApprovalStatusPendingEmployee, actorID, comment, now)

	return nil
}

// ApproveAsEmployee records the employee's acknowledgment, completing approval
func (a *Assignment) ApproveAsEmployee(actorID uuid.UUID, comment string) error {
	if a.Status != ApprovalStatusPendingEmployee {
		return shared.NewDomainError("INVALID_STATE", "Assignment is not awaiting employee approval")
	}
	if a.EmployeeID == nil || actorID != *a.EmployeeID {
		return shared.NewDomainError("NOT_AUTHORIZED_ACTOR", "Only the assigned employee may approve this stage")
	}

	now := time.Now()
	a.EmployeeComment = strings.TrimSpace(comment)
	a.transition(ApprovalStatusApproved, actorID, comment, now)
	a.ApprovedAt = &now

	a.AddDomainEvent(NewAssignmentApprovedEvent(a))

	return nil
}

// Reject terminally rejects the assignment. Allowed for the actor whose
// stage is pending.
func (a *Assignment) Reject(actorID uuid.UUID, comment string) error {
	if err := a.checkPendingActor(actorID); err != nil {
		return err
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return shared.NewDomainError("INVALID_COMMENT", "Rejection comment cannot be empty")
	}

	a.transition(ApprovalStatusRejected, actorID, comment, time.Now())

	a.AddDomainEvent(NewAssignmentRejectedEvent(a, comment))

	return nil
}

// RequestRevision sends the assignment back to its author for changes.
// Allowed for the actor whose stage is pending.
func (a *Assignment) RequestRevision(actorID uuid.UUID, comment string) error {
	if err := a.checkPendingActor(actorID); err != nil {
		return err
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return shared.NewDomainError("INVALID_COMMENT", "Revision comment cannot be empty")
	}

	a.transition(ApprovalStatusRevisionRequired, actorID, comment, time.Now())

	a.AddDomainEvent(NewAssignmentRevisionRequestedEvent(a, comment))

	return nil
}

// IsFinal returns true when no further transitions are possible
func (a *Assignment) IsFinal() bool {
	return a.Status == ApprovalStatusApproved || a.Status == ApprovalStatusRejected
}

// IsPendingFor returns true if the assignment awaits an action from the actor
func (a *Assignment) IsPendingFor(actorID uuid.UUID) bool {
	switch a.Status {
	case ApprovalStatusPendingLineManager:
		return actorID == a.LineManagerID
	case ApprovalStatusPendingEmployee:
		return a.EmployeeID != nil && actorID == *a.EmployeeID
	default:
		return false
	}
}

func (a *Assignment) checkPendingActor(actorID uuid.UUID) error {
	switch a.Status {
	case ApprovalStatusPendingLineManager:
		if actorID != a.LineManagerID {
			return shared.NewDomainError("NOT_AUTHORIZED_ACTOR", "Only the line manager of record may act on this stage")
		}
	case ApprovalStatusPendingEmployee:
		if a.EmployeeID == nil || actorID != *a.EmployeeID {
			return shared.NewDomainError("NOT_AUTHORIZED_ACTOR", "Only the assigned employee may act on this stage")
		}
	default:
		return shared.NewDomainError("INVALID_STATE", "Assignment is not awaiting approval")
	}
	return nil
}

func (a *Assignment) transition(to ApprovalStatus, actorID uuid.UUID, comment string, at time.Time) {
	a.History = append(a.History, TransitionRecord{
		From:       a.Status,
		To:         to,
		ActorID:    actorID,
		Comment:    strings.TrimSpace(comment),
		OccurredAt: at,
	})
	a.Status = to
	a.UpdatedAt = at
	a.IncrementVersion()
}
