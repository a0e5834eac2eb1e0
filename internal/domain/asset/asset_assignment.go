package asset

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// AssignmentStatus represents the lifecycle of an asset checkout
type AssignmentStatus string

const (
	AssignmentStatusAssigned           AssignmentStatus = "ASSIGNED"            // Checked out, awaiting employee acceptance
	AssignmentStatusInUse              AssignmentStatus = "IN_USE"              // Employee accepted the assets
	AssignmentStatusNeedsClarification AssignmentStatus = "NEEDS_CLARIFICATION" // Employee disputed the checkout
	AssignmentStatusReturned           AssignmentStatus = "RETURNED"            // Assets checked back in
)

// ReturnCondition describes the state of returned units
type ReturnCondition string

const (
	ReturnConditionServiceable ReturnCondition = "SERVICEABLE"
	ReturnConditionDamaged     ReturnCondition = "DAMAGED"
)

// AssetAssignment represents a quantity of a batch checked out to an employee.
// It is an aggregate root; batch counter updates happen in the same
// transaction at the service layer.
type AssetAssignment struct {
	shared.BaseAggregateRoot
	BatchID         uuid.UUID
	EmployeeID      uuid.UUID
	Quantity        int
	Status          AssignmentStatus
	Note            string // Checkout note from the assets staff
	DisputeComment  string // Employee's comment when disputing
	ReturnCondition ReturnCondition
	AcceptedAt      *time.Time
	ReturnedAt      *time.Time
}

// NewAssetAssignment creates a checkout of quantity units to an employee
func NewAssetAssignment(batchID, employeeID uuid.UUID, quantity int, note string) (*AssetAssignment, error) {
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH_ID", "Batch ID cannot be empty")
	}
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_ID", "Employee ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	assignment := &AssetAssignment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BatchID:           batchID,
		EmployeeID:        employeeID,
		Quantity:          quantity,
		Status:            AssignmentStatusAssigned,
		Note:              strings.TrimSpace(note),
	}

	assignment.AddDomainEvent(NewAssetAssignedEvent(assignment))

	return assignment, nil
}

// Accept marks the assignment as accepted by the employee
func (a *AssetAssignment) Accept() error {
	if a.Status != AssignmentStatusAssigned && a.Status != AssignmentStatusNeedsClarification {
		return shared.NewDomainError("INVALID_STATE", "Only pending assignments can be accepted")
	}

	oldStatus := a.Status
	now := time.Now()
	a.Status = AssignmentStatusInUse
	a.AcceptedAt = &now
	a.DisputeComment = ""
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAssetAssignmentStatusChangedEvent(a, oldStatus, AssignmentStatusInUse))

	return nil
}

// Dispute marks the assignment as disputed by the employee
func (a *AssetAssignment) Dispute(comment string) error {
	if a.Status != AssignmentStatusAssigned {
		return shared.NewDomainError("INVALID_STATE", "Only newly assigned checkouts can be disputed")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return shared.NewDomainError("INVALID_COMMENT", "Dispute comment cannot be empty")
	}

	a.Status = AssignmentStatusNeedsClarification
	a.DisputeComment = comment
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAssetAssignmentStatusChangedEvent(a, AssignmentStatusAssigned, AssignmentStatusNeedsClarification))

	return nil
}

// Return checks the assignment back in with a condition
func (a *AssetAssignment) Return(condition ReturnCondition) error {
	if a.Status == AssignmentStatusReturned {
		return shared.NewDomainError("INVALID_STATE", "Assignment has already been returned")
	}
	if condition != ReturnConditionServiceable && condition != ReturnConditionDamaged {
		return shared.NewDomainError("INVALID_CONDITION", "Unknown return condition")
	}

	oldStatus := a.Status
	now := time.Now()
	a.Status = AssignmentStatusReturned
	a.ReturnCondition = condition
	a.ReturnedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAssetAssignmentStatusChangedEvent(a, oldStatus, AssignmentStatusReturned))

	return nil
}

// IsOpen returns true while the units are out with the employee
func (a *AssetAssignment) IsOpen() bool {
	return a.Status != AssignmentStatusReturned
}

// IsDamagedReturn returns true if the assignment was returned damaged
func (a *AssetAssignment) IsDamagedReturn() bool {
	return a.Status == AssignmentStatusReturned && a.ReturnCondition == ReturnConditionDamaged
}
