package employee

import (
	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for employee events
const (
	EventTypeEmployeeCreated         = "EmployeeCreated"
	EventTypeEmployeeUpdated         = "EmployeeUpdated"
	EventTypeEmployeeStatusChanged   = "EmployeeStatusChanged"
	EventTypeEmployeeManagerChanged  = "EmployeeManagerChanged"
	EventTypeEmployeePositionChanged = "EmployeePositionChanged"
)

// AggregateTypeEmployee is the aggregate type for employee events
const AggregateTypeEmployee = "Employee"

// EmployeeCreatedEvent is raised when a new employee is created
type EmployeeCreatedEvent struct {
	shared.BaseDomainEvent
	Code          string
	FullName      string
	PositionGroup PositionGroup
}

// NewEmployeeCreatedEvent creates a new EmployeeCreatedEvent
func NewEmployeeCreatedEvent(emp *Employee) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeCreated, AggregateTypeEmployee, emp.ID),
		Code:            emp.Code,
		FullName:        emp.FullName(),
		PositionGroup:   emp.PositionGroup,
	}
}

// EmployeeUpdatedEvent is raised when an employee's personal data changes
type EmployeeUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string
}

// NewEmployeeUpdatedEvent creates a new EmployeeUpdatedEvent
func NewEmployeeUpdatedEvent(emp *Employee) *EmployeeUpdatedEvent {
	return &EmployeeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeUpdated, AggregateTypeEmployee, emp.ID),
		Code:            emp.Code,
	}
}

// EmployeeStatusChangedEvent is raised when an employee's status changes
type EmployeeStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code      string
	OldStatus EmployeeStatus
	NewStatus EmployeeStatus
}

// NewEmployeeStatusChangedEvent creates a new EmployeeStatusChangedEvent
func NewEmployeeStatusChangedEvent(emp *Employee, oldStatus, newStatus EmployeeStatus) *EmployeeStatusChangedEvent {
	return &EmployeeStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeStatusChanged, AggregateTypeEmployee, emp.ID),
		Code:            emp.Code,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// EmployeeManagerChangedEvent is raised when an employee's line manager changes
type EmployeeManagerChangedEvent struct {
	shared.BaseDomainEvent
	Code         string
	OldManagerID *uuid.UUID
	NewManagerID *uuid.UUID
}

// NewEmployeeManagerChangedEvent creates a new EmployeeManagerChangedEvent
func NewEmployeeManagerChangedEvent(emp *Employee, oldManagerID, newManagerID *uuid.UUID) *EmployeeManagerChangedEvent {
	return &EmployeeManagerChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeManagerChanged, AggregateTypeEmployee, emp.ID),
		Code:            emp.Code,
		OldManagerID:    oldManagerID,
		NewManagerID:    newManagerID,
	}
}

// EmployeePositionChangedEvent is raised when an employee moves between position groups
type EmployeePositionChangedEvent struct {
	shared.BaseDomainEvent
	Code     string
	OldGroup PositionGroup
	NewGroup PositionGroup
}

// NewEmployeePositionChangedEvent creates a new EmployeePositionChangedEvent
func NewEmployeePositionChangedEvent(emp *Employee, oldGroup, newGroup PositionGroup) *EmployeePositionChangedEvent {
	return &EmployeePositionChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeePositionChanged, AggregateTypeEmployee, emp.ID),
		Code:            emp.Code,
		OldGroup:        oldGroup,
		NewGroup:        newGroup,
	}
}
