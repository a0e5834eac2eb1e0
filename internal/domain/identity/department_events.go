package identity

import (
	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for department events
const (
	EventTypeDepartmentCreated     = "DepartmentCreated"
	EventTypeDepartmentUpdated     = "DepartmentUpdated"
	EventTypeDepartmentHeadChanged = "DepartmentHeadChanged"
)

// AggregateTypeDepartment is the aggregate type for department events
const AggregateTypeDepartment = "Department"

// DepartmentCreatedEvent is raised when a new department is created
type DepartmentCreatedEvent struct {
	shared.BaseDomainEvent
	Code string
	Name string
}

// NewDepartmentCreatedEvent creates a new DepartmentCreatedEvent
func NewDepartmentCreatedEvent(dept *Department) *DepartmentCreatedEvent {
	return &DepartmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDepartmentCreated, AggregateTypeDepartment, dept.ID),
		Code:            dept.Code,
		Name:            dept.Name,
	}
}

// DepartmentUpdatedEvent is raised when a department's basic information changes
type DepartmentUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string
	Name string
}

// NewDepartmentUpdatedEvent creates a new DepartmentUpdatedEvent
func NewDepartmentUpdatedEvent(dept *Department) *DepartmentUpdatedEvent {
	return &DepartmentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDepartmentUpdated, AggregateTypeDepartment, dept.ID),
		Code:            dept.Code,
		Name:            dept.Name,
	}
}

// DepartmentHeadChangedEvent is raised when a department's head changes
type DepartmentHeadChangedEvent struct {
	shared.BaseDomainEvent
	Code string
}

// NewDepartmentHeadChangedEvent creates a new DepartmentHeadChangedEvent
func NewDepartmentHeadChangedEvent(dept *Department) *DepartmentHeadChangedEvent {
	return &DepartmentHeadChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDepartmentHeadChanged, AggregateTypeDepartment, dept.ID),
		Code:            dept.Code,
	}
}
