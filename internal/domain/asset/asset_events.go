package asset

import (
	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/shared"
)

// Event type constants for asset events
const (
	EventTypeAssetBatchCreated            = "AssetBatchCreated"
	EventTypeAssetBatchQuantityChanged    = "AssetBatchQuantityChanged"
	EventTypeAssetAssigned                = "AssetAssigned"
	EventTypeAssetAssignmentStatusChanged = "AssetAssignmentStatusChanged"
)

// Aggregate types for asset events
const (
	AggregateTypeAssetBatch      = "AssetBatch"
	AggregateTypeAssetAssignment = "AssetAssignment"
)

// AssetBatchCreatedEvent is raised when a new asset batch is created
type AssetBatchCreatedEvent struct {
	shared.BaseDomainEvent
	Name            string
	Category        AssetCategory
	InitialQuantity int
}

// NewAssetBatchCreatedEvent creates a new AssetBatchCreatedEvent
func NewAssetBatchCreatedEvent(batch *AssetBatch) *AssetBatchCreatedEvent {
	return &AssetBatchCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetBatchCreated, AggregateTypeAssetBatch, batch.ID),
		Name:            batch.Name,
		Category:        batch.Category,
		InitialQuantity: batch.InitialQuantity,
	}
}

// AssetBatchQuantityChangedEvent is raised on every counter mutation
type AssetBatchQuantityChangedEvent struct {
	shared.BaseDomainEvent
	Operation  string // assign, return, mark_out_of_stock, restore, restock
	Quantity   int
	Available  int
	Assigned   int
	OutOfStock int
}

// NewAssetBatchQuantityChangedEvent creates a new AssetBatchQuantityChangedEvent
func NewAssetBatchQuantityChangedEvent(batch *AssetBatch, operation string, quantity int) *AssetBatchQuantityChangedEvent {
	return &AssetBatchQuantityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetBatchQuantityChanged, AggregateTypeAssetBatch, batch.ID),
		Operation:       operation,
		Quantity:        quantity,
		Available:       batch.AvailableQuantity,
		Assigned:        batch.AssignedQuantity,
		OutOfStock:      batch.OutOfStockQuantity,
	}
}

// AssetAssignedEvent is raised when units are checked out to an employee
type AssetAssignedEvent struct {
	shared.BaseDomainEvent
	BatchID    uuid.UUID
	EmployeeID uuid.UUID
	Quantity   int
}

// NewAssetAssignedEvent creates a new AssetAssignedEvent
func NewAssetAssignedEvent(assignment *AssetAssignment) *AssetAssignedEvent {
	return &AssetAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetAssigned, AggregateTypeAssetAssignment, assignment.ID),
		BatchID:         assignment.BatchID,
		EmployeeID:      assignment.EmployeeID,
		Quantity:        assignment.Quantity,
	}
}

// AssetAssignmentStatusChangedEvent is raised when an assignment changes status
type AssetAssignmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	BatchID    uuid.UUID
	EmployeeID uuid.UUID
	OldStatus  AssignmentStatus
	NewStatus  AssignmentStatus
}

// NewAssetAssignmentStatusChangedEvent creates a new AssetAssignmentStatusChangedEvent
func NewAssetAssignmentStatusChangedEvent(assignment *AssetAssignment, oldStatus, newStatus AssignmentStatus) *AssetAssignmentStatusChangedEvent {
	return &AssetAssignmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetAssignmentStatusChanged, AggregateTypeAssetAssignment, assignment.ID),
		BatchID:         assignment.BatchID,
		EmployeeID:      assignment.EmployeeID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
