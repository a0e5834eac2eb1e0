package asset

import (
	"strings"
	"time"

	"github.com/hris/backend/internal/domain/shared"
)

// AssetCategory represents the category of assets in a batch
type AssetCategory string

const (
	AssetCategoryLaptop    AssetCategory = "LAPTOP"
	AssetCategoryMonitor   AssetCategory = "MONITOR"
	AssetCategoryPhone     AssetCategory = "PHONE"
	AssetCategoryFurniture AssetCategory = "FURNITURE"
	AssetCategoryAccessory AssetCategory = "ACCESSORY"
	AssetCategoryVehicle   AssetCategory = "VEHICLE"
	AssetCategoryOther     AssetCategory = "OTHER"
)

// ValidAssetCategories lists all known categories
var ValidAssetCategories = []AssetCategory{
	AssetCategoryLaptop,
	AssetCategoryMonitor,
	AssetCategoryPhone,
	AssetCategoryFurniture,
	AssetCategoryAccessory,
	AssetCategoryVehicle,
	AssetCategoryOther,
}

// IsValid returns true for known categories
func (c AssetCategory) IsValid() bool {
	for _, v := range ValidAssetCategories {
		if c == v {
			return true
		}
	}
	return false
}

// AssetBatch represents a batch of identical assets tracked by quantity.
// It is the aggregate root for asset stock operations.
//
// Counter invariant, preserved by every mutator:
//
//	InitialQuantity = AvailableQuantity + AssignedQuantity + OutOfStockQuantity
type AssetBatch struct {
	shared.BaseAggregateRoot
	Name               string
	Category           AssetCategory
	SerialPrefix       string // Prefix for per-unit serial numbers, e.g. "LT-2025"
	Description        string
	InitialQuantity    int
	AvailableQuantity  int
	AssignedQuantity   int
	OutOfStockQuantity int
	UnitCostCents      int64 // Acquisition cost per unit, minor units
	PurchasedAt        *time.Time
	IsActive           bool
}

// NewAssetBatch creates a new asset batch with the full quantity available
func NewAssetBatch(name string, category AssetCategory, initialQuantity int) (*AssetBatch, error) {
	if err := validateBatchName(name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_ASSET_CATEGORY", "Unknown asset category")
	}
	if initialQuantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity must be positive")
	}

	batch := &AssetBatch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Category:          category,
		InitialQuantity:   initialQuantity,
		AvailableQuantity: initialQuantity,
		IsActive:          true,
	}

	batch.AddDomainEvent(NewAssetBatchCreatedEvent(batch))

	return batch, nil
}

// AssignQuantity moves quantity from available to assigned
func (b *AssetBatch) AssignQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > b.AvailableQuantity {
		return shared.NewDomainError("INSUFFICIENT_AVAILABLE", "Not enough available units in the batch")
	}

	b.AvailableQuantity -= quantity
	b.AssignedQuantity += quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewAssetBatchQuantityChangedEvent(b, "assign", quantity))

	return nil
}

// ReturnQuantity moves quantity from assigned back to available.
// Damaged units go to out-of-stock instead of available.
func (b *AssetBatch) ReturnQuantity(quantity int, damaged bool) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > b.AssignedQuantity {
		return shared.NewDomainError("INVALID_RETURN", "Cannot return more units than are assigned")
	}

	b.AssignedQuantity -= quantity
	if damaged {
		b.OutOfStockQuantity += quantity
	} else {
		b.AvailableQuantity += quantity
	}
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewAssetBatchQuantityChangedEvent(b, "return", quantity))

	return nil
}

// MarkOutOfStock moves available quantity to out-of-stock
// (lost, written off, or found defective in storage)
func (b *AssetBatch) MarkOutOfStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > b.AvailableQuantity {
		return shared.NewDomainError("INSUFFICIENT_AVAILABLE", "Not enough available units in the batch")
	}

	b.AvailableQuantity -= quantity
	b.OutOfStockQuantity += quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewAssetBatchQuantityChangedEvent(b, "mark_out_of_stock", quantity))

	return nil
}

// RestoreFromOutOfStock moves out-of-stock quantity back to available
// (repaired units returning to circulation)
func (b *AssetBatch) RestoreFromOutOfStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > b.OutOfStockQuantity {
		return shared.NewDomainError("INVALID_RESTORE", "Cannot restore more units than are out of stock")
	}

	b.OutOfStockQuantity -= quantity
	b.AvailableQuantity += quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewAssetBatchQuantityChangedEvent(b, "restore", quantity))

	return nil
}

// Restock raises the initial quantity, adding new units as available
func (b *AssetBatch) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	b.InitialQuantity += quantity
	b.AvailableQuantity += quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewAssetBatchQuantityChangedEvent(b, "restock", quantity))

	return nil
}

// CheckConsistency verifies the counter invariant.
// A violation indicates corrupted state and should never occur through
// the aggregate's own mutators.
func (b *AssetBatch) CheckConsistency() error {
	if b.AvailableQuantity < 0 || b.AssignedQuantity < 0 || b.OutOfStockQuantity < 0 {
		return shared.NewDomainError("COUNTER_CORRUPTION", "Asset batch counters cannot be negative")
	}
	if b.InitialQuantity != b.AvailableQuantity+b.AssignedQuantity+b.OutOfStockQuantity {
		return shared.NewDomainError("COUNTER_CORRUPTION", "Asset batch counters do not sum to initial quantity")
	}
	return nil
}

// HasActiveAssignments returns true if any units are currently assigned
func (b *AssetBatch) HasActiveAssignments() bool {
	return b.AssignedQuantity > 0
}

// IsLowStock returns true if available quantity is at or below the threshold
func (b *AssetBatch) IsLowStock(threshold int) bool {
	return b.AvailableQuantity <= threshold
}

// SetDetails updates the descriptive fields of the batch
func (b *AssetBatch) SetDetails(name, serialPrefix, description string) error {
	if err := validateBatchName(name); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.SerialPrefix = strings.TrimSpace(serialPrefix)
	b.Description = description
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetUnitCost sets the per-unit acquisition cost in minor units
func (b *AssetBatch) SetUnitCost(costCents int64) error {
	if costCents < 0 {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	b.UnitCostCents = costCents
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Deactivate retires the batch from new checkouts
func (b *AssetBatch) Deactivate() error {
	if !b.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Asset batch is already inactive")
	}
	if b.HasActiveAssignments() {
		return shared.NewDomainError("BATCH_HAS_ASSIGNMENTS", "Cannot deactivate a batch with assigned units")
	}

	b.IsActive = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Activate returns the batch to active status
func (b *AssetBatch) Activate() error {
	if b.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Asset batch is already active")
	}

	b.IsActive = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

func validateBatchName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_BATCH_NAME", "Batch name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_BATCH_NAME", "Batch name cannot exceed 200 characters")
	}
	return nil
}
