package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/asset"
)

// AssetBatchModel is the persistence model for the AssetBatch domain entity.
type AssetBatchModel struct {
	AggregateModel
	Name               string              `gorm:"type:varchar(200);not null"`
	Category           asset.AssetCategory `gorm:"type:varchar(30);not null;index"`
	SerialPrefix       string              `gorm:"type:varchar(50)"`
	Description        string              `gorm:"type:text"`
	InitialQuantity    int                 `gorm:"not null"`
	AvailableQuantity  int                 `gorm:"not null"`
	AssignedQuantity   int                 `gorm:"not null;default:0"`
	OutOfStockQuantity int                 `gorm:"not null;default:0"`
	UnitCostCents      int64               `gorm:"not null;default:0"`
	PurchasedAt        *time.Time
	IsActive           bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AssetBatchModel) TableName() string {
	return "asset_batches"
}

// ToDomain converts the persistence model to a domain AssetBatch entity.
func (m *AssetBatchModel) ToDomain() *asset.AssetBatch {
	batch := &asset.AssetBatch{
		Name:               m.Name,
		Category:           m.Category,
		SerialPrefix:       m.SerialPrefix,
		Description:        m.Description,
		InitialQuantity:    m.InitialQuantity,
		AvailableQuantity:  m.AvailableQuantity,
		AssignedQuantity:   m.AssignedQuantity,
		OutOfStockQuantity: m.OutOfStockQuantity,
		UnitCostCents:      m.UnitCostCents,
		PurchasedAt:        m.PurchasedAt,
		IsActive:           m.IsActive,
	}
	m.PopulateAggregateRoot(&batch.BaseAggregateRoot)
	return batch
}

// FromDomain populates the persistence model from a domain AssetBatch entity.
func (m *AssetBatchModel) FromDomain(b *asset.AssetBatch) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Category = b.Category
	m.SerialPrefix = b.SerialPrefix
	m.Description = b.Description
	m.InitialQuantity = b.InitialQuantity
	m.AvailableQuantity = b.AvailableQuantity
	m.AssignedQuantity = b.AssignedQuantity
	m.OutOfStockQuantity = b.OutOfStockQuantity
	m.UnitCostCents = b.UnitCostCents
	m.PurchasedAt = b.PurchasedAt
	m.IsActive = b.IsActive
}

// AssetBatchModelFromDomain creates a new persistence model from a domain AssetBatch entity.
func AssetBatchModelFromDomain(b *asset.AssetBatch) *AssetBatchModel {
	m := &AssetBatchModel{}
	m.FromDomain(b)
	return m
}

// AssetAssignmentModel is the persistence model for the AssetAssignment domain entity.
type AssetAssignmentModel struct {
	AggregateModel
	BatchID         uuid.UUID              `gorm:"type:uuid;not null;index"`
	EmployeeID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	Quantity        int                    `gorm:"not null"`
	Status          asset.AssignmentStatus `gorm:"type:varchar(30);not null;index"`
	Note            string                 `gorm:"type:text"`
	DisputeComment  string                 `gorm:"type:text"`
	ReturnCondition asset.ReturnCondition  `gorm:"type:varchar(20)"`
	AcceptedAt      *time.Time
	ReturnedAt      *time.Time
}

// TableName returns the table name for GORM
func (AssetAssignmentModel) TableName() string {
	return "asset_assignments"
}

// ToDomain converts the persistence model to a domain AssetAssignment entity.
func (m *AssetAssignmentModel) ToDomain() *asset.AssetAssignment {
	assignment := &asset.AssetAssignment{
		BatchID:         m.BatchID,
		EmployeeID:      m.EmployeeID,
		Quantity:        m.Quantity,
		Status:          m.Status,
		Note:            m.Note,
		DisputeComment:  m.DisputeComment,
		ReturnCondition: m.ReturnCondition,
		AcceptedAt:      m.AcceptedAt,
		ReturnedAt:      m.ReturnedAt,
	}
	m.PopulateAggregateRoot(&assignment.BaseAggregateRoot)
	return assignment
}

// FromDomain populates the persistence model from a domain AssetAssignment entity.
func (m *AssetAssignmentModel) FromDomain(a *asset.AssetAssignment) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.BatchID = a.BatchID
	m.EmployeeID = a.EmployeeID
	m.Quantity = a.Quantity
	m.Status = a.Status
	m.Note = a.Note
	m.DisputeComment = a.DisputeComment
	m.ReturnCondition = a.ReturnCondition
	m.AcceptedAt = a.AcceptedAt
	m.ReturnedAt = a.ReturnedAt
}

// AssetAssignmentModelFromDomain creates a new persistence model from a domain AssetAssignment entity.
func AssetAssignmentModelFromDomain(a *asset.AssetAssignment) *AssetAssignmentModel {
	m := &AssetAssignmentModel{}
	m.FromDomain(a)
	return m
}
