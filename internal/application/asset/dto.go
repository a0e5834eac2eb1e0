package asset

import (
	"time"

	"github.com/google/uuid"

	"github.com/hris/backend/internal/domain/asset"
)

// CreateBatchRequest represents a request to create an asset batch
type CreateBatchRequest struct {
	Name            string     `json:"name" binding:"required,min=1,max=200"`
	Category        string     `json:"category" binding:"required"`
	SerialPrefix    string     `json:"serial_prefix" binding:"max=50"`
	Description     string     `json:"description" binding:"max=2000"`
	InitialQuantity int        `json:"initial_quantity" binding:"required,min=1"`
	UnitCostCents   int64      `json:"unit_cost_cents" binding:"min=0"`
	PurchasedAt     *time.Time `json:"purchased_at"`
}

// UpdateBatchRequest represents a request to update batch details
type UpdateBatchRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	SerialPrefix  string `json:"serial_prefix" binding:"max=50"`
	Description   string `json:"description" binding:"max=2000"`
	UnitCostCents int64  `json:"unit_cost_cents" binding:"min=0"`
}

// QuantityRequest carries a unit count for restock / write-off / restore
type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a checkout of batch units to an employee
type CheckoutRequest struct {
	BatchID    uuid.UUID `json:"batch_id" binding:"required"`
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
	Note       string    `json:"note" binding:"max=500"`
}

// DisputeRequest carries the employee's dispute comment
type DisputeRequest struct {
	Comment string `json:"comment" binding:"required,min=1,max=500"`
}

// CheckinRequest represents a return of checked-out units
type CheckinRequest struct {
	Condition string `json:"condition" binding:"required,oneof=SERVICEABLE DAMAGED"`
}

// BatchListFilter represents filter options for batch queries
type BatchListFilter struct {
	Keyword  string `form:"keyword"`
	Category string `form:"category"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AssignmentListFilter represents filter options for assignment queries
type AssignmentListFilter struct {
	BatchID    *uuid.UUID `form:"batch_id"`
	EmployeeID *uuid.UUID `form:"employee_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=ASSIGNED IN_USE NEEDS_CLARIFICATION RETURNED"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BatchResponse represents an asset batch in API responses
type BatchResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Category           string     `json:"category"`
	SerialPrefix       string     `json:"serial_prefix,omitempty"`
	Description        string     `json:"description,omitempty"`
	InitialQuantity    int        `json:"initial_quantity"`
	AvailableQuantity  int        `json:"available_quantity"`
	AssignedQuantity   int        `json:"assigned_quantity"`
	OutOfStockQuantity int        `json:"out_of_stock_quantity"`
	UnitCostCents      int64      `json:"unit_cost_cents"`
	PurchasedAt        *time.Time `json:"purchased_at,omitempty"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Version            int        `json:"version"`
}

// AssignmentResponse represents an assignment in API responses
type AssignmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	BatchID         uuid.UUID  `json:"batch_id"`
	EmployeeID      uuid.UUID  `json:"employee_id"`
	Quantity        int        `json:"quantity"`
	Status          string     `json:"status"`
	Note            string     `json:"note,omitempty"`
	DisputeComment  string     `json:"dispute_comment,omitempty"`
	ReturnCondition string     `json:"return_condition,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	ReturnedAt      *time.Time `json:"returned_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToBatchResponse converts a domain AssetBatch to BatchResponse
func ToBatchResponse(b *asset.AssetBatch) BatchResponse {
	return BatchResponse{
		ID:                 b.ID,
		Name:               b.Name,
		Category:           string(b.Category),
		SerialPrefix:       b.SerialPrefix,
		Description:        b.Description,
		InitialQuantity:    b.InitialQuantity,
		AvailableQuantity:  b.AvailableQuantity,
		AssignedQuantity:   b.AssignedQuantity,
		OutOfStockQuantity: b.OutOfStockQuantity,
		UnitCostCents:      b.UnitCostCents,
		PurchasedAt:        b.PurchasedAt,
		IsActive:           b.IsActive,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		Version:            b.Version,
	}
}

// ToAssignmentResponse converts a domain AssetAssignment to AssignmentResponse
func ToAssignmentResponse(a *asset.AssetAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:              a.ID,
		BatchID:         a.BatchID,
		EmployeeID:      a.EmployeeID,
		Quantity:        a.Quantity,
		Status:          string(a.Status),
		Note:            a.Note,
		DisputeComment:  a.DisputeComment,
		ReturnCondition: string(a.ReturnCondition),
		AcceptedAt:      a.AcceptedAt,
		ReturnedAt:      a.ReturnedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
