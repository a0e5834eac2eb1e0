package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/asset"
	"github.com/hris/backend/internal/infrastructure/telemetry"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// AssetHandler handles asset batch and assignment HTTP requests
type AssetHandler struct {
	BaseHandler
	assetService *asset.AssetService
	metrics      *telemetry.BusinessMetrics
}

// NewAssetHandler creates a new asset handler. metrics may be nil when
// telemetry is disabled.
func NewAssetHandler(assetService *asset.AssetService, metrics *telemetry.BusinessMetrics) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
		metrics:      metrics,
	}
}

// RegisterRoutes registers asset routes
func (h *AssetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	batches := rg.Group("/assets/batches", middleware.RequireResource("asset"))
	{
		batches.POST("", h.CreateBatch)
		batches.GET("", h.ListBatches)
		batches.GET("/low-stock", h.ListLowStock)
		batches.GET("/:id", h.GetBatch)
		batches.PUT("/:id", h.UpdateBatch)
		batches.DELETE("/:id", middleware.RequirePermission("asset:delete"), h.DeleteBatch)

		batches.POST("/:id/restock", middleware.RequirePermission("asset:stock"), h.Restock)
		batches.POST("/:id/out-of-stock", middleware.RequirePermission("asset:stock"), h.MarkOutOfStock)
		batches.POST("/:id/restore", middleware.RequirePermission("asset:stock"), h.RestoreFromOutOfStock)
		batches.POST("/:id/activate", middleware.RequirePermission("asset:update"), h.ActivateBatch)
		batches.POST("/:id/deactivate", middleware.RequirePermission("asset:update"), h.DeactivateBatch)
	}

	assignments := rg.Group("/assets/assignments")
	{
		assignments.POST("", middleware.RequirePermission("asset:checkout"), h.Checkout)
		assignments.GET("", middleware.RequirePermission("asset:read"), h.ListAssignments)
		assignments.GET("/:id", middleware.RequirePermission("asset:read"), h.GetAssignment)
		// Accept and dispute act on the assignee's own assignment
		assignments.POST("/:id/accept", h.Accept)
		assignments.POST("/:id/dispute", h.Dispute)
		assignments.POST("/:id/checkin", middleware.RequirePermission("asset:checkout"), h.CheckIn)
	}

	rg.GET("/employees/:id/assets", middleware.RequirePermission("asset:read"), h.EmployeeHistory)
}

// CreateBatch creates a new asset batch. All units start available.
func (h *AssetHandler) CreateBatch(c *gin.Context) {
	var req asset.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.assetService.CreateBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, batch)
}

// ListBatches returns a paginated list of asset batches
func (h *AssetHandler) ListBatches(c *gin.Context) {
	var filter asset.BatchListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assetService.ListBatches(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListLowStock returns active batches at or below the low stock threshold
func (h *AssetHandler) ListLowStock(c *gin.Context) {
	batches, err := h.assetService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batches)
}

// GetBatch returns a single asset batch with its quantity counters
func (h *AssetHandler) GetBatch(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	batch, err := h.assetService.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// UpdateBatch updates batch details. Quantity counters are only changed
// through the stock operations.
func (h *AssetHandler) UpdateBatch(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req asset.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.assetService.UpdateBatch(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// DeleteBatch removes a batch with no outstanding assignments
func (h *AssetHandler) DeleteBatch(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.assetService.DeleteBatch(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restock adds units to a batch's available and initial counters
func (h *AssetHandler) Restock(c *gin.Context) {
	h.stockOperation(c, h.assetService.Restock)
}

// MarkOutOfStock writes off available units as unusable
func (h *AssetHandler) MarkOutOfStock(c *gin.Context) {
	h.stockOperation(c, h.assetService.MarkOutOfStock)
}

// RestoreFromOutOfStock returns written-off units to the available pool
func (h *AssetHandler) RestoreFromOutOfStock(c *gin.Context) {
	h.stockOperation(c, h.assetService.RestoreFromOutOfStock)
}

// ActivateBatch reactivates a deactivated batch
func (h *AssetHandler) ActivateBatch(c *gin.Context) {
	h.mutateBatch(c, h.assetService.ActivateBatch)
}

// DeactivateBatch deactivates a batch, blocking further checkouts
func (h *AssetHandler) DeactivateBatch(c *gin.Context) {
	h.mutateBatch(c, h.assetService.DeactivateBatch)
}

// Checkout assigns units from a batch to an employee
func (h *AssetHandler) Checkout(c *gin.Context) {
	var req asset.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assignment, err := h.assetService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.recordStockMetric(c, assignment.BatchID, assignment.Quantity, false)
	h.Created(c, assignment)
}

// Accept confirms receipt of assigned units. Only the assignee may accept.
func (h *AssetHandler) Accept(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	actorID, err := getActorEmployeeID(c)
	if err != nil {
		h.Forbidden(c, err.Error())
		return
	}

	assignment, err := h.assetService.Accept(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignment)
}

// Dispute flags an assignment as needing clarification. Only the assignee
// may dispute.
func (h *AssetHandler) Dispute(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	actorID, err := getActorEmployeeID(c)
	if err != nil {
		h.Forbidden(c, err.Error())
		return
	}

	var req asset.DisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assignment, err := h.assetService.Dispute(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignment)
}

// CheckIn returns checked-out units. Serviceable units go back to the
// available pool, damaged ones to out-of-stock.
func (h *AssetHandler) CheckIn(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req asset.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assignment, err := h.assetService.CheckIn(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.recordStockMetric(c, assignment.BatchID, assignment.Quantity, true)
	h.Success(c, assignment)
}

// GetAssignment returns a single assignment
func (h *AssetHandler) GetAssignment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	assignment, err := h.assetService.GetAssignment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignment)
}

// ListAssignments returns a paginated list of assignments
func (h *AssetHandler) ListAssignments(c *gin.Context) {
	var filter asset.AssignmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assetService.ListAssignments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// EmployeeHistory returns the full assignment history of an employee
func (h *AssetHandler) EmployeeHistory(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	history, err := h.assetService.EmployeeHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

func (h *AssetHandler) stockOperation(c *gin.Context, fn func(context.Context, uuid.UUID, asset.QuantityRequest) (*asset.BatchResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req asset.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := fn(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

func (h *AssetHandler) mutateBatch(c *gin.Context, fn func(context.Context, uuid.UUID) (*asset.BatchResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	batch, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// recordStockMetric records checkout/return counters. The batch lookup is
// only done when metrics are enabled.
func (h *AssetHandler) recordStockMetric(c *gin.Context, batchID uuid.UUID, quantity int, isReturn bool) {
	if h.metrics == nil {
		return
	}
	batch, err := h.assetService.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		return
	}
	if isReturn {
		h.metrics.RecordAssetReturn(c.Request.Context(), batch.Category, quantity)
		return
	}
	h.metrics.RecordAssetCheckout(c.Request.Context(), batch.Category, quantity)
}
