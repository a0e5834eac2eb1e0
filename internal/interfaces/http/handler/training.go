package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/training"
	"github.com/hris/backend/internal/infrastructure/telemetry"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// TrainingHandler handles training catalog, assignment and material requests
type TrainingHandler struct {
	BaseHandler
	trainingService *training.TrainingService
	materialService *training.MaterialService
	metrics         *telemetry.BusinessMetrics
}

// NewTrainingHandler creates a new training handler. metrics may be nil
// when telemetry is disabled.
func NewTrainingHandler(trainingService *training.TrainingService, materialService *training.MaterialService, metrics *telemetry.BusinessMetrics) *TrainingHandler {
	return &TrainingHandler{
		trainingService: trainingService,
		materialService: materialService,
		metrics:         metrics,
	}
}

// RegisterRoutes registers training routes
func (h *TrainingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	trainings := rg.Group("/trainings", middleware.RequireResource("training"))
	{
		trainings.POST("", h.Create)
		trainings.GET("", h.List)
		trainings.GET("/:id", h.Get)
		trainings.PUT("/:id", h.Update)
		trainings.DELETE("/:id", middleware.RequirePermission("training:delete"), h.Delete)
		trainings.POST("/:id/activate", middleware.RequirePermission("training:update"), h.Activate)
		trainings.POST("/:id/deactivate", middleware.RequirePermission("training:update"), h.Deactivate)
		trainings.GET("/:id/report", h.CompletionReport)

		trainings.POST("/:id/materials/initiate", middleware.RequirePermission("training:update"), h.InitiateMaterialUpload)
		trainings.POST("/:id/materials/confirm", middleware.RequirePermission("training:update"), h.ConfirmMaterialUpload)
		trainings.GET("/:id/materials/:materialId/download", h.DownloadMaterial)
		trainings.DELETE("/:id/materials/:materialId", middleware.RequirePermission("training:update"), h.DeleteMaterial)
	}

	assignments := rg.Group("/trainings/assignments")
	{
		assignments.POST("", middleware.RequirePermission("training:assign"), h.Assign)
		assignments.GET("", middleware.RequirePermission("training:read"), h.ListAssignments)
		assignments.GET("/:id", middleware.RequirePermission("training:read"), h.GetAssignment)
		// only the assignee may start their own training
		assignments.POST("/:id/start", h.Start)
		assignments.POST("/:id/complete", middleware.RequirePermission("training:complete"), h.Complete)
	}

	rg.GET("/employees/:id/trainings", middleware.RequirePermission("training:read"), h.EmployeeTrainings)
	rg.GET("/departments/:id/training-report", middleware.RequirePermission("training:read"), h.DepartmentReport)
}

// Create creates a new training in the catalog
func (h *TrainingHandler) Create(c *gin.Context) {
	var req training.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.trainingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a paginated list of trainings
func (h *TrainingHandler) List(c *gin.Context) {
	var filter training.TrainingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.trainingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a training with its materials
func (h *TrainingHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.trainingService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update updates a training's details
func (h *TrainingHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req training.UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.trainingService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a training with no assignments
func (h *TrainingHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.trainingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate makes a training assignable
func (h *TrainingHandler) Activate(c *gin.Context) {
	h.mutateTraining(c, h.trainingService.Activate)
}

// Deactivate retires a training from the catalog
func (h *TrainingHandler) Deactivate(c *gin.Context) {
	h.mutateTraining(c, h.trainingService.Deactivate)
}

// CompletionReport returns per-status assignment counts for a training
func (h *TrainingHandler) CompletionReport(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	report, err := h.trainingService.CompletionReport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// DepartmentReport returns completion counts across a department's employees
func (h *TrainingHandler) DepartmentReport(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	report, err := h.trainingService.DepartmentCompletionReport(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Assign assigns a training to one or more employees
func (h *TrainingHandler) Assign(c *gin.Context) {
	var req training.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.trainingService.Assign(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListAssignments returns a paginated list of training assignments
func (h *TrainingHandler) ListAssignments(c *gin.Context) {
	var filter training.AssignmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.trainingService.ListAssignments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetAssignment returns a single training assignment
func (h *TrainingHandler) GetAssignment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.trainingService.GetAssignment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Start marks the assignee's training as in progress
func (h *TrainingHandler) Start(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	actorID, err := getActorEmployeeID(c)
	if err != nil {
		h.Forbidden(c, err.Error())
		return
	}

	result, err := h.trainingService.Start(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Complete records a training completion with an optional score
func (h *TrainingHandler) Complete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req training.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.trainingService.Complete(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTrainingCompletion(c.Request.Context())
	}
	h.Success(c, result)
}

// EmployeeTrainings returns all training assignments of an employee
func (h *TrainingHandler) EmployeeTrainings(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	assignments, err := h.trainingService.EmployeeTrainings(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignments)
}

// InitiateMaterialUpload returns a presigned URL for uploading a material
func (h *TrainingHandler) InitiateMaterialUpload(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req training.InitiateMaterialUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.materialService.InitiateUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ConfirmMaterialUpload attaches an uploaded material to the training
func (h *TrainingHandler) ConfirmMaterialUpload(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req training.ConfirmMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.materialService.ConfirmUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// DownloadMaterial returns a presigned download URL for a material
func (h *TrainingHandler) DownloadMaterial(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		h.BadRequest(c, "invalid material id")
		return
	}

	result, err := h.materialService.GetDownloadURL(c.Request.Context(), id, materialID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteMaterial removes a material from the training and storage
func (h *TrainingHandler) DeleteMaterial(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	materialID, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		h.BadRequest(c, "invalid material id")
		return
	}

	if err := h.materialService.DeleteMaterial(c.Request.Context(), id, materialID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *TrainingHandler) mutateTraining(c *gin.Context, fn func(context.Context, uuid.UUID) (*training.TrainingResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
