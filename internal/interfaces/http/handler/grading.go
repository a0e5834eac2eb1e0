package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/grading"
	"github.com/hris/backend/internal/infrastructure/telemetry"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// GradingHandler handles salary grading scenario HTTP requests
type GradingHandler struct {
	BaseHandler
	scenarioService *grading.ScenarioService
	metrics         *telemetry.BusinessMetrics
}

// NewGradingHandler creates a new grading handler. metrics may be nil when
// telemetry is disabled.
func NewGradingHandler(scenarioService *grading.ScenarioService, metrics *telemetry.BusinessMetrics) *GradingHandler {
	return &GradingHandler{
		scenarioService: scenarioService,
		metrics:         metrics,
	}
}

// RegisterRoutes registers grading routes
func (h *GradingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scenarios := rg.Group("/grading/scenarios", middleware.RequireResource("grading"))
	{
		scenarios.POST("", h.Create)
		scenarios.GET("", h.List)
		scenarios.GET("/current", h.GetCurrent)
		scenarios.POST("/calculate", h.Calculate)
		scenarios.GET("/:id", h.Get)
		scenarios.PUT("/:id", h.Update)
		scenarios.DELETE("/:id", middleware.RequirePermission("grading:delete"), h.Delete)

		scenarios.PUT("/:id/inputs", h.SetInput)
		scenarios.POST("/:id/save", h.Save)
		scenarios.POST("/:id/reopen", h.Reopen)
		scenarios.POST("/:id/apply", middleware.RequirePermission("grading:apply"), h.Apply)
		scenarios.GET("/:id/compare", h.Compare)
	}
}

// Create creates a new draft scenario
func (h *GradingHandler) Create(c *gin.Context) {
	var req grading.CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	scenario, err := h.scenarioService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, scenario)
}

// List returns a paginated list of scenarios
func (h *GradingHandler) List(c *gin.Context) {
	var filter grading.ScenarioListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.scenarioService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetCurrent returns the applied scenario, if any
func (h *GradingHandler) GetCurrent(c *gin.Context) {
	scenario, err := h.scenarioService.GetCurrent(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scenario)
}

// Calculate computes grade bands for ad hoc inputs without persisting
func (h *GradingHandler) Calculate(c *gin.Context) {
	var req grading.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bands, err := h.scenarioService.Calculate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bands)
}

// Get returns a scenario with its inputs and computed bands
func (h *GradingHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	scenario, err := h.scenarioService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scenario)
}

// Update updates a draft scenario's name and base value
func (h *GradingHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req grading.UpdateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	scenario, err := h.scenarioService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scenario)
}

// Delete removes a scenario that is not applied
func (h *GradingHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.scenarioService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetInput sets or replaces a position group's grading input in a draft
func (h *GradingHandler) SetInput(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req grading.GradeInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	scenario, err := h.scenarioService.SetInput(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scenario)
}

// Save freezes a draft scenario's computed bands
func (h *GradingHandler) Save(c *gin.Context) {
	h.mutateScenario(c, h.scenarioService.SaveScenario)
}

// Reopen returns a saved scenario to draft for further editing
func (h *GradingHandler) Reopen(c *gin.Context) {
	h.mutateScenario(c, h.scenarioService.Reopen)
}

// Apply makes a saved scenario the organization's grading table. Any
// previously applied scenario is archived.
func (h *GradingHandler) Apply(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	scenario, err := h.scenarioService.Apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordScenarioApply(c.Request.Context())
	}
	h.Success(c, scenario)
}

// Compare returns per-band deltas between a scenario and the applied one
func (h *GradingHandler) Compare(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	comparison, err := h.scenarioService.Compare(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comparison)
}

func (h *GradingHandler) mutateScenario(c *gin.Context, fn func(context.Context, uuid.UUID) (*grading.ScenarioResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	scenario, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scenario)
}
