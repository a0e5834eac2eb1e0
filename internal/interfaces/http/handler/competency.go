package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/competency"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// CompetencyHandler handles skill taxonomy, behavioral competency and
// position matrix HTTP requests
type CompetencyHandler struct {
	BaseHandler
	taxonomyService *competency.TaxonomyService
	matrixService   *competency.MatrixService
}

// NewCompetencyHandler creates a new competency handler
func NewCompetencyHandler(taxonomyService *competency.TaxonomyService, matrixService *competency.MatrixService) *CompetencyHandler {
	return &CompetencyHandler{
		taxonomyService: taxonomyService,
		matrixService:   matrixService,
	}
}

// RegisterRoutes registers competency routes
func (h *CompetencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	skills := rg.Group("/skill-groups", middleware.RequireResource("competency"))
	{
		skills.POST("", h.CreateSkillGroup)
		skills.GET("", h.ListSkillGroups)
		skills.GET("/:id", h.GetSkillGroup)
		skills.PUT("/:id", h.RenameSkillGroup)
		skills.POST("/:id/deactivate", h.DeactivateSkillGroup)
		skills.POST("/:id/skills", h.AddSkill)
		skills.PUT("/:id/skills/:skillId", h.UpdateSkill)
		skills.POST("/:id/skills/:skillId/deactivate", h.DeactivateSkill)
	}

	behavioral := rg.Group("/behavioral-groups", middleware.RequireResource("competency"))
	{
		behavioral.POST("", h.CreateBehavioralGroup)
		behavioral.GET("", h.ListBehavioralGroups)
		behavioral.GET("/:id", h.GetBehavioralGroup)
		behavioral.PUT("/:id", h.RenameBehavioralGroup)
		behavioral.POST("/:id/deactivate", h.DeactivateBehavioralGroup)
		behavioral.POST("/:id/competencies", h.AddCompetency)
		behavioral.POST("/:id/competencies/:competencyId/deactivate", h.DeactivateCompetency)
	}

	matrices := rg.Group("/competency-matrices", middleware.RequireResource("competency"))
	{
		matrices.GET("", h.ListMatrices)
		matrices.GET("/:group", h.GetMatrix)
		matrices.PUT("/:group/entries", middleware.RequirePermission("competency:update"), h.SetMatrixEntry)
		matrices.DELETE("/:group/entries/:skillId", middleware.RequirePermission("competency:update"), h.RemoveMatrixEntry)
	}
}

// CreateSkillGroup creates a new skill group
func (h *CompetencyHandler) CreateSkillGroup(c *gin.Context) {
	var req competency.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.taxonomyService.CreateSkillGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, group)
}

// ListSkillGroups returns a paginated list of skill groups with their skills
func (h *CompetencyHandler) ListSkillGroups(c *gin.Context) {
	var filter competency.TaxonomyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taxonomyService.ListSkillGroups(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetSkillGroup returns a single skill group
func (h *CompetencyHandler) GetSkillGroup(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	group, err := h.taxonomyService.GetSkillGroup(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// RenameSkillGroup renames a skill group
func (h *CompetencyHandler) RenameSkillGroup(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req competency.RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.taxonomyService.RenameSkillGroup(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// DeactivateSkillGroup deactivates a skill group and all its skills
func (h *CompetencyHandler) DeactivateSkillGroup(c *gin.Context) {
	h.mutateSkillGroup(c, h.taxonomyService.DeactivateSkillGroup)
}

// AddSkill adds a skill to a group
func (h *CompetencyHandler) AddSkill(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req competency.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.taxonomyService.AddSkill(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// UpdateSkill updates a skill's name and description
func (h *CompetencyHandler) UpdateSkill(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	skillID, err := uuid.Parse(c.Param("skillId"))
	if err != nil {
		h.BadRequest(c, "invalid skill id")
		return
	}

	var req competency.UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.taxonomyService.UpdateSkill(c.Request.Context(), id, skillID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// DeactivateSkill deactivates a single skill
func (h *CompetencyHandler) DeactivateSkill(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	skillID, err := uuid.Parse(c.Param("skillId"))
	if err != nil {
		h.BadRequest(c, "invalid skill id")
		return
	}

	group, err := h.taxonomyService.DeactivateSkill(c.Request.Context(), id, skillID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// CreateBehavioralGroup creates a new behavioral competency group
func (h *CompetencyHandler) CreateBehavioralGroup(c *gin.Context) {
	var req competency.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.taxonomyService.CreateBehavioralGroup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, group)
}

// ListBehavioralGroups returns a paginated list of behavioral groups
func (h *CompetencyHandler) ListBehavioralGroups(c *gin.Context) {
	var filter competency.TaxonomyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.taxonomyService.ListBehavioralGroups(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetBehavioralGroup returns a single behavioral group
func (h *CompetencyHandler) GetBehavioralGroup(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	group, err := h.taxonomyService.GetBehavioralGroup(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// RenameBehavioralGroup renames a behavioral group
func (h *CompetencyHandler) RenameBehavioralGroup(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req competency.RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.taxonomyService.RenameBehavioralGroup(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// DeactivateBehavioralGroup deactivates a behavioral group
func (h *CompetencyHandler) DeactivateBehavioralGroup(c *gin.Context) {
	h.mutateBehavioralGroup(c, h.taxonomyService.DeactivateBehavioralGroup)
}

// AddCompetency adds a behavioral competency to a group
func (h *CompetencyHandler) AddCompetency(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req competency.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	group, err := h.taxonomyService.AddCompetency(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// DeactivateCompetency deactivates a single behavioral competency
func (h *CompetencyHandler) DeactivateCompetency(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	competencyID, err := uuid.Parse(c.Param("competencyId"))
	if err != nil {
		h.BadRequest(c, "invalid competency id")
		return
	}

	group, err := h.taxonomyService.DeactivateCompetency(c.Request.Context(), id, competencyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

// ListMatrices returns all position competency matrices
func (h *CompetencyHandler) ListMatrices(c *gin.Context) {
	matrices, err := h.matrixService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, matrices)
}

// GetMatrix returns the expected skill levels for a position group
func (h *CompetencyHandler) GetMatrix(c *gin.Context) {
	matrix, err := h.matrixService.Get(c.Request.Context(), c.Param("group"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, matrix)
}

// SetMatrixEntry sets or updates the expected level for a skill in a
// position group's matrix
func (h *CompetencyHandler) SetMatrixEntry(c *gin.Context) {
	var req competency.SetMatrixEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	matrix, err := h.matrixService.SetEntry(c.Request.Context(), c.Param("group"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, matrix)
}

// RemoveMatrixEntry removes a skill from a position group's matrix
func (h *CompetencyHandler) RemoveMatrixEntry(c *gin.Context) {
	skillID, err := uuid.Parse(c.Param("skillId"))
	if err != nil {
		h.BadRequest(c, "invalid skill id")
		return
	}

	matrix, err := h.matrixService.RemoveEntry(c.Request.Context(), c.Param("group"), skillID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, matrix)
}

func (h *CompetencyHandler) mutateSkillGroup(c *gin.Context, fn func(context.Context, uuid.UUID) (*competency.SkillGroupResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	group, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}

func (h *CompetencyHandler) mutateBehavioralGroup(c *gin.Context, fn func(context.Context, uuid.UUID) (*competency.BehavioralGroupResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	group, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, group)
}
