package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/assessment"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// AssessmentHandler handles self-assessment HTTP requests
type AssessmentHandler struct {
	BaseHandler
	assessmentService *assessment.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentService *assessment.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// RegisterRoutes registers assessment routes
func (h *AssessmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assessments := rg.Group("/assessments")
	{
		assessments.POST("", middleware.RequirePermission("assessment:create"), h.Create)
		assessments.GET("", middleware.RequirePermission("assessment:read"), h.List)
		assessments.GET("/pending-review", h.PendingForReviewer)
		assessments.GET("/:id", middleware.RequirePermission("assessment:read"), h.Get)
		assessments.DELETE("/:id", middleware.RequirePermission("assessment:delete"), h.Delete)

		// rating and flow operations are owner or reviewer scoped and
		// enforced against the acting employee in the service
		assessments.PUT("/:id/ratings", h.SetRating)
		assessments.DELETE("/:id/ratings/:skillId", h.RemoveRating)
		assessments.PUT("/:id/comment", h.SetComment)
		assessments.POST("/:id/submit", h.Submit)
		assessments.POST("/:id/approve", h.Approve)
		assessments.POST("/:id/return", h.Return)
	}
}

// Create opens a new self-assessment for an employee and period
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req assessment.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assessmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a paginated list of assessments
func (h *AssessmentHandler) List(c *gin.Context) {
	var filter assessment.AssessmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assessmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// PendingForReviewer returns submitted assessments waiting on the current
// user's review
func (h *AssessmentHandler) PendingForReviewer(c *gin.Context) {
	actorID, err := getActorEmployeeID(c)
	if err != nil {
		h.Forbidden(c, err.Error())
		return
	}

	assessments, err := h.assessmentService.PendingForReviewer(c.Request.Context(), actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assessments)
}

// Get returns an assessment with its skill ratings
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.assessmentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a draft assessment
func (h *AssessmentHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.assessmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetRating records or updates the owner's rating for a skill
func (h *AssessmentHandler) SetRating(c *gin.Context) {
	id, actorID, ok := h.bindIDAndActor(c)
	if !ok {
		return
	}

	var req assessment.SetRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assessmentService.SetRating(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveRating removes a skill rating from a draft assessment
func (h *AssessmentHandler) RemoveRating(c *gin.Context) {
	id, actorID, ok := h.bindIDAndActor(c)
	if !ok {
		return
	}

	skillID, err := uuid.Parse(c.Param("skillId"))
	if err != nil {
		h.BadRequest(c, "invalid skill id")
		return
	}

	result, err := h.assessmentService.RemoveRating(c.Request.Context(), id, actorID, skillID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetComment sets the owner's overall comment
func (h *AssessmentHandler) SetComment(c *gin.Context) {
	id, actorID, ok := h.bindIDAndActor(c)
	if !ok {
		return
	}

	var req assessment.SetCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assessmentService.SetComment(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Submit sends the assessment to the reviewer
func (h *AssessmentHandler) Submit(c *gin.Context) {
	id, actorID, ok := h.bindIDAndActor(c)
	if !ok {
		return
	}

	result, err := h.assessmentService.Submit(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Approve finalizes the assessment as its reviewer
func (h *AssessmentHandler) Approve(c *gin.Context) {
	h.review(c, h.assessmentService.Approve)
}

// Return sends the assessment back to the owner for changes
func (h *AssessmentHandler) Return(c *gin.Context) {
	h.review(c, h.assessmentService.Return)
}

func (h *AssessmentHandler) review(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID, assessment.ReviewRequest) (*assessment.AssessmentResponse, error)) {
	id, actorID, ok := h.bindIDAndActor(c)
	if !ok {
		return
	}

	var req assessment.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := fn(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *AssessmentHandler) bindIDAndActor(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, ok := h.bindID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	actorID, err := getActorEmployeeID(c)
	if err != nil {
		h.Forbidden(c, err.Error())
		return uuid.Nil, uuid.Nil, false
	}

	return id, actorID, true
}
