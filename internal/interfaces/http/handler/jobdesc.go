package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/jobdesc"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// JobDescriptionHandler handles job description and assignment approval requests
type JobDescriptionHandler struct {
	BaseHandler
	jobDescService    *jobdesc.JobDescriptionService
	assignmentService *jobdesc.AssignmentService
}

// NewJobDescriptionHandler creates a new job description handler
func NewJobDescriptionHandler(jobDescService *jobdesc.JobDescriptionService, assignmentService *jobdesc.AssignmentService) *JobDescriptionHandler {
	return &JobDescriptionHandler{
		jobDescService:    jobDescService,
		assignmentService: assignmentService,
	}
}

// RegisterRoutes registers job description routes
func (h *JobDescriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jds := rg.Group("/job-descriptions", middleware.RequireResource("jobdesc"))
	{
		jds.POST("", h.Create)
		jds.GET("", h.List)
		jds.GET("/:id", h.Get)
		jds.PUT("/:id", h.Update)
		jds.DELETE("/:id", middleware.RequirePermission("jobdesc:delete"), h.Delete)

		jds.POST("/:id/sections", h.AddDutySection)
		jds.DELETE("/:id/sections/:sectionId", h.RemoveDutySection)
		jds.PUT("/:id/skills", h.SetRequiredSkill)
		jds.DELETE("/:id/skills/:skillId", h.RemoveRequiredSkill)
		jds.POST("/:id/activate", middleware.RequirePermission("jobdesc:update"), h.Activate)
		jds.POST("/:id/deactivate", middleware.RequirePermission("jobdesc:update"), h.Deactivate)
	}

	assignments := rg.Group("/job-descriptions/assignments")
	{
		assignments.POST("", middleware.RequirePermission("jobdesc:assign"), h.CreateAssignment)
		assignments.GET("", middleware.RequirePermission("jobdesc:read"), h.ListAssignments)
		assignments.GET("/pending", h.PendingForActor)
		assignments.GET("/:id", middleware.RequirePermission("jobdesc:read"), h.GetAssignment)
		// submit/approve/reject/revise are resolved against the actor's
		// place in the approval chain, not a static permission
		assignments.POST("/:id/submit", h.Submit)
		assignments.POST("/:id/approve", h.Approve)
		assignments.POST("/:id/reject", h.Reject)
		assignments.POST("/:id/request-revision", h.RequestRevision)
	}
}

// Create creates a new job description draft
func (h *JobDescriptionHandler) Create(c *gin.Context) {
	var req jobdesc.CreateJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	jd, err := h.jobDescService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, jd)
}

// List returns a paginated list of job descriptions
func (h *JobDescriptionHandler) List(c *gin.Context) {
	var filter jobdesc.JobDescriptionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.jobDescService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a job description with its duty sections and required skills
func (h *JobDescriptionHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	jd, err := h.jobDescService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jd)
}

// Update updates a job description's details
func (h *JobDescriptionHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req jobdesc.UpdateJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	jd, err := h.jobDescService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jd)
}

// Delete removes a job description with no assignments
func (h *JobDescriptionHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.jobDescService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddDutySection appends a duty section to a job description
func (h *JobDescriptionHandler) AddDutySection(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req jobdesc.AddDutySectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	jd, err := h.jobDescService.AddDutySection(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jd)
}

// RemoveDutySection removes a duty section from a job description
func (h *JobDescriptionHandler) RemoveDutySection(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	sectionID, err := uuid.Parse(c.Param("sectionId"))
	if err != nil {
		h.BadRequest(c, "invalid section id")
		return
	}

	jd, err := h.jobDescService.RemoveDutySection(c.Request.Context(), id, sectionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jd)
}

// SetRequiredSkill sets or updates the required level for a skill
func (h *JobDescriptionHandler) SetRequiredSkill(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req jobdesc.SetRequiredSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	jd, err := h.jobDescService.SetRequiredSkill(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jd)
}

// RemoveRequiredSkill removes a required skill from a job description
func (h *JobDescriptionHandler) RemoveRequiredSkill(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	skillID, err := uuid.Parse(c.Param("skillId"))
	if err != nil {
		h.BadRequest(c, "invalid skill id")
		return
	}

	jd, err := h.jobDescService.RemoveRequiredSkill(c.Request.Context(), id, skillID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, jd)
}

// Activate marks a job description available for assignment
func (h *JobDescriptionHandler) Activate(c *gin.Context) {
	h.mutateJobDescription(c, h.jobDescService.Activate)
}

// Deactivate retires a job description
func (h *JobDescriptionHandler) Deactivate(c *gin.Context) {
	h.mutateJobDescription(c, h.jobDescService.Deactivate)
}

// CreateAssignment assigns a job description to an employee and builds
// the approval chain
func (h *JobDescriptionHandler) CreateAssignment(c *gin.Context) {
	var req jobdesc.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, assignment)
}

// ListAssignments returns a paginated list of assignments
func (h *JobDescriptionHandler) ListAssignments(c *gin.Context) {
	var filter jobdesc.AssignmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assignmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// PendingForActor returns assignments waiting on the current user's decision
func (h *JobDescriptionHandler) PendingForActor(c *gin.Context) {
	actorID, err := getActorEmployeeID(c)
	if err != nil {
		h.Forbidden(c, err.Error())
		return
	}

	assignments, err := h.assignmentService.PendingForActor(c.Request.Context(), actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignments)
}

// GetAssignment returns an assignment with its transition history
func (h *JobDescriptionHandler) GetAssignment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignment)
}

// Submit moves a draft assignment into the approval chain
func (h *JobDescriptionHandler) Submit(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	actorID, err := getActorEmployeeID(c)
	if err != nil {
		h.Forbidden(c, err.Error())
		return
	}

	assignment, err := h.assignmentService.Submit(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignment)
}

// Approve records the current approver's approval
func (h *JobDescriptionHandler) Approve(c *gin.Context) {
	h.decide(c, h.assignmentService.Approve)
}

// Reject terminates the approval flow
func (h *JobDescriptionHandler) Reject(c *gin.Context) {
	h.decide(c, h.assignmentService.Reject)
}

// RequestRevision sends the assignment back to the employee for changes
func (h *JobDescriptionHandler) RequestRevision(c *gin.Context) {
	h.decide(c, h.assignmentService.RequestRevision)
}

func (h *JobDescriptionHandler) decide(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID, jobdesc.DecisionRequest) (*jobdesc.AssignmentResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	actorID, err := getActorEmployeeID(c)
	if err != nil {
		h.Forbidden(c, err.Error())
		return
	}

	var req jobdesc.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	assignment, err := fn(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignment)
}

func (h *JobDescriptionHandler) mutateJobDescription(c *gin.Context, fn func(context.Context, uuid.UUID) (*jobdesc.JobDescriptionResponse, error)) {
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
