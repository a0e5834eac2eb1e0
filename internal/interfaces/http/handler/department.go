package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/hris/backend/internal/application/identity"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/interfaces/http/dto"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// DepartmentHandler handles department management HTTP requests
type DepartmentHandler struct {
	BaseHandler
	departmentService *appidentity.DepartmentService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(departmentService *appidentity.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// RegisterRoutes registers department management routes
func (h *DepartmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	departments := rg.Group("/departments", middleware.RequireResource("department"))
	{
		departments.POST("", h.Create)
		departments.GET("", h.List)
		departments.GET("/tree", h.Tree)
		departments.GET("/:id", h.GetByID)
		departments.PUT("/:id", h.Update)
		departments.DELETE("/:id", h.Delete)
		departments.POST("/:id/move", middleware.RequirePermission("department:update"), h.Move)
		departments.PUT("/:id/head", middleware.RequirePermission("department:update"), h.SetHead)
		departments.POST("/:id/activate", middleware.RequirePermission("department:update"), h.Activate)
		departments.POST("/:id/deactivate", middleware.RequirePermission("department:update"), h.Deactivate)
	}
}

// CreateDepartmentRequest is the department creation payload
type CreateDepartmentRequest struct {
	Code        string  `json:"code" binding:"required,max=64"`
	Name        string  `json:"name" binding:"required,max=128"`
	Description string  `json:"description" binding:"omitempty,max=500"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	HeadID      *string `json:"head_id" binding:"omitempty,uuid"`
	SortOrder   int     `json:"sort_order" binding:"omitempty,gte=0"`
}

// Create creates a new department
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		h.BadRequest(c, "Invalid parent ID")
		return
	}
	headID, err := parseOptionalUUID(req.HeadID)
	if err != nil {
		h.BadRequest(c, "Invalid head ID")
		return
	}

	dept, err := h.departmentService.Create(c.Request.Context(), appidentity.CreateDepartmentInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ParentID:    parentID,
		HeadID:      headID,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dept)
}

// ListDepartmentsRequest is the department list query
type ListDepartmentsRequest struct {
	dto.ListRequest
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	ParentID string `form:"parent_id" binding:"omitempty,uuid"`
}

// List returns a paginated list of departments
func (h *DepartmentHandler) List(c *gin.Context) {
	req := ListDepartmentsRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := identity.NewDepartmentFilter()
	filter.Keyword = req.Keyword
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
		filter.OrderDir = req.OrderDir
	}
	if req.Status != "" {
		status := identity.DepartmentStatus(req.Status)
		filter.Status = &status
	}
	if req.ParentID != "" {
		id := uuid.MustParse(req.ParentID)
		filter.ParentID = &id
	}

	result, err := h.departmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Tree returns the full department hierarchy
func (h *DepartmentHandler) Tree(c *gin.Context) {
	tree, err := h.departmentService.Tree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tree)
}

// GetByID returns a single department
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	dept, err := h.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dept)
}

// UpdateDepartmentRequest is the department update payload
type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description" binding:"omitempty,max=500"`
	SortOrder   *int   `json:"sort_order" binding:"omitempty,gte=0"`
}

// Update updates a department's display fields
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dept, err := h.departmentService.Update(c.Request.Context(), appidentity.UpdateDepartmentInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dept)
}

// Delete removes a department. Departments with children or assigned
// employees cannot be deleted.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MoveDepartmentRequest is the department move payload. A nil parent moves
// the department to the root.
type MoveDepartmentRequest struct {
	NewParentID *string `json:"new_parent_id" binding:"omitempty,uuid"`
}

// Move reparents a department in the hierarchy
func (h *DepartmentHandler) Move(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req MoveDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	newParentID, err := parseOptionalUUID(req.NewParentID)
	if err != nil {
		h.BadRequest(c, "Invalid parent ID")
		return
	}

	dept, err := h.departmentService.Move(c.Request.Context(), id, newParentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dept)
}

// SetHeadRequest is the department head assignment payload
type SetHeadRequest struct {
	HeadID *string `json:"head_id" binding:"omitempty,uuid"`
}

// SetHead assigns or clears the department head
func (h *DepartmentHandler) SetHead(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req SetHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	headID, err := parseOptionalUUID(req.HeadID)
	if err != nil {
		h.BadRequest(c, "Invalid head ID")
		return
	}

	dept, err := h.departmentService.SetHead(c.Request.Context(), id, headID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dept)
}

// Activate activates a department
func (h *DepartmentHandler) Activate(c *gin.Context) {
	h.mutateDepartment(c, h.departmentService.Activate)
}

// Deactivate deactivates a department
func (h *DepartmentHandler) Deactivate(c *gin.Context) {
	h.mutateDepartment(c, h.departmentService.Deactivate)
}

func (h *DepartmentHandler) mutateDepartment(c *gin.Context, fn func(context.Context, uuid.UUID) (*appidentity.DepartmentDTO, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	dept, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dept)
}
