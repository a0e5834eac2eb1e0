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

// RoleHandler handles role management HTTP requests
type RoleHandler struct {
	BaseHandler
	roleService *appidentity.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *appidentity.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// RegisterRoutes registers role management routes
func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	roles := rg.Group("/roles", middleware.RequireResource("role"))
	{
		roles.POST("", h.Create)
		roles.GET("", h.List)
		roles.GET("/:id", h.GetByID)
		roles.PUT("/:id", h.Update)
		roles.DELETE("/:id", h.Delete)
		roles.POST("/:id/enable", middleware.RequirePermission("role:update"), h.Enable)
		roles.POST("/:id/disable", middleware.RequirePermission("role:update"), h.Disable)
		roles.PUT("/:id/permissions", middleware.RequirePermission("role:set-permissions"), h.SetPermissions)
		roles.PUT("/:id/data-scopes", middleware.RequirePermission("role:set-permissions"), h.SetDataScope)
		roles.DELETE("/:id/data-scopes/:resource", middleware.RequirePermission("role:set-permissions"), h.RemoveDataScope)
	}
}

// CreateRoleRequest is the role creation payload
type CreateRoleRequest struct {
	Code            string   `json:"code" binding:"required,max=64"`
	Name            string   `json:"name" binding:"required,max=128"`
	Description     string   `json:"description" binding:"omitempty,max=500"`
	SortOrder       int      `json:"sort_order" binding:"omitempty,gte=0"`
	PermissionCodes []string `json:"permission_codes"`
}

// Create creates a new role
func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), appidentity.CreateRoleInput{
		Code:            req.Code,
		Name:            req.Name,
		Description:     req.Description,
		SortOrder:       req.SortOrder,
		PermissionCodes: req.PermissionCodes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, role)
}

// ListRolesRequest is the role list query
type ListRolesRequest struct {
	dto.ListRequest
	IsEnabled *bool `form:"is_enabled"`
}

// List returns a paginated list of roles
func (h *RoleHandler) List(c *gin.Context) {
	req := ListRolesRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := identity.NewRoleFilter()
	filter.Keyword = req.Keyword
	filter.IsEnabled = req.IsEnabled
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
		filter.OrderDir = req.OrderDir
	}

	result, err := h.roleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single role
func (h *RoleHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	role, err := h.roleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, role)
}

// UpdateRoleRequest is the role update payload
type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description" binding:"omitempty,max=500"`
	SortOrder   *int   `json:"sort_order" binding:"omitempty,gte=0"`
}

// Update updates a role's display fields
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), appidentity.UpdateRoleInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, role)
}

// Delete removes a role. System roles and roles still assigned to users
// cannot be deleted.
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Enable enables a role
func (h *RoleHandler) Enable(c *gin.Context) {
	h.mutateRole(c, h.roleService.Enable)
}

// Disable disables a role
func (h *RoleHandler) Disable(c *gin.Context) {
	h.mutateRole(c, h.roleService.Disable)
}

// SetPermissionsRequest is the permission replacement payload
type SetPermissionsRequest struct {
	PermissionCodes []string `json:"permission_codes" binding:"required"`
}

// SetPermissions replaces the role's permission set
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	role, err := h.roleService.SetPermissions(c.Request.Context(), id, req.PermissionCodes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, role)
}

// SetDataScopeRequest is the data scope configuration payload
type SetDataScopeRequest struct {
	Resource    string   `json:"resource" binding:"required,max=64"`
	ScopeType   string   `json:"scope_type" binding:"required,oneof=all self department subordinates custom"`
	ScopeValues []string `json:"scope_values" binding:"omitempty,dive,uuid"`
}

// SetDataScope configures a data scope on the role
func (h *RoleHandler) SetDataScope(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req SetDataScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	role, err := h.roleService.SetDataScope(c.Request.Context(), id, appidentity.DataScopeInput{
		Resource:    req.Resource,
		ScopeType:   req.ScopeType,
		ScopeValues: req.ScopeValues,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, role)
}

// RemoveDataScope removes the data scope for a resource from the role
func (h *RoleHandler) RemoveDataScope(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	resource := c.Param("resource")
	if resource == "" {
		h.BadRequest(c, "Missing resource")
		return
	}

	role, err := h.roleService.RemoveDataScope(c.Request.Context(), id, resource)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, role)
}

func (h *RoleHandler) mutateRole(c *gin.Context, fn func(context.Context, uuid.UUID) (*appidentity.RoleDTO, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	role, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, role)
}
