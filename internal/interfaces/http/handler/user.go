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

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user management routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.RequireResource("user"))
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.GetByID)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
		users.POST("/:id/activate", middleware.RequirePermission("user:update"), h.Activate)
		users.POST("/:id/deactivate", middleware.RequirePermission("user:update"), h.Deactivate)
		users.POST("/:id/unlock", middleware.RequirePermission("user:update"), h.Unlock)
		users.POST("/:id/reset-password", middleware.RequirePermission("user:reset-password"), h.ResetPassword)
		users.PUT("/:id/roles", middleware.RequirePermission("user:assign-roles"), h.AssignRoles)
		users.PUT("/:id/employee", middleware.RequirePermission("user:update"), h.LinkEmployee)
	}
}

// CreateUserRequest is the user creation payload
type CreateUserRequest struct {
	Username    string   `json:"username" binding:"required,min=3,max=64"`
	Password    string   `json:"password" binding:"required,min=8,max=128"`
	Email       string   `json:"email" binding:"omitempty,email"`
	DisplayName string   `json:"display_name" binding:"required,max=128"`
	EmployeeID  *string  `json:"employee_id" binding:"omitempty,uuid"`
	RoleIDs     []string `json:"role_ids" binding:"omitempty,dive,uuid"`
}

// Create creates a new user account
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employeeID, err := parseOptionalUUID(req.EmployeeID)
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}
	roleIDs, err := parseUUIDs(req.RoleIDs)
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), appidentity.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		EmployeeID:  employeeID,
		RoleIDs:     roleIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// ListUsersRequest is the user list query
type ListUsersRequest struct {
	dto.ListRequest
	Status       string `form:"status" binding:"omitempty,oneof=pending active locked deactivated"`
	RoleID       string `form:"role_id" binding:"omitempty,uuid"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
}

// List returns a paginated list of users
func (h *UserHandler) List(c *gin.Context) {
	req := ListUsersRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := identity.NewUserFilter()
	filter.Keyword = req.Keyword
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
		filter.OrderDir = req.OrderDir
	}
	if req.Status != "" {
		status := identity.UserStatus(req.Status)
		filter.Status = &status
	}
	if req.RoleID != "" {
		id := uuid.MustParse(req.RoleID)
		filter.RoleID = &id
	}
	if req.DepartmentID != "" {
		id := uuid.MustParse(req.DepartmentID)
		filter.DepartmentID = &id
	}

	result, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single user
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// UpdateUserRequest is the user update payload
type UpdateUserRequest struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	DisplayName  *string `json:"display_name" binding:"omitempty,max=128"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

// Update updates a user's profile fields
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	departmentID, err := parseOptionalUUID(req.DepartmentID)
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), appidentity.UpdateUserInput{
		ID:           id,
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		DepartmentID: departmentID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Activate activates a user account
func (h *UserHandler) Activate(c *gin.Context) {
	h.mutateUser(c, h.userService.Activate)
}

// Deactivate deactivates a user account
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.mutateUser(c, h.userService.Deactivate)
}

// Unlock clears a lockout after failed login attempts
func (h *UserHandler) Unlock(c *gin.Context) {
	h.mutateUser(c, h.userService.Unlock)
}

// ResetPasswordRequest is the admin password reset payload
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ResetPassword sets a new password for a user. The user must change it on
// next login.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoutResponse{Message: "Password reset"})
}

// AssignRolesRequest is the role assignment payload
type AssignRolesRequest struct {
	RoleIDs []string `json:"role_ids" binding:"required,dive,uuid"`
}

// AssignRoles replaces the user's role set
func (h *UserHandler) AssignRoles(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req AssignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	roleIDs, err := parseUUIDs(req.RoleIDs)
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	user, err := h.userService.AssignRoles(c.Request.Context(), id, roleIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// LinkEmployeeRequest is the employee link payload
type LinkEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

// LinkEmployee links a user account to an employee record
func (h *UserHandler) LinkEmployee(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req LinkEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.LinkEmployee(c.Request.Context(), id, uuid.MustParse(req.EmployeeID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

func (h *UserHandler) mutateUser(c *gin.Context, fn func(context.Context, uuid.UUID) (*appidentity.UserDTO, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	user, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// bindID binds and parses the :id URI parameter
func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID parses a UUID string pointer, returning nil for nil input
func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseUUIDs parses a slice of UUID strings
func parseUUIDs(ss []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(ss))
	for i, s := range ss {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
