package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/employee"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// EmployeeHandler handles employee record HTTP requests
type EmployeeHandler struct {
	BaseHandler
	employeeService *employee.EmployeeService
	documentService *employee.DocumentService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *employee.EmployeeService, documentService *employee.DocumentService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		documentService: documentService,
	}
}

// RegisterRoutes registers employee routes
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees", middleware.RequireResource("employee"))
	{
		employees.POST("", h.Create)
		employees.GET("", h.List)
		employees.GET("/code/:code", h.GetByCode)
		employees.GET("/:id", h.GetByID)
		employees.PUT("/:id", h.Update)
		employees.DELETE("/:id", middleware.RequirePermission("employee:delete"), h.Delete)

		employees.PUT("/:id/position", middleware.RequirePermission("employee:update"), h.SetPosition)
		employees.PUT("/:id/department", middleware.RequirePermission("employee:update"), h.SetDepartment)
		employees.PUT("/:id/manager", middleware.RequirePermission("employee:update"), h.ChangeManager)
		employees.POST("/:id/terminate", middleware.RequirePermission("employee:terminate"), h.Terminate)
		employees.POST("/:id/leave", middleware.RequirePermission("employee:update"), h.PutOnLeave)
		employees.POST("/:id/reactivate", middleware.RequirePermission("employee:update"), h.Reactivate)

		employees.POST("/:id/tags", middleware.RequirePermission("employee:update"), h.AddTag)
		employees.DELETE("/:id/tags/:tag", middleware.RequirePermission("employee:update"), h.RemoveTag)

		employees.POST("/:id/documents/initiate", middleware.RequirePermission("employee:update"), h.InitiateDocumentUpload)
		employees.POST("/:id/documents/confirm", middleware.RequirePermission("employee:update"), h.ConfirmDocumentUpload)
		employees.GET("/:id/documents/:docId/download", h.GetDocumentDownloadURL)
		employees.DELETE("/:id/documents/:docId", middleware.RequirePermission("employee:update"), h.DeleteDocument)

		employees.POST("/:id/photo/initiate", middleware.RequirePermission("employee:update"), h.InitiatePhotoUpload)
		employees.POST("/:id/photo/confirm", middleware.RequirePermission("employee:update"), h.ConfirmPhotoUpload)
		employees.GET("/:id/photo", h.GetPhotoURL)
	}
}

// Create creates a new employee record. When no code is supplied the
// service generates the next sequential one.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employee.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, emp)
}

// List returns a paginated, filterable list of employees
func (h *EmployeeHandler) List(c *gin.Context) {
	var filter employee.EmployeeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.employeeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single employee
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	emp, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// GetByCode returns a single employee by employee code
func (h *EmployeeHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Missing employee code")
		return
	}

	emp, err := h.employeeService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// Update updates personal fields of an employee
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// Delete removes an employee record
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.employeeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetPosition changes the employee's position data
func (h *EmployeeHandler) SetPosition(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.SetPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.SetPosition(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// SetDepartment moves the employee to a department. A null department
// removes the assignment.
func (h *EmployeeHandler) SetDepartment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.SetDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.SetDepartment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// ChangeManager changes the employee's line manager. A null manager clears
// the reporting line.
func (h *EmployeeHandler) ChangeManager(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.ChangeManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.ChangeManager(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// Terminate terminates the employee
func (h *EmployeeHandler) Terminate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.TerminateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.Terminate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// PutOnLeave places the employee on leave
func (h *EmployeeHandler) PutOnLeave(c *gin.Context) {
	h.mutateEmployee(c, h.employeeService.PutOnLeave)
}

// Reactivate returns the employee to active status
func (h *EmployeeHandler) Reactivate(c *gin.Context) {
	h.mutateEmployee(c, h.employeeService.Reactivate)
}

// AddTag attaches a tag to the employee
func (h *EmployeeHandler) AddTag(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.employeeService.AddTag(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// RemoveTag removes a tag from the employee
func (h *EmployeeHandler) RemoveTag(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	tag := c.Param("tag")
	if tag == "" {
		h.BadRequest(c, "Missing tag")
		return
	}

	emp, err := h.employeeService.RemoveTag(c.Request.Context(), id, tag)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// InitiateDocumentUpload returns a presigned URL for uploading a document
func (h *EmployeeHandler) InitiateDocumentUpload(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.documentService.InitiateDocumentUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ConfirmDocumentUpload attaches the uploaded document to the employee
func (h *EmployeeHandler) ConfirmDocumentUpload(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.ConfirmDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	doc, err := h.documentService.ConfirmDocumentUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, doc)
}

// GetDocumentDownloadURL returns a presigned download URL for a document
func (h *EmployeeHandler) GetDocumentDownloadURL(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("docId"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	resp, err := h.documentService.GetDocumentDownloadURL(c.Request.Context(), id, docID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteDocument removes a document from the employee
func (h *EmployeeHandler) DeleteDocument(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("docId"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), id, docID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// InitiatePhotoUpload returns a presigned URL for uploading a profile photo
func (h *EmployeeHandler) InitiatePhotoUpload(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req employee.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.documentService.InitiatePhotoUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ConfirmPhotoUploadRequest finalizes an uploaded profile photo
type ConfirmPhotoUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// ConfirmPhotoUpload sets the uploaded photo as the employee's profile photo
func (h *EmployeeHandler) ConfirmPhotoUpload(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req ConfirmPhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	emp, err := h.documentService.ConfirmPhotoUpload(c.Request.Context(), id, req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}

// GetPhotoURL returns a presigned URL for the employee's profile photo
func (h *EmployeeHandler) GetPhotoURL(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	resp, err := h.documentService.GetPhotoURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *EmployeeHandler) mutateEmployee(c *gin.Context, fn func(context.Context, uuid.UUID) (*employee.EmployeeResponse, error)) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	emp, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, emp)
}
