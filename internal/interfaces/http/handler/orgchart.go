package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hris/backend/internal/application/employee"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

// OrgChartHandler handles organization chart HTTP requests
type OrgChartHandler struct {
	BaseHandler
	orgChartService *employee.OrgChartService
}

// NewOrgChartHandler creates a new org chart handler
func NewOrgChartHandler(orgChartService *employee.OrgChartService) *OrgChartHandler {
	return &OrgChartHandler{orgChartService: orgChartService}
}

// RegisterRoutes registers org chart routes
func (h *OrgChartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orgchart := rg.Group("/orgchart", middleware.RequirePermission("employee:read"))
	{
		orgchart.GET("", h.GetChart)
		orgchart.GET("/:id", h.GetSubtree)
		orgchart.GET("/:id/reports", h.GetDirectReports)
	}
}

// GetChart returns the reporting hierarchy, optionally scoped to a department
func (h *OrgChartHandler) GetChart(c *gin.Context) {
	var departmentID *uuid.UUID
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid department ID")
			return
		}
		departmentID = &id
	}

	chart, err := h.orgChartService.BuildChart(c.Request.Context(), departmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, chart)
}

// GetSubtree returns the reporting subtree rooted at an employee
func (h *OrgChartHandler) GetSubtree(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	node, err := h.orgChartService.Subtree(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, node)
}

// GetDirectReports returns the direct reports of a manager
func (h *OrgChartHandler) GetDirectReports(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	reports, err := h.orgChartService.DirectReports(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reports)
}
