package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hris/backend/internal/application/bulk"
	"github.com/hris/backend/internal/infrastructure/telemetry"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BulkHandler handles CSV/XLSX import and XLSX export requests
type BulkHandler struct {
	BaseHandler
	importService *bulk.ImportService
	exportService *bulk.ExportService
	metrics       *telemetry.BusinessMetrics
}

// NewBulkHandler creates a new bulk handler. metrics may be nil when
// telemetry is disabled.
func NewBulkHandler(importService *bulk.ImportService, exportService *bulk.ExportService, metrics *telemetry.BusinessMetrics) *BulkHandler {
	return &BulkHandler{
		importService: importService,
		exportService: exportService,
		metrics:       metrics,
	}
}

// RegisterRoutes registers import and export routes
func (h *BulkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/imports", middleware.RequirePermission("bulk:import"))
	{
		imports.POST("/employees", h.ImportEmployees)
		imports.POST("/asset-batches", h.ImportAssetBatches)
		imports.GET("/history", h.ListHistory)
		imports.GET("/history/:id", h.GetHistory)
		imports.POST("/cancel-pending", h.CancelPending)
	}

	exports := rg.Group("/exports", middleware.RequirePermission("bulk:export"))
	{
		exports.GET("/employees", h.ExportEmployees)
		exports.GET("/asset-batches", h.ExportAssetBatches)
	}
}

// ImportEmployees imports employees from an uploaded CSV or XLSX file.
// Pass dry_run=true to validate without writing.
func (h *BulkHandler) ImportEmployees(c *gin.Context) {
	h.runImport(c, "employees", h.importService.ImportEmployees)
}

// ImportAssetBatches imports asset batches from an uploaded CSV or XLSX file
func (h *BulkHandler) ImportAssetBatches(c *gin.Context) {
	h.runImport(c, "asset_batches", h.importService.ImportAssetBatches)
}

func (h *BulkHandler) runImport(c *gin.Context, entityType string, fn func(context.Context, bulk.ImportRequest) (*bulk.ImportResultResponse, error)) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "invalid user identity")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	dryRun, _ := strconv.ParseBool(c.PostForm("dry_run"))

	req := bulk.ImportRequest{
		FileName:     header.Filename,
		FileSize:     header.Size,
		Reader:       file,
		ConflictMode: c.PostForm("conflict_mode"),
		DryRun:       dryRun,
		ImportedBy:   userID,
	}

	start := time.Now()
	result, err := fn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil && !result.DryRun {
		h.metrics.RecordImport(c.Request.Context(), entityType, result.Status, result.TotalRows, time.Since(start))
	}
	h.Success(c, result)
}

// ListHistory returns a paginated list of past import runs
func (h *BulkHandler) ListHistory(c *gin.Context) {
	var filter bulk.ImportHistoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.importService.ListHistory(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetHistory returns a single import run with its row errors
func (h *BulkHandler) GetHistory(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	history, err := h.importService.GetHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// CancelPending marks stuck pending imports as cancelled
func (h *BulkHandler) CancelPending(c *gin.Context) {
	cancelled, err := h.importService.CancelPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"cancelled": cancelled})
}

// ExportEmployees streams an XLSX workbook of employees matching the filter
func (h *BulkHandler) ExportEmployees(c *gin.Context) {
	var filter bulk.EmployeeExportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var buf bytes.Buffer
	fileName, err := h.exportService.ExportEmployees(c.Request.Context(), &buf, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendWorkbook(c, fileName, buf.Bytes())
}

// ExportAssetBatches streams an XLSX workbook of asset batches
func (h *BulkHandler) ExportAssetBatches(c *gin.Context) {
	var filter bulk.AssetBatchExportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var buf bytes.Buffer
	fileName, err := h.exportService.ExportAssetBatches(c.Request.Context(), &buf, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendWorkbook(c, fileName, buf.Bytes())
}

func (h *BulkHandler) sendWorkbook(c *gin.Context, fileName string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, data)
}
