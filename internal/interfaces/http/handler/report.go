package handler

import (
	"github.com/gin-gonic/gin"

	appmonitoring "github.com/sppg/backend/internal/application/monitoring"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles monitoring report endpoints
type ReportHandler struct {
	BaseHandler
	service *appmonitoring.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *appmonitoring.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers the monitoring report endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission("monitoring:read")
	write := middleware.RequirePermission("monitoring:write")

	reports := rg.Group("/monitoring/reports")
	{
		reports.POST("", write, h.Create)
		reports.GET("", read, h.List)
		reports.GET("/:id", read, h.Get)
		reports.PUT("/:id", write, h.Update)
		reports.DELETE("/:id", write, h.Delete)
	}
}

// Create submits a monitoring report for a period
func (h *ReportHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	submitter, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req appmonitoring.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.service.Create(c.Request.Context(), tenant, submitter, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, report)
}

// List returns monitoring reports matching the filter
func (h *ReportHandler) List(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter appmonitoring.ListReportsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), tenant, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get returns one monitoring report with its derived ratios
func (h *ReportHandler) Get(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	reportID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.service.Get(c.Request.Context(), tenant, reportID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Update replaces a report's figures, recomputing the derived ratios
func (h *ReportHandler) Update(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	reportID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	var req appmonitoring.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.service.Update(c.Request.Context(), tenant, reportID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Delete removes a monitoring report
func (h *ReportHandler) Delete(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	reportID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid report ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenant, reportID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
