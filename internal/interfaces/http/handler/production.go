package handler

import (
	"github.com/gin-gonic/gin"

	appproduction "github.com/sppg/backend/internal/application/production"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// ProductionHandler handles food production batch endpoints
type ProductionHandler struct {
	BaseHandler
	service *appproduction.Service
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(service *appproduction.Service) *ProductionHandler {
	return &ProductionHandler{service: service}
}

// RegisterRoutes registers the production endpoints
func (h *ProductionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission("production:read")
	write := middleware.RequirePermission("production:write")

	productions := rg.Group("/productions")
	{
		productions.POST("", write, h.Create)
		productions.GET("", read, h.List)
		productions.GET("/:id", read, h.Get)
		productions.POST("/:id/complete", write, h.Complete)
		productions.POST("/:id/cancel", write, h.Cancel)
	}
}

// Create starts a production batch, consuming ingredient stock
func (h *ProductionHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req appproduction.CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.service.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// List returns production batches matching the filter
func (h *ProductionHandler) List(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter appproduction.ListProductionsFilter
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

// Get returns one production batch with its stock usages
func (h *ProductionHandler) Get(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	productionID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid production ID")
		return
	}

	batch, err := h.service.Get(c.Request.Context(), tenant, productionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Complete closes a batch with the actual portion count
func (h *ProductionHandler) Complete(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	productionID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid production ID")
		return
	}

	var req appproduction.CompleteProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.service.Complete(c.Request.Context(), tenant, productionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Cancel aborts a planned batch and returns its ingredients to stock
func (h *ProductionHandler) Cancel(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	productionID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid production ID")
		return
	}

	batch, err := h.service.Cancel(c.Request.Context(), tenant, productionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}
