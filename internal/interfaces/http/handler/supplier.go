package handler

import (
	"github.com/gin-gonic/gin"

	apppartner "github.com/sppg/backend/internal/application/partner"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	BaseHandler
	service *apppartner.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(service *apppartner.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// RegisterRoutes registers the supplier endpoints
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission("supplier:read")
	write := middleware.RequirePermission("supplier:write")

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", write, h.Create)
		suppliers.GET("", read, h.List)
		suppliers.GET("/:id", read, h.Get)
		suppliers.PUT("/:id", write, h.Update)
		suppliers.DELETE("/:id", write, h.Deactivate)
		suppliers.POST("/:id/ratings", write, h.Rate)
	}
}

// Create registers a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req apppartner.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// List returns suppliers matching the filter
func (h *SupplierHandler) List(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter apppartner.ListSuppliersFilter
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

// Get returns one supplier with its rating and delivery counters
func (h *SupplierHandler) Get(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	supplierID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.service.Get(c.Request.Context(), tenant, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Update edits supplier contact and category fields
func (h *SupplierHandler) Update(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	supplierID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req apppartner.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Update(c.Request.Context(), tenant, supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Deactivate retires a supplier from active use
func (h *SupplierHandler) Deactivate(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	supplierID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), tenant, supplierID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Rate records a rating and folds it into the supplier average
func (h *SupplierHandler) Rate(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	rater, ok := h.requireUser(c)
	if !ok {
		return
	}
	supplierID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req apppartner.RateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.service.Rate(c.Request.Context(), tenant, supplierID, rater, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}
