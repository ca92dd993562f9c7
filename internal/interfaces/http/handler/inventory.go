package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/sppg/backend/internal/application/inventory"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles inventory item and stock ledger endpoints
type InventoryHandler struct {
	BaseHandler
	service       *appinventory.Service
	importService *appinventory.ImportService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *appinventory.Service, importService *appinventory.ImportService) *InventoryHandler {
	return &InventoryHandler{service: service, importService: importService}
}

// RegisterRoutes registers the inventory endpoints
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission("inventory:read")
	write := middleware.RequirePermission("inventory:write")

	items := rg.Group("/inventory/items")
	{
		items.POST("", write, h.Create)
		items.POST("/import", write, h.Import)
		items.GET("", read, h.List)
		items.GET("/low-stock", read, h.LowStock)
		items.GET("/:id", read, h.Get)
		items.PUT("/:id", write, h.Update)
		items.DELETE("/:id", write, h.Deactivate)
		items.POST("/:id/adjust", write, h.Adjust)
		items.GET("/:id/movements", read, h.Movements)
	}
}

// Create registers a new inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req appinventory.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Import bulk-creates items from an uploaded CSV file
func (h *InventoryHandler) Import(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}
	src, err := file.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read file upload")
		return
	}
	defer src.Close()

	result, err := h.importService.ImportItems(c.Request.Context(), tenant, src)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns inventory items matching the filter
func (h *InventoryHandler) List(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter appinventory.ListItemsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListItems(c.Request.Context(), tenant, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// LowStock returns active items under their minimum stock threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	items, err := h.service.LowStock(c.Request.Context(), tenant)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns one inventory item
func (h *InventoryHandler) Get(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), tenant, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update changes an item's descriptive fields and minimum stock
func (h *InventoryHandler) Update(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appinventory.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), tenant, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Deactivate retires an item from active use
func (h *InventoryHandler) Deactivate(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.service.DeactivateItem(c.Request.Context(), tenant, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Adjust corrects the item balance to a counted quantity and posts the
// difference to the ledger
func (h *InventoryHandler) Adjust(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appinventory.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.service.AdjustStock(c.Request.Context(), tenant, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movement)
}

// Movements returns the stock ledger for one item
func (h *InventoryHandler) Movements(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var paging struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&paging); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListMovements(c.Request.Context(), tenant, itemID, paging.Page, paging.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}
