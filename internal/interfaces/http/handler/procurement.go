package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appprocurement "github.com/sppg/backend/internal/application/procurement"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// ProcurementHandler handles the procurement order lifecycle: ordering,
// receipt, quality control, acceptance and payment.
type ProcurementHandler struct {
	BaseHandler
	service *appprocurement.Service
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(service *appprocurement.Service) *ProcurementHandler {
	return &ProcurementHandler{service: service}
}

// RegisterRoutes registers the procurement order endpoints
func (h *ProcurementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission("procurement:read")
	write := middleware.RequirePermission("procurement:write")
	approve := middleware.RequirePermission("procurement:approve")

	orders := rg.Group("/procurements")
	{
		orders.POST("", write, h.Create)
		orders.GET("", read, h.List)
		orders.GET("/:id", read, h.Get)
		orders.POST("/:id/submit", write, h.Submit)
		orders.POST("/:id/approve", approve, h.Approve)
		orders.POST("/:id/order", write, h.MarkOrdered)
		orders.POST("/:id/receipt", write, h.RecordReceipt)
		orders.DELETE("/:id/receipt", write, h.DeleteReceipt)
		orders.POST("/:id/qc", write, h.SubmitQC)
		orders.POST("/:id/accept", write, h.Accept)
		orders.POST("/:id/reject", write, h.Reject)
		orders.POST("/:id/bulk-receive", write, h.BulkReceive)
		orders.POST("/:id/payments", write, h.RecordPayment)
	}
}

// Create drafts a new procurement order
func (h *ProcurementHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req appprocurement.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List returns procurement orders matching the filter
func (h *ProcurementHandler) List(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter appprocurement.ListOrdersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListOrders(c.Request.Context(), tenant, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get returns one procurement order with its lines
func (h *ProcurementHandler) Get(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procurement ID")
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), tenant, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Submit moves a draft order to pending approval
func (h *ProcurementHandler) Submit(c *gin.Context) {
	h.transition(c, func(tenant, orderID uuid.UUID) (any, error) {
		return h.service.SubmitOrder(c.Request.Context(), tenant, orderID)
	})
}

// Approve approves a pending order, allocating plan budget when attached
func (h *ProcurementHandler) Approve(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	approver, ok := h.requireUser(c)
	if !ok {
		return
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procurement ID")
		return
	}

	order, err := h.service.ApproveOrder(c.Request.Context(), tenant, orderID, approver)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// MarkOrdered marks an approved order as placed with the supplier
func (h *ProcurementHandler) MarkOrdered(c *gin.Context) {
	h.transition(c, func(tenant, orderID uuid.UUID) (any, error) {
		return h.service.MarkOrdered(c.Request.Context(), tenant, orderID)
	})
}

// RecordReceipt records goods arriving against an ordered procurement
func (h *ProcurementHandler) RecordReceipt(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procurement ID")
		return
	}

	var req appprocurement.RecordReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.RecordReceipt(c.Request.Context(), tenant, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// DeleteReceipt clears a recorded receipt before acceptance
func (h *ProcurementHandler) DeleteReceipt(c *gin.Context) {
	h.transition(c, func(tenant, orderID uuid.UUID) (any, error) {
		return h.service.DeleteReceipt(c.Request.Context(), tenant, orderID)
	})
}

// SubmitQC records a quality control inspection for a received order
func (h *ProcurementHandler) SubmitQC(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	inspector, ok := h.requireUser(c)
	if !ok {
		return
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procurement ID")
		return
	}

	var req appprocurement.SubmitQCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.SubmitQC(c.Request.Context(), tenant, orderID, inspector, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Accept accepts a QC-passed order into inventory
func (h *ProcurementHandler) Accept(c *gin.Context) {
	h.transition(c, func(tenant, orderID uuid.UUID) (any, error) {
		return h.service.AcceptOrder(c.Request.Context(), tenant, orderID)
	})
}

// Reject rejects a received order and returns it to the supplier
func (h *ProcurementHandler) Reject(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procurement ID")
		return
	}

	var req appprocurement.RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.RejectOrder(c.Request.Context(), tenant, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// BulkReceive records receipt, QC pass and acceptance in one call for
// trusted suppliers
func (h *ProcurementHandler) BulkReceive(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procurement ID")
		return
	}

	var req appprocurement.BulkReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.BulkReceive(c.Request.Context(), tenant, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RecordPayment records a payment against an accepted order
func (h *ProcurementHandler) RecordPayment(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procurement ID")
		return
	}

	var req appprocurement.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.RecordPayment(c.Request.Context(), tenant, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// transition handles the body-less status transition endpoints
func (h *ProcurementHandler) transition(c *gin.Context, fn func(tenant, orderID uuid.UUID) (any, error)) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid procurement ID")
		return
	}

	result, err := fn(tenant, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
