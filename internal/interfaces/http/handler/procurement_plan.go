package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appprocurement "github.com/sppg/backend/internal/application/procurement"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// PlanHandler handles procurement plan endpoints
type PlanHandler struct {
	BaseHandler
	service *appprocurement.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(service *appprocurement.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// RegisterRoutes registers the procurement plan endpoints
func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission("procurement:read")
	write := middleware.RequirePermission("procurement:write")
	approve := middleware.RequirePermission("procurement:approve")

	plans := rg.Group("/procurement-plans")
	{
		plans.POST("", write, h.Create)
		plans.GET("", read, h.List)
		plans.GET("/:id", read, h.Get)
		plans.PUT("/:id", write, h.Update)
		plans.DELETE("/:id", write, h.Delete)
		plans.POST("/:id/submit", write, h.Submit)
		plans.POST("/:id/approve", approve, h.Approve)
		plans.POST("/:id/reject", approve, h.Reject)
		plans.POST("/:id/cancel", write, h.Cancel)
	}
}

// Create drafts a new procurement plan
func (h *PlanHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req appprocurement.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.service.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// List returns procurement plans
func (h *PlanHandler) List(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
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

	result, err := h.service.List(c.Request.Context(), tenant, paging.Page, paging.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Get returns one procurement plan
func (h *PlanHandler) Get(c *gin.Context) {
	h.withPlan(c, func(tenant, planID uuid.UUID) (any, error) {
		return h.service.Get(c.Request.Context(), tenant, planID)
	})
}

// Update edits a draft plan
func (h *PlanHandler) Update(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	planID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req appprocurement.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.service.Update(c.Request.Context(), tenant, planID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Delete removes a draft plan
func (h *PlanHandler) Delete(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	planID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenant, planID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Submit moves a draft plan to pending approval
func (h *PlanHandler) Submit(c *gin.Context) {
	h.withPlan(c, func(tenant, planID uuid.UUID) (any, error) {
		return h.service.Submit(c.Request.Context(), tenant, planID)
	})
}

// Approve approves a pending plan, opening its budget envelope
func (h *PlanHandler) Approve(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	approver, ok := h.requireUser(c)
	if !ok {
		return
	}
	planID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.service.Approve(c.Request.Context(), tenant, planID, approver)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Reject sends a pending plan back to draft with a reason
func (h *PlanHandler) Reject(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	planID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	var req appprocurement.RejectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.service.Reject(c.Request.Context(), tenant, planID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Cancel cancels a plan that is no longer needed
func (h *PlanHandler) Cancel(c *gin.Context) {
	h.withPlan(c, func(tenant, planID uuid.UUID) (any, error) {
		return h.service.Cancel(c.Request.Context(), tenant, planID)
	})
}

func (h *PlanHandler) withPlan(c *gin.Context, fn func(tenant, planID uuid.UUID) (any, error)) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	planID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	result, err := fn(tenant, planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
