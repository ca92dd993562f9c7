package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/sppg/backend/internal/application/identity"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// DepartmentHandler handles department hierarchy endpoints
type DepartmentHandler struct {
	BaseHandler
	service *appidentity.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(service *appidentity.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

// RegisterRoutes registers the department endpoints
func (h *DepartmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission("department:read")
	write := middleware.RequirePermission("department:write")

	departments := rg.Group("/departments")
	{
		departments.POST("", write, h.Create)
		departments.GET("", read, h.List)
		departments.GET("/:id", read, h.Get)
		departments.GET("/:id/children", read, h.Children)
		departments.PUT("/:id", write, h.Update)
		departments.DELETE("/:id", write, h.Delete)
	}
}

// Create adds a department, optionally under a parent
func (h *DepartmentHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req appidentity.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dept, err := h.service.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dept)
}

// List returns departments matching the filter
func (h *DepartmentHandler) List(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter appidentity.ListDepartmentsFilter
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

// Get returns one department
func (h *DepartmentHandler) Get(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	departmentID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	dept, err := h.service.Get(c.Request.Context(), tenant, departmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dept)
}

// Children returns the direct children of a department
func (h *DepartmentHandler) Children(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	departmentID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	children, err := h.service.Children(c.Request.Context(), tenant, departmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, children)
}

// Update edits a department, including re-parenting
func (h *DepartmentHandler) Update(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	departmentID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	var req appidentity.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dept, err := h.service.Update(c.Request.Context(), tenant, departmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dept)
}

// Delete removes an unused department
func (h *DepartmentHandler) Delete(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	departmentID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenant, departmentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
