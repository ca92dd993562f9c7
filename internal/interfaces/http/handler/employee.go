package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/sppg/backend/internal/application/identity"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	BaseHandler
	service *appidentity.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(service *appidentity.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// RegisterRoutes registers the employee endpoints
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequirePermission("department:read")
	write := middleware.RequirePermission("department:write")

	employees := rg.Group("/employees")
	{
		employees.POST("", write, h.Create)
		employees.GET("", read, h.List)
		employees.GET("/:id", read, h.Get)
		employees.POST("/:id/transfer", write, h.Transfer)
		employees.POST("/:id/terminate", write, h.Terminate)
	}
}

// Create registers a new employee in a department
func (h *EmployeeHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req appidentity.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.service.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// List returns employees matching the filter
func (h *EmployeeHandler) List(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var filter appidentity.ListEmployeesFilter
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

// Get returns one employee
func (h *EmployeeHandler) Get(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	employeeID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.service.Get(c.Request.Context(), tenant, employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Transfer moves an employee to another department
func (h *EmployeeHandler) Transfer(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	employeeID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req appidentity.TransferEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	employee, err := h.service.Transfer(c.Request.Context(), tenant, employeeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Terminate marks an employee inactive
func (h *EmployeeHandler) Terminate(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	employeeID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.service.Terminate(c.Request.Context(), tenant, employeeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
