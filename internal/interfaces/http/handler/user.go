package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/sppg/backend/internal/application/identity"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// UserHandler handles user account administration endpoints
type UserHandler struct {
	BaseHandler
	service *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *appidentity.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers the user administration endpoints. All of them
// require the user:manage permission, which only admins carry.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("user:manage")

	users := rg.Group("/users", manage)
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.POST("/:id/change-password", h.ChangePassword)
		users.POST("/:id/deactivate", h.Deactivate)
		users.POST("/:id/unlock", h.Unlock)
	}
}

// Create provisions a user account
func (h *UserHandler) Create(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}

	var req appidentity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List returns user accounts
func (h *UserHandler) List(c *gin.Context) {
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

	users, err := h.service.List(c.Request.Context(), tenant, paging.Page, paging.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Get returns one user account
func (h *UserHandler) Get(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	userID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.service.Get(c.Request.Context(), tenant, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword sets a new password for a user
func (h *UserHandler) ChangePassword(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	userID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), tenant, userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Password changed"})
}

// Deactivate disables a user account
func (h *UserHandler) Deactivate(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	userID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), tenant, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Unlock clears a login lockout ahead of its expiry
func (h *UserHandler) Unlock(c *gin.Context) {
	tenant, ok := h.requireTenant(c)
	if !ok {
		return
	}
	userID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.service.Unlock(c.Request.Context(), tenant, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Account unlocked"})
}
