package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
	"github.com/sppg/backend/internal/interfaces/http/dto"
	"github.com/sppg/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response helpers
type BaseHandler struct{}

// tenantID extracts the tenant from the validated JWT claims
func tenantID(c *gin.Context) (uuid.UUID, bool) {
	return middleware.GetTenantID(c)
}

// userID extracts the user from the validated JWT claims
func userID(c *gin.Context) (uuid.UUID, bool) {
	return middleware.GetUserID(c)
}

// pathUUID parses a UUID path parameter
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// requireTenant extracts the tenant from the claims, answering 401 itself
// when the request is not authenticated
func (h *BaseHandler) requireTenant(c *gin.Context) (uuid.UUID, bool) {
	tenant, ok := tenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
	}
	return tenant, ok
}

// requireUser extracts the acting user from the claims, answering 401 itself
func (h *BaseHandler) requireUser(c *gin.Context) (uuid.UUID, bool) {
	user, ok := userID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
	}
	return user, ok
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Paginated sends a 200 response from a paginated result, lifting the page
// info into the meta block
func Paginated[T any](h *BaseHandler, c *gin.Context, result *shared.Paginated[T]) {
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := c.GetString(middleware.RequestIDKey)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 response, used for binding and parse failures
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleError translates service errors into the envelope. Domain errors map
// through their code; anything else is an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}
