package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sppg/backend/internal/interfaces/http/dto"
)

// RequirePermission aborts with 403 unless the authenticated user holds the
// permission. Admin users pass through the wildcard in their claims.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !claims.HasPermission(permission) {
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"Missing required permission: "+permission, requestID))
			return
		}
		c.Next()
	}
}

// RequireAnyPermission aborts with 403 unless the user holds at least one of
// the permissions
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		for _, permission := range permissions {
			if claims.HasPermission(permission) {
				c.Next()
				return
			}
		}
		requestID := c.GetString(RequestIDKey)
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
				"Missing required permission", requestID))
	}
}
