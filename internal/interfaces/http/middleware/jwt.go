package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sppg/backend/internal/infrastructure/auth"
	"github.com/sppg/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey = "jwt_claims"
	AuthHeader   = "Authorization"
	BearerPrefix = "Bearer "
)

// JWTAuth validates the access token on every request and stores its claims
// in the gin context. The blacklist check fails open: if redis is down we log
// and let the request through rather than taking the API down with it.
func JWTAuth(jwtService *auth.JWTService, blacklist TokenBlacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeader)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(header, BearerPrefix)

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				if logger != nil {
					logger.Error("failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if revoked {
				abortUnauthorized(c, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Next()
	}
}

// TokenBlacklist checks whether a token ID has been revoked
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// GetClaims returns the validated JWT claims, or nil outside an
// authenticated request
func GetClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(JWTClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetTenantID returns the tenant from the validated claims
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	tenantID, err := claims.TenantUUID()
	if err != nil {
		return uuid.Nil, false
	}
	return tenantID, true
}

// GetUserID returns the user from the validated claims
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	claims := GetClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, requestID))
}
