package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sppg/backend/internal/infrastructure/auth"
)

func setupWithClaims(claims *auth.Claims, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if claims != nil {
		r.Use(func(c *gin.Context) {
			c.Set(JWTClaimsKey, claims)
		})
	}
	r.GET("/resource", append(mw, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})...)
	return r
}

func TestRequirePermission_NoClaims(t *testing.T) {
	r := setupWithClaims(nil, RequirePermission("inventory:read"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission_Granted(t *testing.T) {
	claims := &auth.Claims{Permissions: []string{"inventory:read"}}
	r := setupWithClaims(claims, RequirePermission("inventory:read"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_Denied(t *testing.T) {
	claims := &auth.Claims{Permissions: []string{"inventory:read"}}
	r := setupWithClaims(claims, RequirePermission("procurement:approve"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "procurement:approve")
}

func TestRequirePermission_AdminWildcard(t *testing.T) {
	claims := &auth.Claims{Permissions: []string{"*"}}
	r := setupWithClaims(claims, RequirePermission("user:manage"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAnyPermission(t *testing.T) {
	claims := &auth.Claims{Permissions: []string{"production:read"}}

	r := setupWithClaims(claims, RequireAnyPermission("inventory:read", "production:read"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	r = setupWithClaims(claims, RequireAnyPermission("inventory:read", "supplier:read"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
