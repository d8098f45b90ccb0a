package middleware

import (
	"net/http"
	"strings"

	"agendly/models"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ScopeKey is the gin context key holding the caller's models.Scope.
	ScopeKey = "scope"
	// RoleKey is the gin context key holding the caller's staff role.
	RoleKey = "role"

	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// StaffAuthMiddleware validates the bearer token and installs the caller's
// tenant/unit scope on the request context. Every staff route sits behind
// this middleware; handlers read the scope instead of trusting path or body
// identifiers for tenancy.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ParseStaffToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		scope, err := models.NewScope(claims.TenantID, claims.UnitID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(ScopeKey, scope)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// AdminOnly rejects callers whose staff token does not carry the admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(RoleKey)
		if role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrative role required"})
			return
		}
		c.Next()
	}
}

// ScopeFrom extracts the caller's scope installed by StaffAuthMiddleware.
func ScopeFrom(c *gin.Context) (models.Scope, bool) {
	v, ok := c.Get(ScopeKey)
	if !ok {
		return models.Scope{}, false
	}
	scope, ok := v.(models.Scope)
	return scope, ok
}

// RoleFrom extracts the caller's staff role.
func RoleFrom(c *gin.Context) string {
	v, ok := c.Get(RoleKey)
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}
