package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when permission is denied (optional)
	OnDenied func(c *gin.Context, requiredPerms []string)
}

// RequirePermission creates middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return RequireAnyPermission(permission)
}

// RequireAnyPermission creates middleware that requires any of the specified
// permissions. The user must hold at least one to proceed.
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return RequireAnyPermissionWithConfig(PermissionConfig{}, permissions...)
}

// RequireAnyPermissionWithConfig creates middleware that requires any of the
// specified permissions with custom config
func RequireAnyPermissionWithConfig(cfg PermissionConfig, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, cfg, permissions, "No authentication claims found")
			return
		}

		if !claims.HasAnyPermission(permissions...) {
			handlePermissionDenied(c, cfg, permissions, "User lacks required permission")
			return
		}

		c.Next()
	}
}

// RequireResource creates middleware that checks permission for a resource
// with the action derived from the HTTP method:
// GET -> read, POST -> create, PUT/PATCH -> update, DELETE -> delete
func RequireResource(resource string) gin.HandlerFunc {
	return RequireResourceWithConfig(resource, PermissionConfig{})
}

// RequireResourceWithConfig creates resource permission middleware with custom config
func RequireResourceWithConfig(resource string, cfg PermissionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		permission := resource + ":" + methodToAction(c.Request.Method)

		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, cfg, []string{permission}, "No authentication claims found")
			return
		}

		if !claims.HasPermission(permission) {
			handlePermissionDenied(c, cfg, []string{permission}, "User lacks required permission for resource")
			return
		}

		c.Next()
	}
}

// RequireResourceAction creates middleware that checks a specific resource:action permission
func RequireResourceAction(resource, action string) gin.HandlerFunc {
	return RequirePermission(resource + ":" + action)
}

// methodToAction converts HTTP method to permission action
func methodToAction(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// handlePermissionDenied handles permission denied scenarios
func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, requiredPerms []string, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, requiredPerms)
		return
	}

	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		if claims != nil {
			userID = claims.UserID
		}

		cfg.Logger.Warn("Permission denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.Strings("required_permissions", requiredPerms),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: insufficient permissions",
		},
	})
}

// HasPermission is a helper function to check permission in handlers
func HasPermission(c *gin.Context, permission string) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return claims.HasPermission(permission)
}

// HasAnyPermission is a helper function to check if the user has any of the permissions
func HasAnyPermission(c *gin.Context, permissions ...string) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return claims.HasAnyPermission(permissions...)
}
