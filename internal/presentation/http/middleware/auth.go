package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/presentation/http/dto/response"
	"github.com/sangkips/restopos/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	ProfileIDKey   = "profile_id"
	ProfileNameKey = "profile_name"
	ProfileRoleKey = "profile_role"
)

// PermissionSource resolves the role to area table.
type PermissionSource interface {
	RolePermissions(ctx context.Context) service.RolePermissions
}

// AuthMiddleware requires a valid profile token issued by the unlock
// endpoint.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ProfileIDKey, claims.ProfileID)
		c.Set(ProfileNameKey, claims.Name)
		c.Set(ProfileRoleKey, claims.Role)

		c.Next()
	}
}

// RequireArea rejects profiles whose role may not open area. The table is
// read from the stored preferences on every request so edits apply at once.
func RequireArea(perms PermissionSource, area string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ProfileRoleKey)
		if role == "" {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		if !perms.RolePermissions(c.Request.Context()).Allows(role, area) {
			response.Forbidden(c, "You do not have access to "+area)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAreaWhen applies RequireArea only to requests match accepts.
func RequireAreaWhen(perms PermissionSource, area string, match func(c *gin.Context) bool) gin.HandlerFunc {
	guard := RequireArea(perms, area)
	return func(c *gin.Context) {
		if match(c) {
			guard(c)
			return
		}
		c.Next()
	}
}
