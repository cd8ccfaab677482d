package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prodflow/internal/domain"
	"prodflow/internal/pkg/response"
)

// RequireRole ensures that the authenticated user holds one of the given
// roles. Superadmin always passes.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		actual := domain.UserRole(role.(string))
		if actual == domain.RoleSuperadmin {
			c.Next()
			return
		}
		for _, r := range roles {
			if actual == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// SuperadminOnly restricts the route to superadmin users.
func SuperadminOnly() gin.HandlerFunc {
	return RequireRole()
}
