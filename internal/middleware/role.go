package middleware

import (
	"net/http"

	"meetspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAnyRole ensures the authenticated user holds one of the listed
// roles.
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !allowed[role.(string)] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly restricts topology writes to administrators.
func AdminOnly() gin.HandlerFunc {
	return RequireAnyRole("admin")
}

// ApproverOnly restricts approval decisions to approvers and admins.
func ApproverOnly() gin.HandlerFunc {
	return RequireAnyRole("approver", "admin")
}
