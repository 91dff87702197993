package middleware

import (
	"net/http"

	"bookwise/models"
	"bookwise/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "No user or role found"})
			return
		}
		for _, r := range roles {
			if string(r) == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Insufficient role for this resource"})
	}
}
