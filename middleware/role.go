package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects callers whose role is not in the allowed set. Must run
// after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(CtxCallerRole)
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient role",
				"code":  "forbidden",
			})
			return
		}
		c.Next()
	}
}
