package middleware

import (
	"net/http"
	"strings"

	"rentora/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	CtxCallerID   = "callerID"
	CtxCallerRole = "callerRole"
)

// AuthMiddleware extracts the authenticated caller identity and role from the
// bearer token. Identity management itself lives with the auth collaborator;
// the booking core only consumes (callerID, role).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  "unauthorized",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		callerID, role, err := utils.ExtractCallerFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  "unauthorized",
			})
			return
		}

		c.Set(CtxCallerID, callerID)
		c.Set(CtxCallerRole, role)
		c.Next()
	}
}
