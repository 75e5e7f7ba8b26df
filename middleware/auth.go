package middleware

import (
	"net/http"
	"strings"

	"carematch/utils"

	"github.com/gin-gonic/gin"
)

// OperatorAuthMiddleware gates the dispatch endpoints behind an operator or
// admin role claim. Authorization policy itself lives upstream; this layer
// only verifies the signed role.
func OperatorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if role != "operator" && role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Operator role required"})
			return
		}

		c.Set("operatorID", subject)
		c.Set("operatorRole", role)
		c.Next()
	}
}
