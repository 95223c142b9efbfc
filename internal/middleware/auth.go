package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenAuthMiddleware - проверка статического Bearer-токена query API.
// Тексты ответов повторяют контракт клиентов: "Token is missing!" /
// "Token is invalid!".
func TokenAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is missing!"})
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Bearer token malformed"})
			return
		}
		if !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token type. Use Bearer token."})
			return
		}
		if parts[1] != secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is invalid!"})
			return
		}

		c.Next()
	}
}

// AdminTokenMiddleware - проверка токена админских ручек:
// ?token= либо заголовок X-API-Token, при несовпадении 403.
func AdminTokenMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = c.GetHeader("X-API-Token")
		}
		if token != secret {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
