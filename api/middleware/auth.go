package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"gather/db"
	"gather/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware проверяет Bearer-токен по таблице user_tokens и кладет
// user_id в контекст запроса. Заголовок X-User-ID оставлен как упрощенный
// путь для тестов.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDHeader := c.GetHeader("X-User-ID")
		if userIDHeader != "" {
			userID, err := strconv.ParseInt(userIDHeader, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid X-User-ID format"})
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			auth := services.NewAuthService(db.GetReadOnlyDB(c.Request.Context()))
			userID, err := auth.ResolveToken(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
		c.Abort()
	}
}
