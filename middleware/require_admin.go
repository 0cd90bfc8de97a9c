package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles пропускает запрос только при одной из перечисленных ролей.
// Ставится после AuthMiddleware.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "роль пользователя не определена"})
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ошибка обработки роли пользователя"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "недостаточно прав для этого действия"})
		c.Abort()
	}
}
