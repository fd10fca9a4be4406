package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/replyradar/replyradar/internal/utils"
)

// UserIdMiddleware resolves the caller's user id from the request headers
// and stores it in the gin context before the custom context is built.
func UserIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := ""
		for _, header := range utils.UserIdHeaders {
			if value := c.GetHeader(header); value != "" {
				userId = value
				break
			}
		}

		c.Set("UserId", userId)
		c.Next()
	}
}
