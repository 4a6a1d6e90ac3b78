package middleware

import (
	"github.com/gin-gonic/gin"
)

// UserIdHeaders lists the headers checked for the calling user, in order.
var UserIdHeaders = []string{"X-USER-ID", "X-MAILFLOW-USER-ID"}

func UserIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := ""
		for _, header := range UserIdHeaders {
			if value := c.GetHeader(header); value != "" {
				userId = value
				break
			}
		}

		// Store in gin context for later use
		c.Set("UserId", userId)
		c.Next()
	}
}
