package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes caps request bodies; the largest payload is a bounty
// description of 2000 characters.
const DefaultMaxBodyBytes = 64 << 10

// MaxBodySize returns middleware that limits the request body size.
// Once the limit is exceeded the reader returns an error and binding fails.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error_code": "PAY_002",
				"message":    "Request body too large",
			})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
