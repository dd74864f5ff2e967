package middleware

import (
	"net/http"

	"wallet-service/pkg/apperror"
	"wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize returns middleware that limits the request body size.
// A declared Content-Length over the limit is rejected with 413 up front;
// otherwise the reader fails once the limit is crossed.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.ErrPayloadTooLarge())
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
