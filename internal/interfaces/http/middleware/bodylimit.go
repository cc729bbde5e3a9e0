package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopcrm/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size.
// Requests announcing a larger Content-Length are rejected up front; streamed
// bodies are cut off by http.MaxBytesReader and surface as a bind error.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodePayloadTooLarge,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
