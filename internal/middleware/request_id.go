package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a request identifier to the context and echoes it in
// the response, generating one when the client did not send any.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request identifier set by RequestID.
func GetRequestID(c *gin.Context) (string, bool) {
	id, exists := c.Get("request_id")
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
