package utils

import (
	"github.com/gin-gonic/gin"
)

type contextKey string

const RequestIDKey contextKey = "requestID"

// GetRequestID returns the id assigned by the request-id middleware, or "".
func GetRequestID(c *gin.Context) string {
	id, exists := c.Get(string(RequestIDKey))
	if !exists {
		return ""
	}
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}
