package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID keeps the caller's X-Request-ID or assigns a new one
func RequestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Set(RequestIDKey, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}
