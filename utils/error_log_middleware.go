package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

const maxLoggedBody = 512

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	if status := w.gc.Writer.Status(); status >= 400 {
		body := b
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		log.Printf("[DEBUG ERROR]: %s %s, Request %s, Status %d, Body: %s",
			w.gc.Request.Method, w.gc.Request.URL.Path, w.gc.GetString(RequestIDKey), status, body)
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs the body of every 4xx/5xx response. Doesn't work with GZIP.
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Next()
}
