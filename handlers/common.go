package handlers

import "github.com/gin-gonic/gin"

const (
	// Predefined messages
	msgNotFound     = "File not found"
	msgInvalidID    = "Invalid file id"
	msgInvalidName  = "Invalid file name"
	msgDBError1     = "DB Error 1"
	msgDBError2     = "DB Error 2"
	msgDBError3     = "DB Error 3"
	msgStorageError = "Storage Error"
	msgNotAnImage   = "Not an image"
)

func (h *Handlers) message(msg string) gin.H {
	return gin.H{h.Variant.MessageKey: msg}
}

// errorMessage carries the text under both the variant's message key and "error",
// so clients of either application can display it
func (h *Handlers) errorMessage(msg string) gin.H {
	return gin.H{h.Variant.MessageKey: msg, "error": msg}
}
