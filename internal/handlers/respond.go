package handlers

import (
	"github.com/gin-gonic/gin"
)

// respond writes the standard success envelope: the HTTP status is
// mirrored in the body and error is always false.
func respond(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, gin.H{
		"status":  statusCode,
		"data":    data,
		"message": message,
		"error":   false,
	})
}
