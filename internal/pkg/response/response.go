// Package response writes the JSON envelope every handler uses:
// {"success":true,"data":...} on the happy path, or
// {"success":false,"error":{"code","message","details"?}} where code is a
// stable machine-readable string (BOOKING_CONFLICT, VALIDATION_ERROR, ...).
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails attaches a structured payload, e.g. the per-occurrence
// conflict list on a booking conflict.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
