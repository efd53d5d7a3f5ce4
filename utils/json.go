package utils

import "github.com/gin-gonic/gin"

// Success writes a success JSON response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

// Fail writes an error JSON response with a stable machine code.
func Fail(c *gin.Context, httpCode int, code string, message string) {
	c.JSON(httpCode, gin.H{
		"success": false,
		"error":   code,
		"message": message,
	})
}
