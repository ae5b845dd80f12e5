// Package response defines the JSON envelope shared by every handler:
// {"success": true, ...} on success, {"success": false, "message": ...} on
// failure. Nothing else ever reaches the client.
package response

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
