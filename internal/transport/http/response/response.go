package response

import "github.com/gin-gonic/gin"

// OK writes a 200 envelope with success=true merged into the payload
// fields at the top level, matching the public API contract.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(200, body)
}

// Error writes a failure envelope. 4xx means the caller's input was the
// problem; 5xx means the server or model was.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"error":   message,
	})
}
