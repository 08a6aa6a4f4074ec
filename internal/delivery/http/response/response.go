package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with. The request id is
// echoed back when the middleware assigned one, so a client error report
// can be matched to the server-side log lines.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// RequestIDFrom returns the id stamped on the context, or "" when the
// request never passed through the id middleware.
func RequestIDFrom(c *gin.Context) string {
	v, _ := c.Get("RequestID")
	id, _ := v.(string)
	return id
}

// Success sends a success envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: RequestIDFrom(c),
	})
}

// Error sends an error envelope.
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: RequestIDFrom(c),
	})
}
