// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/syukri21/chat/internal/pkg/apperr"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response.
func Error(c *gin.Context, code int, message string) {
	c.Abort()
	c.JSON(code, Response{
		Success: false,
		Message: message,
	})
}

// FromError maps a service error onto its HTTP status and caller-safe
// message. Internal causes never leak into the body.
func FromError(c *gin.Context, err error) {
	Error(c, apperr.HTTPStatus(err), apperr.PublicMessage(err))
}
