package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the uniform envelope for every endpoint.
type APIResponse[T any] struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
}

// Success writes a success envelope with the given payload.
func Success[T any](c *gin.Context, status int, data T, message string, meta any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes an error envelope.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, errEnvelope(c, status, message, details))
}

// AbortError writes an error envelope and aborts the handler chain;
// for use in middleware.
func AbortError(c *gin.Context, status int, message string, details any) {
	c.AbortWithStatusJSON(status, errEnvelope(c, status, message, details))
}

func errEnvelope(c *gin.Context, status int, message string, details any) APIResponse[any] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     details,
	}
}
