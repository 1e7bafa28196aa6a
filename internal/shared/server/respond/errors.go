package respond

import (
	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/telemetry"
)

// ErrorResponse is the standardized error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Error sends a standardized error response and logs it with request context.
func Error(c *gin.Context, status int, message string, detail string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if detail != "" {
		fields["error"] = detail
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
