package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/shared/telemetry"
	"menshealth-backend/internal/shared/validation"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response. 5xx responses log at error level.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest reports a malformed or invalid request body. Validator
// errors are expanded into per-field details.
func BadRequest(c *gin.Context, message string, err error) {
	var details interface{}
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		details = fields
	}
	Error(c, http.StatusBadRequest, "invalid_request", message, details)
}

// Internal reports an unexpected failure without leaking its cause.
func Internal(c *gin.Context, err error) {
	if err != nil {
		telemetry.Error("http.internal", map[string]any{
			"error":      err,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("requestId"),
		})
	}
	Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
}
