package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/shared/errors"
)

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ListResponse wraps an unpaginated collection.
type ListResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

func CreatedResponse(c *gin.Context, data any, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}
	SuccessResponse(c, http.StatusCreated, msg, data)
}

func ListSuccessResponse(c *gin.Context, items any, total int, message ...string) {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	SuccessResponse(c, http.StatusOK, msg, ListResponse{Items: items, Total: total})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorResponse writes a generic error for failures raised by the HTTP
// layer itself (rate limiting, panics).
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{Error: &ErrorInfo{Type: "error", Message: message}})
}

// ErrorResponseWithError renders an *AppError with its own status and type.
// Any other error becomes a 500 whose text is not sent to the client.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		appErr = errors.NewInternalError("Internal server error occurred")
	}
	c.JSON(appErr.Code, APIResponse{Error: &ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}
