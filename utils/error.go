package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApiError is a typed application error carrying the HTTP status it maps to.
type ApiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(status int, message string) *ApiError {
	return &ApiError{Status: status, Message: message}
}

// ApiResponse is the standard JSON envelope for all endpoints.
type ApiResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// JSONSuccess sends a success envelope.
func JSONSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, ApiResponse{Status: status, Data: data, Message: message})
}

// JSONError sends an error envelope and logs it.
func JSONError(c *gin.Context, status int, message string) {
	GetLogger().Warn(message, zap.Int("status", status), zap.String("path", c.FullPath()))
	c.JSON(status, ApiResponse{Status: status, Message: message})
}

// RespondError maps an error to the envelope: ApiError keeps its status,
// anything else becomes a generic 500.
func RespondError(c *gin.Context, err error) {
	if apiErr, ok := err.(*ApiError); ok {
		JSONError(c, apiErr.Status, apiErr.Message)
		return
	}
	GetLogger().Error("unexpected error", zap.Error(err), zap.String("path", c.FullPath()))
	JSONError(c, http.StatusInternalServerError, "Internal server error")
}

// ErrorHandler is a middleware that catches panics and returns structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, ApiResponse{
					Status:  http.StatusInternalServerError,
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
