package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorDetail is the error body of the guest-facing API:
// {"detail": {"message": ..., "code": "MESA_NOT_FOUND"}}.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondDetailCode writes the coded detail object used by the guest flow.
func RespondDetailCode(c *gin.Context, status int, message, code string) {
	c.JSON(status, gin.H{"detail": ErrorDetail{Message: message, Code: code}})
}

// RespondDetail writes the plain-string detail body (400/500 shapes).
func RespondDetail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}
