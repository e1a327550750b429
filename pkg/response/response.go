package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

// Envelope is the success contract shared by the director endpoints.
// The legacy failure shape reuses the status field as a numeric HTTP code,
// so failures are rendered through Fail rather than this struct.
type Envelope struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK sends the standard success envelope with an optional payload.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail sends the legacy failure shape: {"status": <code>, "message": <reason>}.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
	})
}

// Error renders any error through the failure shape, mapping unknown
// errors to an internal failure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	Fail(c, appErr.Status, appErr.Message)
}
