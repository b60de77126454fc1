package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps err to its status code. Errors outside the business taxonomy
// are reported as a generic 500 and attached to the gin context for logging.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) && be.Kind != KindInternal {
		Write(c, StatusFor(err), be.Code, be.Error())
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", "An unexpected error occurred.")
}
