// internal/pkg/response/response.go
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	xerrors "jvhelp-service/internal/pkg/errors"
)

// Generic messages; callers never see which check failed.
const (
	MsgInvalidCredentials = "invalid credentials"
	MsgInvalidToken       = "invalid or expired token"
	MsgInternal           = "internal server error"
)

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes {success:true, ...fields}. Fields are merged at the top level.
func Success(c *gin.Context, status int, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}

	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Data writes a plain JSON payload (public read endpoints).
func Data(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Error aborts the chain and writes {error: message}.
func Error(c *gin.Context, code int, message string) {
	// Abort before writing so later handlers don't append to the body
	c.Abort()
	c.JSON(code, ErrorBody{Error: message})
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Internal sends the generic 500 envelope.
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, MsgInternal)
}

// FromError maps a service error onto the envelope.
func FromError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		ValidationError(c, xerrors.InputMessage(err, "invalid input"))
	case xerrors.Is(err, xerrors.ErrInvalidCredentials):
		Unauthorized(c, MsgInvalidCredentials)
	case xerrors.IsAuthFailure(err):
		Unauthorized(c, MsgInvalidToken)
	case xerrors.Is(err, xerrors.ErrNotFound):
		NotFound(c, notFoundMsg)
	case xerrors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusConflict, "resource already exists")
	default:
		Internal(c)
	}
}

// IsClientError reports whether err maps to a 4xx, i.e. is not worth an
// error log.
func IsClientError(err error) bool {
	return xerrors.Is(err, xerrors.ErrInvalidInput) ||
		xerrors.IsAuthFailure(err) ||
		xerrors.Is(err, xerrors.ErrNotFound) ||
		xerrors.Is(err, xerrors.ErrConflict)
}
