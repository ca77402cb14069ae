package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes carried in the error envelope.
const (
	CodeNotFound     = "not_found"
	CodeBadRequest   = "bad_request"
	CodeServiceDown  = "service_down"
	CodeDeleteFailed = "delete_failed"
	CodeInternal     = "internal"
)

// MsgServiceDown is returned when an aggregation degraded to its fallback.
const MsgServiceDown = "Service down, please try again later"

type (
	// APIError is the body of an error reply.
	APIError struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	}

	// ErrorEnvelope wraps every error reply.
	ErrorEnvelope struct {
		Error APIError `json:"error"`
	}
)

// RespondError writes an error envelope and aborts the chain.
func RespondError(c *gin.Context, status int, code, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}

	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{Message: msg, Code: code},
	})
}

// RespondOK writes payload as JSON with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
