package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

const (
	ErrorCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON       ErrorCode = "INVALID_JSON"
	ErrorCodeCandidateNotFound ErrorCode = "CANDIDATE_NOT_FOUND"
	ErrorCodeLoadFailed        ErrorCode = "LOAD_FAILED"
)

// APIError is the JSON error envelope.
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SendError writes an error envelope with the request ID attached.
func SendError(c *gin.Context, status int, code ErrorCode, message string) {
	resp := &APIError{
		Error:     http.StatusText(status),
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
	if id, ok := c.Get("request_id"); ok {
		if s, ok := id.(string); ok {
			resp.RequestID = s
		}
	}
	c.AbortWithStatusJSON(status, resp)
}
