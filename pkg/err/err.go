package errprocess

import (
	"errors"
	"fmt"
	"net/http"

	"video_share_service/pkg/logger"
)

// Error carries the HTTP status a failure translates to, the client-facing
// message, and an optional wrapped cause that is logged but never surfaced.
type Error struct {
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap expose the cause for errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// BadRequest malformed or missing input
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized missing/invalid/expired token or bad credentials
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Forbidden role not permitted or resource not visible to caller
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// NotFound entity absent
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Conflict duplicate resource
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// Internal unexpected failure, logged with its cause
func Internal(msg string, cause error) *Error {
	logger.Log.Errorf(msg, cause)
	return &Error{Status: http.StatusInternalServerError, Message: msg, Cause: cause}
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// From 轉換任意 error, 非 *Error 一律視為 Internal
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error", err)
}
