package apperr

import (
	"errors"
	"net/http"
)

// Error carries the HTTP status a handler should answer with.
type Error struct {
	Status  int
	Message string
	Details interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error      { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error    { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error       { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error        { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error        { return New(http.StatusConflict, message) }
func TooManyRequests(message string) *Error { return New(http.StatusTooManyRequests, message) }

// WithDetails returns a copy of e with details attached.
func (e *Error) WithDetails(details interface{}) *Error {
	return &Error{Status: e.Status, Message: e.Message, Details: details}
}

// As unwraps err into an *Error if one is in the chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
