// Package apperr carries the status code and message that end a request.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%d: %s", e.Status, e.Message) }

func New(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

func MethodNotAllowed(method, path string) *Error {
	return New(http.StatusMethodNotAllowed, "%s not allowed for %s", method, path)
}

// Internal is the message every unexpected failure is reported with.
const Internal = "Something went wrong!"

// From maps any error to a status and message safe to show to the caller.
func From(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, e.Message
	}
	return http.StatusInternalServerError, Internal
}
