package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NewValidation(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func NewNotFound(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

// NewConflict marks a uniqueness violation. Toggle operations absorb these
// instead of surfacing them: losing the race means the other writer already
// produced the state this writer wanted.
func NewConflict(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func NewForbidden(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

func statusCodeIs(err error, code int) bool {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode == code
	}
	return false
}

func IsNotFound(err error) bool {
	return statusCodeIs(err, http.StatusNotFound)
}

func IsConflict(err error) bool {
	return statusCodeIs(err, http.StatusConflict)
}

func IsValidation(err error) bool {
	return statusCodeIs(err, http.StatusBadRequest)
}
