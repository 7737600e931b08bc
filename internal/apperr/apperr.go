package apperr

import (
	"errors"
	"net/http"

	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/validation"
)

// Error pairs a public message and HTTP status with the internal cause.
// Only Message and Details are ever sent to clients.
type Error struct {
	Status  int
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

func BadRequest(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

func Unauthorized(message string, err error) *Error {
	return New(http.StatusUnauthorized, message, err)
}

func Forbidden(message string, err error) *Error {
	return New(http.StatusForbidden, message, err)
}

func NotFound(message string, err error) *Error {
	return New(http.StatusNotFound, message, err)
}

func Conflict(message string, err error) *Error {
	return New(http.StatusConflict, message, err)
}

func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Invalid reports a broken domain rule as a 400 carrying the rule's client wording.
func Invalid(err error) *Error {
	msg := domain.UserMessage(err)
	if msg == "" {
		msg = "Invalid request"
	}
	return BadRequest(msg, err)
}

// Validation wraps structured validator issues as a 400
func Validation(verr *validation.Error) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "Validation error",
		Details: verr.Issues,
		Err:     verr,
	}
}

// From normalizes any error into an *Error, defaulting to a generic 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return Validation(verr)
	}
	return Internal("Internal server error", err)
}
