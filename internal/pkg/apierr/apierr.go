package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries an HTTP status and machine-readable code alongside the
// underlying cause. Validation failures additionally carry a field error map
// in the shape clients expect: field name -> list of messages.
type Error struct {
	Status int
	Code   string
	Err    error
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation builds a 400 carrying per-field messages.
func Validation(fields map[string][]string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation_error", Fields: fields}
}

// FieldError is shorthand for a single-field validation failure.
func FieldError(field, message string) *Error {
	return Validation(map[string][]string{field: {message}})
}

func Unauthorized(err error) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "unauthorized", Err: err}
}

func NotFound(err error) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Err: err}
}

func Invalid(code string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Err: err}
}

// From extracts an *Error from err's chain, or nil when absent.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
