// Package apperror defines the application error taxonomy shared by the
// service and handler layers.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies an application error for transport mapping.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeInternal     Code = "internal"
)

// FieldError attributes a validation failure to a specific input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error type. Validation errors carry the full
// list of failing fields so callers can report every problem at once.
type Error struct {
	Code    Code
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
		}
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(msgs, "; "))
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidation creates a validation error carrying one or more field errors.
func NewValidation(fields ...FieldError) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// NewValidationMessage creates a single-field validation error.
func NewValidationMessage(field, message string) *Error {
	return NewValidation(FieldError{Field: field, Message: message})
}

// NewNotFound creates a not-found error for the given resource and id.
func NewNotFound(resource, id string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewConflict creates a conflict error.
func NewConflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// NewUnauthorized creates an unauthorized error.
func NewUnauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// NewForbidden creates a forbidden error.
func NewForbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// CodeOf extracts the application error code, defaulting to CodeInternal
// for errors outside the taxonomy.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
