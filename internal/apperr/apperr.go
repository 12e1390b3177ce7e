// Package apperr defines the error taxonomy shared by repositories, use cases
// and presentation state holders.
//
// Repositories wrap storage failures in CreateFailed, UpdateFailed,
// DeleteFailed or Unknown errors; use cases add NotFound when a lookup by id
// yields nothing. Callers match with errors.Is against the sentinels:
//
//	if errors.Is(err, apperr.ErrNotFound) {
//	    ...
//	}
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeCreateFailed Code = "CREATE_FAILED"
	CodeUpdateFailed Code = "UPDATE_FAILED"
	CodeDeleteFailed Code = "DELETE_FAILED"
	CodeValidation   Code = "VALIDATION"
	CodeUnknown      Code = "UNKNOWN"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeCreateFailed, CodeUpdateFailed, CodeDeleteFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// Sentinels for errors.Is.
var (
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrCreateFailed = &Error{Code: CodeCreateFailed, Message: "create failed"}
	ErrUpdateFailed = &Error{Code: CodeUpdateFailed, Message: "update failed"}
	ErrDeleteFailed = &Error{Code: CodeDeleteFailed, Message: "delete failed"}
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation error"}
	ErrUnknown      = &Error{Code: CodeUnknown, Message: "unknown error"}
)

// NotFoundf creates a not found error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// CreateFailed wraps a failed insert.
func CreateFailed(err error, what string) *Error {
	return &Error{Code: CodeCreateFailed, Message: "create " + what, cause: err}
}

// UpdateFailed wraps a failed update.
func UpdateFailed(err error, what string) *Error {
	return &Error{Code: CodeUpdateFailed, Message: "update " + what, cause: err}
}

// DeleteFailed wraps a failed delete.
func DeleteFailed(err error, what string) *Error {
	return &Error{Code: CodeDeleteFailed, Message: "delete " + what, cause: err}
}

// Unknown wraps any other failure, typically a read.
func Unknown(err error, what string) *Error {
	return &Error{Code: CodeUnknown, Message: what, cause: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
