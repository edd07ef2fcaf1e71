package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a reel error code.
type ErrorCode string

const (
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"  // 400
	ErrNotFound      ErrorCode = "NOT_FOUND"      // 404
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS" // 409
	ErrInternal      ErrorCode = "INTERNAL"       // 500
)

// ReelError represents a structured error with code, status, and details.
type ReelError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ReelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidInput creates a 400 error for rejected parameters.
func NewInvalidInput(msg string) *ReelError {
	return &ReelError{
		Code:    ErrInvalidInput,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unknown entry, category, playlist or comment.
// kind names what was looked up ("entry", "playlist", ...).
func NewNotFound(kind, identifier string) *ReelError {
	return &ReelError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewAlreadyExists creates a 409 error for name or id collisions.
func NewAlreadyExists(kind, identifier string) *ReelError {
	return &ReelError{
		Code:    ErrAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("%s already exists: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ReelError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ReelError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err (or anything it wraps) is a ReelError with the given code.
func Is(err error, code ErrorCode) bool {
	var rErr *ReelError
	if stderrors.As(err, &rErr) {
		return rErr.Code == code
	}
	return false
}

// As returns the ReelError inside err, if any.
func As(err error) (*ReelError, bool) {
	var rErr *ReelError
	if stderrors.As(err, &rErr) {
		return rErr, true
	}
	return nil, false
}
