// Package errors provides structured error types for the seatplan engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI, and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - CONFIG_*: Declarative table/rule configuration failures
//   - NOT_FOUND_*: Table, seat, or guest id does not resolve
//   - MODE_VIOLATION / LOCKED_SEAT: Assignment constraint failures
//   - INTERNAL_*: Unexpected internal errors
//
// All assignment-time failures are recoverable: they are reported as
// structured results to the caller and never abort the session.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfigInvalid, "side %q declares %d seats", side, n)
//	if errors.Is(err, errors.ErrCodeConfigInvalid) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "load plan %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors, detected statically before seats are built
	ErrCodeConfigInvalid Code = "CONFIG_INVALID"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeTableNotFound Code = "TABLE_NOT_FOUND"
	ErrCodeSeatNotFound  Code = "SEAT_NOT_FOUND"
	ErrCodeGuestNotFound Code = "GUEST_NOT_FOUND"
	ErrCodePlanNotFound  Code = "PLAN_NOT_FOUND"

	// Assignment constraint errors
	ErrCodeModeViolation Code = "MODE_VIOLATION"
	ErrCodeLockedSeat    Code = "LOCKED_SEAT"

	// Persistence and cache errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
