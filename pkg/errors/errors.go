// Package errors provides structured error types shared across the
// BioFabric core, CLI, and API layers.
//
// This package defines error codes and a typed wrapper that enable:
//   - Consistent error handling across the layout, alignment, and render
//     pipelines
//   - Machine-readable error codes for programmatic handling (errors.Is)
//   - User-friendly, single-line error messages
//   - Error wrapping with context and operation preservation
//
// # Error Codes
//
// The core recognizes exactly five error kinds:
//   - INVALID_INPUT: a parsed file or supplied parameter is malformed
//   - CRITERIA_NOT_MET: a layout or alignment precondition fails
//   - NOT_FOUND: a queried node, link, session, or file is absent
//   - CANCELLED: a cooperative progress handle signaled cancellation
//   - INTERNAL: an invariant was broken
//
// Parsers recover locally from INVALID_INPUT where a line can be skipped;
// layout and merge operations fail fast on CRITERIA_NOT_MET and INTERNAL.
// CANCELLED always propagates with no partial output.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCriteriaNotMet, "control_top requires a directed network")
//	if errors.Is(err, errors.ErrCodeCriteriaNotMet) {
//	    // handle precondition failure
//	}
//
//	// Wrap an existing error, attaching the failing operation
//	err := errors.Wrap(errors.ErrCodeNotFound, origErr, "node %q", id).WithOp("graph.Neighbors")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// The five error codes recognized by the core.
const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeCriteriaNotMet Code = "CRITERIA_NOT_MET"
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeCancelled      Code = "CANCELLED"
	ErrCodeInternal       Code = "INTERNAL"
)

// Error is a structured error with a code, an optional operation label,
// and an optional wrapped cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Op      string // Operation that failed, e.g. "graph.AddLink"
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface with a single-line message.
func (e *Error) Error() string {
	prefix := string(e.Code)
	if e.Op != "" {
		prefix = fmt.Sprintf("%s: %s", e.Code, e.Op)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithOp attaches an operation label and returns the receiver, so it can
// be chained at the call site where the operation name is known:
//
//	return errors.New(errors.ErrCodeNotFound, "node %q", id).WithOp("graph.Neighbors")
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
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
