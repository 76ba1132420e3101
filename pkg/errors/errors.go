// Package errors provides structured error types for the materias tooling.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSubjectNotFound, "unknown subject: %s", code)
//	if errors.Is(err, errors.ErrCodeSubjectNotFound) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidCatalog, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidCatalog    Code = "INVALID_CATALOG"
	ErrCodeInvalidReference  Code = "INVALID_REFERENCE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidExpression Code = "INVALID_EXPRESSION"
	ErrCodeInvalidCode       Code = "INVALID_CODE"

	// Resource not found errors
	ErrCodeSubjectNotFound Code = "SUBJECT_NOT_FOUND"
	ErrCodeProfileNotFound Code = "PROFILE_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Prerequisite graph diagnostics
	ErrCodeCycle              Code = "CYCLE"
	ErrCodeUnknownRequirement Code = "UNKNOWN_REQUIREMENT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// List collects non-fatal errors reported while loading or validating data.
// A nil or empty List is not an error; use [List.Err] to get a value suitable
// for returning.
type List []error

// Add appends err to the list, ignoring nil.
func (l *List) Add(err error) {
	if err != nil {
		*l = append(*l, err)
	}
}

// Err returns nil for an empty list and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error joins the messages of all collected errors, one per line.
func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (l List) Unwrap() []error { return l }

// Process exit codes for the CLI.
const (
	ExitFailure = 1 // Any failure without a more specific status
	ExitData    = 2 // The catalog or profiles are inconsistent
	ExitUsage   = 3 // Bad flags, arguments or expressions
)

// ExitCode maps err to a process exit status. Nil maps to zero.
func ExitCode(err error) int {
	switch GetCode(err) {
	case "":
		if err == nil {
			return 0
		}
		return ExitFailure
	case ErrCodeInvalidReference, ErrCodeInvalidCatalog, ErrCodeCycle, ErrCodeUnknownRequirement:
		return ExitData
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidExpression, ErrCodeInvalidCode,
		ErrCodeSubjectNotFound, ErrCodeProfileNotFound:
		return ExitUsage
	default:
		return ExitFailure
	}
}
