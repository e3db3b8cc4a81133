// Package errors defines the coded errors shared by the depdot libraries,
// the CLI, and the HTTP API.
//
// A code says what kind of failure happened; the message says where. The
// API maps codes to HTTP statuses and the CLI maps them to exit codes, so
// library code should always return a coded error at its boundary:
//
//	if err := os.WriteFile(path, dot, 0o644); err != nil {
//	    return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
//	}
//
// Callers test codes with [Is], which looks at every coded error in the
// chain, and still reach the cause with the standard errors.Is:
//
//	errors.Is(err, errors.ErrCodeIO)   // true
//	stderrors.Is(err, fs.ErrPermission) // true for a permission failure
//
// # Codes
//
//   - INVALID_*, MALFORMED_ATOM: the caller supplied bad input ([IsInvalid])
//   - NOT_FOUND, FILE_NOT_FOUND: a named resource does not exist
//   - IO_ERROR: opening, writing, or closing a destination failed
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidArgument  Code = "INVALID_ARGUMENT"
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidGraphName Code = "INVALID_GRAPH_NAME"
	ErrCodeMalformedAtom    Code = "MALFORMED_ATOM"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// I/O errors
	ErrCodeIO Code = "IO_ERROR"

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

// Is reports whether any coded error in err's chain has the given code.
func Is(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if Is(inner, code) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	return false
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost coded error without its
// code prefix or cause, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInvalid reports whether err carries one of the INVALID_* codes or
// MALFORMED_ATOM, i.e. whether the caller supplied bad input.
func IsInvalid(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidArgument, ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeInvalidPath, ErrCodeInvalidGraphName, ErrCodeMalformedAtom:
		return true
	}
	return false
}

// Process exit codes returned by [ExitCode].
const (
	ExitFailure  = 1
	ExitInvalid  = 2
	ExitNotFound = 3
)

// ExitCode maps err to a process exit status: 0 for nil, [ExitInvalid]
// for bad input, [ExitNotFound] for missing resources, else [ExitFailure].
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsInvalid(err):
		return ExitInvalid
	case Is(err, ErrCodeNotFound), Is(err, ErrCodeFileNotFound):
		return ExitNotFound
	default:
		return ExitFailure
	}
}
