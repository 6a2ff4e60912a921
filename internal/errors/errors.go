// Package errors provides standardized domain errors with codes for bookbinder.
//
// Usage:
//
//	// In components - return typed errors
//	if !namePattern.MatchString(stem) {
//	    return errors.Formatf("bad track name %q", stem)
//	}
//
//	// In main - check with errors.Is
//	if errors.Is(err, errors.ErrCacheCorrupt) {
//	    log.Error("delete the cache file and rebuild", "error", err)
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    os.Exit(domainErr.Code.ExitCode())
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeFormat       Code = "FORMAT"
	CodeProbe        Code = "PROBE"
	CodeCacheCorrupt Code = "CACHE_CORRUPT"
	CodeIO           Code = "IO"
	CodeValidation   Code = "VALIDATION"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL"
)

// ExitCode returns the process exit code for an error code.
// Every build failure is fatal; distinct codes let scripts tell
// a malformed filename apart from a broken cache.
func (c Code) ExitCode() int {
	switch c {
	case CodeFormat:
		return 2
	case CodeProbe:
		return 3
	case CodeCacheCorrupt:
		return 4
	case CodeIO:
		return 5
	case CodeValidation:
		return 6
	case CodeConflict:
		return 7
	default:
		return 1
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// ExitCode returns the process exit code for this error.
func (e *Error) ExitCode() int {
	return e.Code.ExitCode()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrFormat       = &Error{Code: CodeFormat, Message: "malformed track name"}
	ErrProbe        = &Error{Code: CodeProbe, Message: "duration probe failed"}
	ErrCacheCorrupt = &Error{Code: CodeCacheCorrupt, Message: "duration cache corrupt"}
	ErrIO           = &Error{Code: CodeIO, Message: "io error"}
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConflict     = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInternal     = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// Format creates a malformed track name error.
func Format(msg string) *Error {
	return &Error{Code: CodeFormat, Message: msg}
}

// Formatf creates a malformed track name error with formatted message.
func Formatf(format string, args ...any) *Error {
	return &Error{Code: CodeFormat, Message: fmt.Sprintf(format, args...)}
}

// Probe creates a duration probe error.
func Probe(msg string) *Error {
	return &Error{Code: CodeProbe, Message: msg}
}

// Probef creates a duration probe error with formatted message.
func Probef(format string, args ...any) *Error {
	return &Error{Code: CodeProbe, Message: fmt.Sprintf(format, args...)}
}

// CacheCorrupt creates a corrupt cache error.
func CacheCorrupt(msg string) *Error {
	return &Error{Code: CodeCacheCorrupt, Message: msg}
}

// CacheCorruptf creates a corrupt cache error with formatted message.
func CacheCorruptf(format string, args ...any) *Error {
	return &Error{Code: CodeCacheCorrupt, Message: fmt.Sprintf(format, args...)}
}

// IO creates an io error.
func IO(msg string) *Error {
	return &Error{Code: CodeIO, Message: msg}
}

// IOf creates an io error with formatted message.
func IOf(format string, args ...any) *Error {
	return &Error{Code: CodeIO, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Conflictf creates a conflict error with formatted message.
func Conflictf(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// ExitCode returns the exit code for any error.
// Domain errors map through their code; everything else is 1; nil is 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return 1
}
