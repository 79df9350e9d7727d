// Package errors defines structured error types for item generation.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode defines specific error types.
type ErrorCode string

const (
	// ErrMalformedRecord is returned when a persisted item cannot be parsed.
	ErrMalformedRecord ErrorCode = "MALFORMED_RECORD"
	// ErrParentNotFound is returned when the configured parent record does not exist.
	ErrParentNotFound ErrorCode = "PARENT_NOT_FOUND"
	// ErrUnresolvedParent is returned when neither a parent nor an output path is configured.
	ErrUnresolvedParent ErrorCode = "UNRESOLVED_PARENT"
	// ErrNoOutputPath is returned when the write sink has no path to write to.
	ErrNoOutputPath ErrorCode = "NO_OUTPUT_PATH"
	// ErrInvalidConfig is returned when the configuration file fails validation.
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Error is a concrete error type with code, message and optional details.
type Error struct {
	code       ErrorCode
	message    string
	details    map[string]any
	wrappedErr error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		code:    code,
		message: message,
		details: make(map[string]any),
	}
}

// WithDetail adds a single detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.details == nil {
		e.details = make(map[string]any)
	}
	e.details[key] = value
	return e
}

// Wrap wraps an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.wrappedErr = err
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrappedErr)
	}
	return e.message
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Details returns additional error details.
func (e *Error) Details() map[string]any {
	return e.details
}

// Unwrap returns the wrapped error if any.
func (e *Error) Unwrap() error {
	return e.wrappedErr
}

// HasCode reports whether err or any error it wraps is an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.code == code {
			return true
		}
		err = e.wrappedErr
	}
	return false
}

// Predefined error constructors for common cases

// MalformedRecord creates an error for an unparsable item record.
func MalformedRecord(source string, err error) *Error {
	msg := "malformed item record"
	if source != "" {
		msg = fmt.Sprintf("malformed item record %s", source)
	}
	return New(ErrMalformedRecord, msg).WithDetail("source", source).Wrap(err)
}

// ParentNotFound creates an error for a missing parent record.
func ParentNotFound(itemPath, parentPath string) *Error {
	return New(ErrParentNotFound, fmt.Sprintf("could not find parent item for %s at %s", itemPath, parentPath)).
		WithDetail("item", itemPath).
		WithDetail("parent", parentPath)
}

// UnresolvedParent creates an error for a file whose parent cannot be determined.
func UnresolvedParent(itemPath string) *Error {
	return New(ErrUnresolvedParent, fmt.Sprintf("cannot resolve parent item for %s", itemPath)).
		WithDetail("item", itemPath)
}

// NoOutputPath creates an error for a write without a resolved destination.
func NoOutputPath(source string) *Error {
	return New(ErrNoOutputPath, fmt.Sprintf("cannot write item for %s without parentItem or outputPath resolving to a path", source)).
		WithDetail("source", source)
}

// InvalidConfig creates a configuration validation error.
func InvalidConfig(message string) *Error {
	return New(ErrInvalidConfig, message)
}
