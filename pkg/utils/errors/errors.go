package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType uint

const (
	// ErrorTypeUnknown represents an unclassified error
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeInvalidArgument represents an invalid argument error
	ErrorTypeInvalidArgument
	// ErrorTypeNotFound represents a not found error
	ErrorTypeNotFound
	// ErrorTypeTimeout represents a timeout error
	ErrorTypeTimeout
	// ErrorTypeInternal represents an internal error
	ErrorTypeInternal
)

// AppError carries a type alongside the message so callers can map errors
// to transport-level responses without string matching.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new unclassified error.
func New(message string) error {
	return &AppError{Type: ErrorTypeUnknown, Message: message}
}

// Newf creates a new unclassified error from a format string.
func Newf(format string, args ...interface{}) error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with a message, preserving the wrapped error's type
// when it is already an AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	typ := ErrorTypeUnknown
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		typ = appErr.Type
	}
	return &AppError{Type: typ, Message: message, Err: err}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// TypeOf returns the classification of err, or ErrorTypeUnknown when err
// carries none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// IsInvalidArgument reports whether err is classified as an invalid
// argument error.
func IsInvalidArgument(err error) bool {
	return TypeOf(err) == ErrorTypeInvalidArgument
}

// InvalidArgument creates a new InvalidArgument error.
func InvalidArgument(message string) error {
	return &AppError{Type: ErrorTypeInvalidArgument, Message: message}
}

// InvalidArgumentf creates a new InvalidArgument error from a format string.
func InvalidArgumentf(format string, args ...interface{}) error {
	return InvalidArgument(fmt.Sprintf(format, args...))
}

// NotFound creates a new NotFound error.
func NotFound(message string) error {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// Timeout creates a new Timeout error.
func Timeout(message string) error {
	return &AppError{Type: ErrorTypeTimeout, Message: message}
}

// Internal creates a new Internal error.
func Internal(message string) error {
	return &AppError{Type: ErrorTypeInternal, Message: message}
}
