// Package errors provides structured errors with stable codes so that
// callers and tests can match on the category of a failure rather than
// its message.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Scanning errors (fatal for the run)
	ErrScanRoot ErrorCode = "SCAN_ROOT"
	ErrScanWalk ErrorCode = "SCAN_WALK"

	// Parsing errors (local to one line)
	ErrParseLine ErrorCode = "PARSE_LINE"
	ErrParseRead ErrorCode = "PARSE_READ"

	// Execution errors (local to one spec)
	ErrExecBackup   ErrorCode = "EXEC_BACKUP"
	ErrExecRemove   ErrorCode = "EXEC_REMOVE"
	ErrExecSymlink  ErrorCode = "EXEC_SYMLINK"
	ErrExecReadlink ErrorCode = "EXEC_READLINK"

	// Prompt errors
	ErrPromptRead ErrorCode = "PROMPT_READ"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Filesystem errors
	ErrDirCreate ErrorCode = "DIR_CREATE"
)

// SlsError represents a structured error with code and details
type SlsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SlsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SlsError) Unwrap() error {
	return e.Wrapped
}

// Is matches two SlsErrors on code equality
func (e *SlsError) Is(target error) bool {
	var targetErr *SlsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SlsError with the given code and message
func New(code ErrorCode, message string) *SlsError {
	return &SlsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SlsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SlsError {
	return &SlsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an SlsError
func Wrap(err error, code ErrorCode, message string) *SlsError {
	if err == nil {
		return nil
	}
	return &SlsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SlsError {
	if err == nil {
		return nil
	}
	return &SlsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SlsError) WithDetail(key string, value interface{}) *SlsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not SlsErrors.
func GetCode(err error) ErrorCode {
	var slsErr *SlsError
	if errors.As(err, &slsErr) {
		return slsErr.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
