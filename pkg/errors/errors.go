package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the fatal tier. Per-task failures are never errors; they
// are reported as a task status instead.
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"
	ErrHomeDir  ErrorCode = "HOME_DIR"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrInvalidMode   ErrorCode = "INVALID_MODE"

	// Task file errors
	ErrTaskFileOpen  ErrorCode = "TASK_FILE_OPEN"
	ErrTaskFileParse ErrorCode = "TASK_FILE_PARSE"

	// Template errors
	ErrTemplateLoad ErrorCode = "TEMPLATE_LOAD"

	// Execution environment errors
	ErrParentDir   ErrorCode = "PARENT_DIR"
	ErrShellLaunch ErrorCode = "SHELL_LAUNCH"

	// ErrTasksFailed is returned by the CLI when the root group reports
	// FAILURE. It carries no cause: the report already said what failed.
	ErrTasksFailed ErrorCode = "TASKS_FAILED"
)

// ZappError represents a structured error with code and details
type ZappError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ZappError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ZappError) Unwrap() error {
	return e.Wrapped
}

// Is matches any ZappError carrying the same code
func (e *ZappError) Is(target error) bool {
	var targetErr *ZappError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ZappError with the given code and message
func New(code ErrorCode, message string) *ZappError {
	return &ZappError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ZappError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ZappError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a ZappError.
// Returns nil if err is nil; callers must not assign that typed nil to an
// error interface without checking err first.
func Wrap(err error, code ErrorCode, message string) *ZappError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ZappError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *ZappError) WithDetail(key string, value interface{}) *ZappError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var zappErr *ZappError
	if errors.As(err, &zappErr) {
		return zappErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ZappError
func GetErrorCode(err error) ErrorCode {
	var zappErr *ZappError
	if errors.As(err, &zappErr) {
		return zappErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ZappError
func GetErrorDetails(err error) map[string]interface{} {
	var zappErr *ZappError
	if errors.As(err, &zappErr) {
		return zappErr.Details
	}
	return nil
}
