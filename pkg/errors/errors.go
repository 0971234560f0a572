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
	ErrUsage        ErrorCode = "USAGE"

	// Configuration errors
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigParse  ErrorCode = "CONFIG_PARSE"
	ErrConfigValid  ErrorCode = "CONFIG_INVALID"
	ErrRuleConflict ErrorCode = "RULE_CONFLICT"

	// Conversion errors
	ErrInput             ErrorCode = "INPUT"
	ErrMalformedMetadata ErrorCode = "MALFORMED_METADATA"
	ErrOutput            ErrorCode = "OUTPUT"
	ErrWorkspace         ErrorCode = "WORKSPACE"
	ErrConversion        ErrorCode = "CONVERSION"

	// Archive errors
	ErrArchiveOpen   ErrorCode = "ARCHIVE_OPEN"
	ErrArchiveEntry  ErrorCode = "ARCHIVE_ENTRY"
	ErrArchiveCreate ErrorCode = "ARCHIVE_CREATE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// PackError represents a structured error with code and details
type PackError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PackError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PackError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PackError) Is(target error) bool {
	var targetErr *PackError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a PackError with the given code and message
func New(code ErrorCode, message string) *PackError {
	return &PackError{Code: code, Message: message, Details: map[string]interface{}{}}
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PackError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to err. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *PackError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PackError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *PackError) WithDetail(key string, value interface{}) *PackError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PackError) WithDetails(details map[string]interface{}) *PackError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if the outermost PackError in err has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var packErr *PackError
	if errors.As(err, &packErr) {
		return packErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any PackError in err's chain carries code.
// Use it to find the cause behind a ConversionError.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		if packErr, ok := err.(*PackError); ok && packErr.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PackError
func GetErrorCode(err error) ErrorCode {
	var packErr *PackError
	if errors.As(err, &packErr) {
		return packErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PackError
func GetErrorDetails(err error) map[string]interface{} {
	var packErr *PackError
	if errors.As(err, &packErr) {
		return packErr.Details
	}
	return nil
}
