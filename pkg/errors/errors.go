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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Layer errors
	ErrLayerAccess  ErrorCode = "LAYER_ACCESS"
	ErrLayerInvalid ErrorCode = "LAYER_INVALID"

	// Aggregation errors
	ErrEntrypointConflict ErrorCode = "ENTRYPOINT_CONFLICT"
	ErrAliasConflict      ErrorCode = "ALIAS_CONFLICT"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// LayersError represents a structured error with code and details
type LayersError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LayersError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LayersError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LayersError) Is(target error) bool {
	var targetErr *LayersError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LayersError with the given code and message
func New(code ErrorCode, message string) *LayersError {
	return &LayersError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LayersError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LayersError {
	return &LayersError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LayersError
func Wrap(err error, code ErrorCode, message string) *LayersError {
	if err == nil {
		return nil
	}
	return &LayersError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LayersError {
	if err == nil {
		return nil
	}
	return &LayersError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LayersError) WithDetail(key string, value interface{}) *LayersError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *LayersError) WithDetails(details map[string]interface{}) *LayersError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var layersErr *LayersError
	if errors.As(err, &layersErr) {
		return layersErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LayersError
func GetErrorCode(err error) ErrorCode {
	var layersErr *LayersError
	if errors.As(err, &layersErr) {
		return layersErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LayersError
func GetErrorDetails(err error) map[string]interface{} {
	var layersErr *LayersError
	if errors.As(err, &layersErr) {
		return layersErr.Details
	}
	return nil
}
