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
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"
	ErrNoDataPath  ErrorCode = "NO_DATA_PATH"

	// Package errors
	ErrPackageNotSet    ErrorCode = "PACKAGE_NOT_SET"
	ErrPackageNotFound  ErrorCode = "PACKAGE_NOT_FOUND"
	ErrPackageAmbiguous ErrorCode = "PACKAGE_AMBIGUOUS"

	// Store errors
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrStoreCommit      ErrorCode = "STORE_COMMIT"
	ErrResourceLocked   ErrorCode = "RESOURCE_LOCKED"

	// Serialization errors
	ErrSerializeEncode ErrorCode = "SERIALIZE_ENCODE"
	ErrSerializeParse  ErrorCode = "SERIALIZE_PARSE"
	ErrMissingKey      ErrorCode = "MISSING_KEY"
	ErrDuplicateKey    ErrorCode = "DUPLICATE_KEY"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileExists   ErrorCode = "FILE_EXISTS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// FvttError represents a structured error with code and details
type FvttError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FvttError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FvttError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FvttError) Is(target error) bool {
	var targetErr *FvttError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FvttError with the given code and message
func New(code ErrorCode, message string) *FvttError {
	return &FvttError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FvttError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FvttError {
	return &FvttError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FvttError
func Wrap(err error, code ErrorCode, message string) *FvttError {
	if err == nil {
		return nil
	}
	return &FvttError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FvttError {
	if err == nil {
		return nil
	}
	return &FvttError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FvttError) WithDetail(key string, value interface{}) *FvttError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fvttErr *FvttError
	if errors.As(err, &fvttErr) {
		return fvttErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FvttError
func GetErrorCode(err error) ErrorCode {
	var fvttErr *FvttError
	if errors.As(err, &fvttErr) {
		return fvttErr.Code
	}
	return ErrUnknown
}
