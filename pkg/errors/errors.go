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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Script compilation errors
	ErrLexingFailed        ErrorCode = "LEXING_FAILED"
	ErrParsingFailed       ErrorCode = "PARSING_FAILED"
	ErrUnknownStage        ErrorCode = "UNKNOWN_STAGE"
	ErrInvalidStageScope   ErrorCode = "INVALID_STAGE_SCOPE"
	ErrUnknownArgumentType ErrorCode = "UNKNOWN_ARGUMENT_TYPE"

	// Command registry and dispatch errors
	ErrNoCommandsAvailable    ErrorCode = "NO_COMMANDS_AVAILABLE"
	ErrUnknownCommand         ErrorCode = "UNKNOWN_COMMAND"
	ErrInvalidArgumentCount   ErrorCode = "INVALID_ARGUMENT_COUNT"
	ErrUnsafePath             ErrorCode = "UNSAFE_PATH"
	ErrElevatedProcessRefused ErrorCode = "ELEVATED_PROCESS_REFUSED"
	ErrHandlerFailure         ErrorCode = "HANDLER_FAILURE"
	ErrCancelled              ErrorCode = "CANCELLED"

	// Content rewriting errors
	ErrAssetNotFound ErrorCode = "ASSET_NOT_FOUND"
	ErrRewriteIO     ErrorCode = "REWRITE_IO"
	ErrPattern       ErrorCode = "PATTERN"

	// Package errors
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"
)

// ApkrenError represents a structured error with code and details
type ApkrenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ApkrenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ApkrenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ApkrenError) Is(target error) bool {
	var targetErr *ApkrenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ApkrenError with the given code and message
func New(code ErrorCode, message string) *ApkrenError {
	return &ApkrenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ApkrenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ApkrenError {
	return &ApkrenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an ApkrenError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *ApkrenError {
	if err == nil {
		return nil
	}
	return &ApkrenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ApkrenError {
	if err == nil {
		return nil
	}
	return &ApkrenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ApkrenError) WithDetail(key string, value interface{}) *ApkrenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ApkrenError) WithDetails(details map[string]interface{}) *ApkrenError {
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
	var apkErr *ApkrenError
	if errors.As(err, &apkErr) {
		return apkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an ApkrenError
func GetErrorCode(err error) ErrorCode {
	var apkErr *ApkrenError
	if errors.As(err, &apkErr) {
		return apkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an ApkrenError
func GetErrorDetails(err error) map[string]interface{} {
	var apkErr *ApkrenError
	if errors.As(err, &apkErr) {
		return apkErr.Details
	}
	return nil
}

// Detail returns a single detail value from the outermost ApkrenError in the chain
func Detail(err error, key string) (interface{}, bool) {
	details := GetErrorDetails(err)
	if details == nil {
		return nil, false
	}
	v, ok := details[key]
	return v, ok
}
