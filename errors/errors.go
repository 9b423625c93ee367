package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified confload error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// ConfigFileNotFound reports a missing mandatory configuration file.
func ConfigFileNotFound(path string) *AppError {
	return &AppError{
		Code:    ErrCodeConfigFileNotFound,
		Message: fmt.Sprintf("config file '%s' does not exist", path),
		Details: map[string]any{"path": path},
	}
}

// RequiredEnvMissing reports a required environment variable that is not set.
func RequiredEnvMissing(name string) *AppError {
	return &AppError{
		Code:    ErrCodeRequiredEnvMissing,
		Message: fmt.Sprintf("required environment variable %s is not set", name),
		Details: map[string]any{"name": name},
	}
}

// InvalidEnvValue reports an environment variable that could not be parsed.
func InvalidEnvValue(name string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidEnvValue,
		Message: fmt.Sprintf("environment variable %s has an invalid value", name),
		Details: map[string]any{"name": name},
		Cause:   cause,
	}
}

// InvalidInput creates a new AppError for an unusable argument.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("invalid input: %s", reason),
		Details: details,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
