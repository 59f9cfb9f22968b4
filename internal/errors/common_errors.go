package errors

import (
	"fmt"
)

// ErrorType represents the kind of failure surfaced in the error envelope.
// The set is closed: every failure an invocation can produce maps to one of these.
type ErrorType string

const (
	ErrTypeArgument         ErrorType = "ARGUMENT"
	ErrTypeFileNotFound     ErrorType = "FILE_NOT_FOUND"
	ErrTypeLoad             ErrorType = "LOAD"
	ErrTypeParameter        ErrorType = "PARAMETER"
	ErrTypeNoNumericColumns ErrorType = "NO_NUMERIC_COLUMNS"
	ErrTypeOperation        ErrorType = "OPERATION"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface. The result is the single-line
// message written to the envelope, so it never carries the type tag.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewArgumentError reports a malformed invocation, such as a wrong argument
// count or an unknown operation.
func NewArgumentError(message string) *AppError {
	return NewAppError(ErrTypeArgument, message, nil)
}

// NewFileNotFoundError reports a missing input path.
func NewFileNotFoundError(path string) *AppError {
	return NewAppError(ErrTypeFileNotFound, fmt.Sprintf("File not found: %s", path), nil).
		WithContext("path", path)
}

// NewLoadError reports a file that could not be parsed into a table.
func NewLoadError(cause error) *AppError {
	return NewAppError(ErrTypeLoad, "Failed to load dataset", cause)
}

// NewParameterError reports an invalid method value.
func NewParameterError(message string) *AppError {
	return NewAppError(ErrTypeParameter, message, nil)
}

// NewNoNumericColumnsError reports a numeric-only operation on a table without numeric columns.
func NewNoNumericColumnsError(message string) *AppError {
	return NewAppError(ErrTypeNoNumericColumns, message, nil)
}

// NewOperationError wraps any other failure during a transform with the
// operation prefix, e.g. "Cleaning error: ...".
func NewOperationError(prefix string, cause error) *AppError {
	return NewAppError(ErrTypeOperation, prefix, cause)
}
