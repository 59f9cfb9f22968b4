package errors

import (
	stderrors "errors"
	"fmt"
)

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// TypeOf returns the kind of err. Errors that are not AppErrors are
// reported as operation failures.
func TypeOf(err error) ErrorType {
	if appErr, ok := As(err); ok {
		return appErr.Type
	}
	return ErrTypeOperation
}

// IsType reports whether err carries the given kind.
func IsType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// Wrap converts err into an AppError. AppErrors pass through untouched,
// anything else becomes an operation error with the given prefix.
func Wrap(prefix string, err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	return NewOperationError(prefix, err)
}

// FromPanic converts a recovered panic value into an operation error.
func FromPanic(prefix string, rec interface{}) *AppError {
	if err, ok := rec.(error); ok {
		return NewOperationError(prefix, err)
	}
	return NewOperationError(prefix, fmt.Errorf("%v", rec))
}
