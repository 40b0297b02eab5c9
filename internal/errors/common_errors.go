package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Export phase failures
	ErrTypeContractViolation  ErrorType = "CONTRACT_VIOLATION"
	ErrTypeSessionUnavailable ErrorType = "SESSION_UNAVAILABLE"
	ErrTypeRangeWrite         ErrorType = "RANGE_WRITE_FAILURE"
	ErrTypePersist            ErrorType = "PERSIST_FAILURE"

	// Caller-side failures
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// Sentinels for errors.Is matching by type.
var (
	ErrContractViolation  = &ExportError{Type: ErrTypeContractViolation}
	ErrSessionUnavailable = &ExportError{Type: ErrTypeSessionUnavailable}
	ErrRangeWrite         = &ExportError{Type: ErrTypeRangeWrite}
	ErrPersist            = &ExportError{Type: ErrTypePersist}
	ErrValidation         = &ExportError{Type: ErrTypeValidation}
	ErrNotFound           = &ExportError{Type: ErrTypeNotFound}
)

// ExportError is the single tagged error an export returns.
type ExportError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an ExportError of the same type.
func (e *ExportError) Is(target error) bool {
	t, ok := target.(*ExportError)
	return ok && t.Type == e.Type
}

// WithContext adds context to the error
func (e *ExportError) WithContext(key string, value interface{}) *ExportError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewExportError creates a new export error
func NewExportError(errType ErrorType, message string, cause error) *ExportError {
	return &ExportError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType carried by err, or "" when err is not an ExportError.
func TypeOf(err error) ErrorType {
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Type
	}
	return ""
}

// NewContractViolation reports a profile whose dimensions break its contract.
func NewContractViolation(message string) *ExportError {
	return NewExportError(ErrTypeContractViolation, message, nil)
}

// NewSessionUnavailable reports a spreadsheet collaborator that could not be activated.
func NewSessionUnavailable(message string, cause error) *ExportError {
	return NewExportError(ErrTypeSessionUnavailable, message, cause)
}

// NewRangeWriteError reports a failed write to a cell range.
func NewRangeWriteError(message string, cause error) *ExportError {
	return NewExportError(ErrTypeRangeWrite, message, cause)
}

// NewPersistError reports a failed save or close.
func NewPersistError(message string, cause error) *ExportError {
	return NewExportError(ErrTypePersist, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *ExportError {
	return NewExportError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *ExportError {
	return NewExportError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *ExportError {
	return NewExportError(ErrTypeConfig, message, cause)
}
