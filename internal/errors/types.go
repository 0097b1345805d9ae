package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeCancelled  ErrorType = "cancelled"
	ErrorTypeExecution  ErrorType = "execution"
)

// StarterError is a structured error type with context.
type StarterError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Path        string
	Context     map[string]interface{}
	Suggestions []string
}

// Error implements the error interface.
func (e *StarterError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Path != "" {
		parts = append(parts, e.Path+":")
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *StarterError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *StarterError) Is(target error) bool {
	var t *StarterError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *StarterError) WithContext(key string, value interface{}) *StarterError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath records the file or directory the error concerns.
func (e *StarterError) WithPath(path string) *StarterError {
	e.Path = path

	return e
}

// WithSuggestions appends user-facing hints.
func (e *StarterError) WithSuggestions(suggestions ...string) *StarterError {
	e.Suggestions = append(e.Suggestions, suggestions...)

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *StarterError {
	return &StarterError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *StarterError {
	return &StarterError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string, cause error) *StarterError {
	return &StarterError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewCancelledError creates an error for a run the user aborted.
func NewCancelledError(message string, cause error) *StarterError {
	return &StarterError{
		Type:    ErrorTypeCancelled,
		Code:    ErrCodeCancelled,
		Message: message,
		Cause:   cause,
	}
}

// NewExecutionError creates an error for a failed child process.
func NewExecutionError(code, message string, cause error) *StarterError {
	return &StarterError{
		Type:    ErrorTypeExecution,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err carries a StarterError of the given type.
func IsType(err error, t ErrorType) bool {
	var se *StarterError
	if errors.As(err, &se) {
		return se.Type == t
	}

	return false
}

// IsValidation checks if an error is a validation failure.
func IsValidation(err error) bool {
	if IsType(err, ErrorTypeValidation) {
		return true
	}
	var ve ValidationError

	return errors.As(err, &ve)
}

// IsCancelled checks if an error came from a user cancellation. A cancelled
// context counts as well.
func IsCancelled(err error) bool {
	if err == nil {
		return false
	}

	return IsType(err, ErrorTypeCancelled) || errors.Is(err, context.Canceled)
}

// HasCode reports whether the outermost StarterError in err's chain carries code.
func HasCode(err error, code string) bool {
	var se *StarterError
	if errors.As(err, &se) {
		return se.Code == code
	}

	return false
}

// IsExecution checks if an error came from a child process.
func IsExecution(err error) bool {
	return IsType(err, ErrorTypeExecution)
}

// Common error codes.
const (
	ErrCodeInvalidName      = "ERR_INVALID_NAME"
	ErrCodeInvalidPath      = "ERR_INVALID_PATH"
	ErrCodeInvalidArgument  = "ERR_INVALID_ARGUMENT"
	ErrCodeCommandRejected  = "ERR_COMMAND_REJECTED"
	ErrCodeTaskNotFound     = "ERR_TASK_NOT_FOUND"
	ErrCodeCancelled        = "ERR_CANCELLED"
	ErrCodeRemoveFailed     = "ERR_REMOVE_FAILED"
	ErrCodeReadFailed       = "ERR_READ_FAILED"
	ErrCodeWriteFailed      = "ERR_WRITE_FAILED"
	ErrCodeUnexpectedFormat = "ERR_UNEXPECTED_FORMAT"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeCommandFailed    = "ERR_COMMAND_FAILED"
	ErrCodeIncomplete       = "ERR_INCOMPLETE"
)

// ValidationError interface for field-specific validation errors.
type ValidationError interface {
	error
	Field() string
	Value() interface{}
	Suggestions() []string
}

// FieldValidationError implements ValidationError for specific field errors.
type FieldValidationError struct {
	FieldName    string
	FieldValue   interface{}
	ErrorMessage string
	HelpText     []string
}

// Error implements the error interface.
func (fve *FieldValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", fve.FieldName, fmt.Sprint(fve.FieldValue), fve.ErrorMessage)
}

// Field returns the field name that failed validation.
func (fve *FieldValidationError) Field() string {
	return fve.FieldName
}

// Value returns the invalid value.
func (fve *FieldValidationError) Value() interface{} {
	return fve.FieldValue
}

// Suggestions returns helpful suggestions for fixing the error.
func (fve *FieldValidationError) Suggestions() []string {
	return fve.HelpText
}

// ToStarterError converts the field validation error to a StarterError.
func (fve *FieldValidationError) ToStarterError(code string) *StarterError {
	return &StarterError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     fve.Error(),
		Suggestions: fve.HelpText,
		Context: map[string]interface{}{
			"field": fve.FieldName,
			"value": fve.FieldValue,
		},
	}
}

// NewFieldValidationError creates a new field validation error.
func NewFieldValidationError(
	field string,
	value interface{},
	message string,
	suggestions ...string,
) *FieldValidationError {
	return &FieldValidationError{
		FieldName:    field,
		FieldValue:   value,
		ErrorMessage: message,
		HelpText:     suggestions,
	}
}

// Helper functions for common errors

// ErrInvalidPath creates a path validation error.
func ErrInvalidPath(path string, cause error) *StarterError {
	return &StarterError{
		Type:    ErrorTypeValidation,
		Code:    ErrCodeInvalidPath,
		Message: "invalid path",
		Path:    path,
		Cause:   cause,
	}
}

// ErrCancelled creates the error returned when the user declines to proceed.
func ErrCancelled() *StarterError {
	return NewCancelledError("initialization cancelled by user", nil)
}

// ErrTaskNotFound creates an unknown task error.
func ErrTaskNotFound(name string, suggestions ...string) *StarterError {
	return NewValidationError(ErrCodeTaskNotFound, "unknown task: "+name).
		WithContext("task", name).
		WithSuggestions(suggestions...)
}
