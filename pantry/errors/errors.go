// errors/errors.go
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error represents a structured rulebook error with a machine-readable code.
type Error struct {
	// Code is a machine-readable error code (e.g., "unknown_rule", "invalid_argument")
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains additional error context (optional)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error (not included in JSON)
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails replaces the details of the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Wrap sets the underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	type alias Error
	return json.Marshal(&struct {
		*alias
	}{
		alias: (*alias)(e),
	})
}

// New creates a new Error with code and message.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(err error, code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// From extracts an *Error from err if possible, or wraps it as an internal error.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{
		Code:    CodeInternal,
		Message: "an internal error occurred",
		Err:     err,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" when
// err is nil or carries no code.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
// Re-exported from standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// Re-exported from standard errors package for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
// Re-exported from standard errors package for convenience.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Error codes.
const (
	CodeInternal              = "internal_error"
	CodeInvalidArgument       = "invalid_argument"
	CodeUnknownRule           = "unknown_rule"
	CodeUnknownShippingMethod = "unknown_shipping_method"
	CodeValidationFailed      = "validation_failed"
)

// InvalidArgument reports a rule argument that is missing or cannot be
// converted to the parameter's type.
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// UnknownRule reports a lookup of a rule name that is not registered.
func UnknownRule(name string) *Error {
	return New(CodeUnknownRule, fmt.Sprintf("no rule named %q", name)).WithDetail("rule", name)
}

// UnknownShippingMethod reports a shipping method outside the supported set.
func UnknownShippingMethod(method string) *Error {
	return New(CodeUnknownShippingMethod, fmt.Sprintf("unsupported shipping method %q", method)).
		WithDetail("method", method)
}

// Validation creates a validation_failed error.
func Validation(message string) *Error {
	return New(CodeValidationFailed, message)
}

// ValidationErrors holds multiple field-level validation errors.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", v.Errors[0].Field, v.Errors[0].Message)
}

// Add adds a field error.
func (v *ValidationErrors) Add(field, message string) *ValidationErrors {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
	return v
}

// AddWithCode adds a field error with a code.
func (v *ValidationErrors) AddWithCode(field, message, code string) *ValidationErrors {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message, Code: code})
	return v
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToError converts ValidationErrors to an *Error if there are errors.
func (v *ValidationErrors) ToError() *Error {
	if !v.HasErrors() {
		return nil
	}
	return Validation(v.Error()).WithDetail("errors", v.Errors)
}

// NewValidationErrors creates a new ValidationErrors.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]FieldError, 0),
	}
}
