package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core taxonomy. Callers classify with errors.Is.
var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation indicates that input data failed validation checks.
	ErrValidation = errors.New("validation error")

	// ErrConflict indicates that the operation collides with existing state,
	// e.g. submitting over an already approved report.
	ErrConflict = errors.New("conflict with existing resource")

	// ErrForbidden indicates the acting principal lacks the required role or
	// company scope for the operation.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInternal indicates an unexpected failure in a downstream dependency.
	ErrInternal = errors.New("internal error")
)

// AppError carries a classification sentinel plus the offending field or key,
// so handlers can render a precise message without string parsing.
type AppError struct {
	Code    int    // HTTP-ish status code hint
	Kind    error  // one of the sentinels above
	Field   string // offending field or key, when known
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is lets errors.Is match both the kind sentinel and the wrapped cause.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Kind, target) || (e.Err != nil && errors.Is(e.Err, target))
}

// NewAppError wraps an unexpected downstream failure.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Kind: ErrInternal, Message: message, Err: err}
}

// NewValidationFailedError reports invalid input on a specific field.
func NewValidationFailedError(field, message string) *AppError {
	return &AppError{Code: 400, Kind: ErrValidation, Field: field, Message: message}
}

// NewConflictError reports a collision with existing state.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Kind: ErrConflict, Message: message}
}

// NewNotFoundError reports a missing resource identified by key.
func NewNotFoundError(key, message string) *AppError {
	return &AppError{Code: 404, Kind: ErrNotFound, Field: key, Message: message}
}

// NewForbiddenError reports a principal/scope mismatch.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: 403, Kind: ErrForbidden, Message: message}
}
