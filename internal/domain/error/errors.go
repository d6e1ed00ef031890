package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest      = 4000
	CodeUnauthorized        = 4010
	CodeUserNotFound        = 4040
	CodeTransactionNotFound = 4041
	CodeNotFound            = 4049
	CodeRequestTooLarge     = 4130
	CodeValidation          = 4220
	CodeRateLimited         = 4290

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeStore          = 5030
)

// Base error types
var (
	// ErrValidation is returned when caller-supplied input violates a schema constraint
	ErrValidation = errors.New("validation failed")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrStore is returned when the ledger store could not serve a read
	ErrStore = errors.New("ledger store unavailable")

	// ErrUnauthorized is returned when a request carries no valid identity
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is returned when a caller exceeded its request budget
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRequestTooLarge is returned when a request body exceeds the accepted size
	ErrRequestTooLarge = errors.New("request body too large")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrRequestTooLarge):
		return CodeRequestTooLarge
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrStore):
		return CodeStore
	default:
		return CodeInternalServer
	}
}

// ValidationError describes a single violated input constraint
type ValidationError struct {
	Field      string
	Value      string
	Constraint string
}

// NewValidationError creates a validation error for the given field
func NewValidationError(field, value, constraint string) error {
	return &ValidationError{
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("the %s field %s", e.Field, e.Constraint)
}

// Is checks if the target error is an ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"value":      e.Value,
		"constraint": e.Constraint,
		"error_code": CodeValidation,
	}
}

// StoreErrorKind classifies a failed read against the ledger store
type StoreErrorKind string

const (
	StoreKindTimeout    StoreErrorKind = "timeout"
	StoreKindConnection StoreErrorKind = "connection"
	StoreKindQuery      StoreErrorKind = "query"
)

// StoreError wraps an underlying read failure
type StoreError struct {
	Operation string
	Kind      StoreErrorKind
	Err       error
}

// NewStoreError creates a store error for the given operation
func NewStoreError(operation string, kind StoreErrorKind, err error) error {
	return &StoreError{
		Operation: operation,
		Kind:      kind,
		Err:       err,
	}
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s failed (%s): %v", ErrStore.Error(), e.Operation, e.Kind, e.Err)
}

// Is checks if the target error is an ErrStore
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *StoreError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "store_error",
		"operation":  e.Operation,
		"kind":       string(e.Kind),
		"error_code": CodeStore,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsStoreError checks if the error came from the ledger store
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStore)
}

// LogFields extracts structured logging fields from err when it provides them
func LogFields(err error) map[string]any {
	var fielder interface{ LogFields() map[string]any }
	if errors.As(err, &fielder) {
		return fielder.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}
