package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrProductNotFound signals a missing product; it matches ErrNotFound.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrValidation signals an entity invariant violation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidPageSize signals a page size below 1.
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrPageOutOfRange signals a page past the deepest result the backend serves.
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrInvalidQuery signals search criteria the backend cannot express.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrBatchTooLarge signals a bulk request over the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
)

// ValidationError wraps ErrValidation with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
