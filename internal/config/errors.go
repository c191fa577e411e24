package config

import (
	"errors"
	"fmt"
)

// ErrValidationFailed indicates a setting holds an unacceptable value.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Value is the invalid value.
	Value any
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Is reports ErrValidationFailed as the error's category.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
