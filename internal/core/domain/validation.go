package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGeneration wraps any failure of the response generator. The turn is
// never consumed when it occurs, so callers may safely retry.
var ErrGeneration = errors.New("failed to generate AI response")

// ValidationError reports malformed or out-of-range input with field-level
// detail. No state is ever mutated when one is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, "; "))
}

// NewValidationError builds a ValidationError from one message per offending field.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
