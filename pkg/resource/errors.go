package resource

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Framework errors.
var (
	ErrInvalidID    = errors.New("invalid record ID")
	ErrInvalidData  = errors.New("invalid record data")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrUnknownField = errors.New("unknown field")
)

// ErrorSet maps field names to human-readable validation messages.
// A non-empty set means the associated operation must not proceed.
type ErrorSet map[string]string

// ValidationError reports the complete set of field-level validation
// failures for one record or patch map. Validators accumulate every
// failure before returning; callers never see a first-error-only result.
type ValidationError struct {
	Errors ErrorSet
}

// NewValidationError wraps an ErrorSet in a ValidationError.
func NewValidationError(errs ErrorSet) *ValidationError {
	if errs == nil {
		errs = ErrorSet{}
	}
	return &ValidationError{Errors: errs}
}

// Error summarizes the failing fields in a stable order.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// AsValidationError extracts the ErrorSet when err is (or wraps) a
// ValidationError.
func AsValidationError(err error) (ErrorSet, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Errors, true
	}
	return nil, false
}
