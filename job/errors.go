package job

import (
	"fmt"

	"github.com/teranos/cronstorm/errors"
)

// Field names used in validation errors; they match the command's placeholder names.
const (
	FieldMethod        = "method"
	FieldURL           = "url"
	FieldIntervalCount = "interval"
	FieldInterval      = "time"
	FieldDurationCount = "total"
	FieldDuration      = "Time"
	FieldBody          = "body"
	FieldContentType   = "contentType"
	FieldID            = "id"
)

// ValidationError reports which field failed coercion and why.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap exposes the underlying cause (if any) for errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match errors.ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == errors.ErrValidation
}

func newValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
