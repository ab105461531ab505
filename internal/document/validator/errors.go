package validator

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrValidation matches any *ValidationError.
var ErrValidation = errors.New("validation failed")

// Reason classifies a field-level validation failure.
type Reason string

const (
	// ReasonMissing means a required field is absent.
	ReasonMissing Reason = "missing"
	// ReasonEmpty means a required field is present but blank.
	ReasonEmpty Reason = "empty"
	// ReasonWrongType means a field holds a value of the wrong kind.
	ReasonWrongType Reason = "wrong-type"
)

// FieldError represents a validation failure for a specific field.
type FieldError struct {
	Field  string `json:"field"`
	Reason Reason `json:"reason"`
	Value  any    `json:"value,omitempty"`
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %T)", e.Field, e.Reason, e.Value)
}

// ValidationError aggregates every field problem found in one document.
type ValidationError struct {
	Path     string
	Problems []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Error()
	}
	msg := strings.Join(parts, "; ")
	if e.Path == "" {
		return "validation failed: " + msg
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Path, msg)
}

// Is reports ErrValidation as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
