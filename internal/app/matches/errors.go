package matches

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthorized is returned when no current identity can be resolved.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable is returned when a call is dropped by the simulated transport.
	ErrUnavailable = errors.New("service unavailable")
)

// FieldError describes one invalid field on a create request.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every problem found on a create request.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Field+" "+p.Reason)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Fields returns the names of the invalid fields in order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		out = append(out, p.Field)
	}
	return out
}

func (e *ValidationError) add(field, reason string) {
	e.Problems = append(e.Problems, FieldError{Field: field, Reason: reason})
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
