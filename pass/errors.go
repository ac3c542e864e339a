package pass

import "fmt"

// ValidationError reports a malformed or missing required pass field.
// The permissive builder defers all checks to serialization time, so
// this is returned by Serialize rather than by any mutation method.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the standard error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid pass: field %q %s", e.Field, e.Reason)
}

func missingField(name string) *ValidationError {
	return &ValidationError{Field: name, Reason: "must not be empty"}
}
