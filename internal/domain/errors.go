package domain

import "fmt"

var (
	ErrNotFound      = errString("not found")
	ErrInProgress    = errString("investigation still in progress")
	ErrMergeConflict = errString("identity ownership changed during merge")
)

type errString string

func (e errString) Error() string { return string(e) }

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
