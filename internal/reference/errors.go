package reference

import (
	"errors"
	"fmt"
)

// ErrMalformedReference indicates a var() expression that cannot be parsed
var ErrMalformedReference = errors.New("malformed var() reference")

// SyntaxError describes a malformed var() expression
type SyntaxError struct {
	// Value is the text that was being parsed
	Value string
	// Offset is the byte offset of the offending var( within Value
	Offset int
	// Reason is a short description of the problem
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed var() at offset %d in %q: %s", e.Offset, e.Value, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformedReference
}

// NewSyntaxError creates a new var() syntax error
func NewSyntaxError(value string, offset int, reason string) error {
	return &SyntaxError{
		Value:  value,
		Offset: offset,
		Reason: reason,
	}
}
