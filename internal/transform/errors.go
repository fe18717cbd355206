package transform

import "fmt"

// DeclarationError reports a declaration whose value could not be parsed
type DeclarationError struct {
	Property string
	Value    string
	// Line and Column locate the declaration, zero when unknown
	Line   int
	Column int
	Err    error
}

func (e *DeclarationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: declaration %s: %v", e.Line, e.Column, e.Property, e.Err)
	}
	return fmt.Sprintf("declaration %s: %v", e.Property, e.Err)
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}

// NewDeclarationError creates a new declaration error
func NewDeclarationError(property, value string, line, column int, err error) error {
	return &DeclarationError{
		Property: property,
		Value:    value,
		Line:     line,
		Column:   column,
		Err:      err,
	}
}
