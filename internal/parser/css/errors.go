package css

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrInvalidStylesheet indicates CSS that could not be parsed
var ErrInvalidStylesheet = errors.New("invalid stylesheet")

// SyntaxError locates the first parse error in a stylesheet
type SyntaxError struct {
	// Line and Column are 1-based
	Line   int
	Column int
	// Near is a short excerpt of the offending source
	Near string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("CSS syntax error at %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("CSS syntax error at %d:%d near %q", e.Line, e.Column, e.Near)
}

func (e *SyntaxError) Unwrap() error {
	return ErrInvalidStylesheet
}

// NewSyntaxError creates a new CSS syntax error
func NewSyntaxError(line, column int, near string) error {
	return &SyntaxError{
		Line:   line,
		Column: column,
		Near:   near,
	}
}

const maxExcerpt = 20

func newSyntaxErrorAt(node *sitter.Node, src []byte) error {
	if node == nil {
		return NewSyntaxError(1, 1, "")
	}
	pos := node.StartPosition()
	start, end := node.StartByte(), node.EndByte()
	if end-start > maxExcerpt {
		end = start + maxExcerpt
	}
	return NewSyntaxError(int(pos.Row)+1, int(pos.Column)+1, string(src[start:end])) //nolint:gosec // G115: bounded by file size
}
