// Package reference parses var() reference expressions inside CSS values.
package reference

import "strings"

// Reference is one var(--name, fallback) occurrence
type Reference struct {
	// Name is the referenced custom property, including the "--" prefix
	Name string
	// Fallback is the parsed fallback, nil when the reference has none.
	// An empty fallback (var(--x,)) is a non-nil empty expression.
	Fallback *Expression
}

// Segment is either literal text or a reference
type Segment struct {
	Literal string
	Ref     *Reference
}

// Expression is a value split into literal text and references
type Expression struct {
	Segments []Segment
}

// HasReferences reports whether the expression contains at least one var()
func (e Expression) HasReferences() bool {
	for _, seg := range e.Segments {
		if seg.Ref != nil {
			return true
		}
	}
	return false
}

// References returns the top-level references of the expression in source order.
// References nested in fallbacks are not included.
func (e Expression) References() []*Reference {
	var refs []*Reference
	for _, seg := range e.Segments {
		if seg.Ref != nil {
			refs = append(refs, seg.Ref)
		}
	}
	return refs
}

// Names returns every referenced name, including names inside fallbacks
func (e Expression) Names() []string {
	var names []string
	for _, seg := range e.Segments {
		if seg.Ref == nil {
			continue
		}
		names = append(names, seg.Ref.Name)
		if seg.Ref.Fallback != nil {
			names = append(names, seg.Ref.Fallback.Names()...)
		}
	}
	return names
}

// String prints the expression back in canonical var() form
func (e Expression) String() string {
	var b strings.Builder
	for _, seg := range e.Segments {
		if seg.Ref == nil {
			b.WriteString(seg.Literal)
			continue
		}
		b.WriteString("var(")
		b.WriteString(seg.Ref.Name)
		if seg.Ref.Fallback != nil {
			b.WriteString(", ")
			b.WriteString(seg.Ref.Fallback.String())
		}
		b.WriteString(")")
	}
	return b.String()
}
