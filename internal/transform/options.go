package transform

import (
	"fmt"
	"strings"
)

// Preserve controls what happens to custom property declarations after resolution
type Preserve int

const (
	// PreserveNone removes variable declarations from the output
	PreserveNone Preserve = iota
	// PreserveAll keeps variable declarations exactly as written
	PreserveAll
	// PreserveComputed keeps variable declarations with their value expanded
	PreserveComputed
)

func (p Preserve) String() string {
	switch p {
	case PreserveNone:
		return "false"
	case PreserveAll:
		return "true"
	case PreserveComputed:
		return "computed"
	default:
		return fmt.Sprintf("Preserve(%d)", int(p))
	}
}

// ParsePreserve converts "false", "true" or "computed" to a Preserve mode
func ParsePreserve(s string) (Preserve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false":
		return PreserveNone, nil
	case "true":
		return PreserveAll, nil
	case "computed":
		return PreserveComputed, nil
	default:
		return PreserveNone, fmt.Errorf("invalid preserve mode %q: expected false, true or computed", s)
	}
}

// Options configures a transform
type Options struct {
	// Variables are seeded into the root scope before any stylesheet declaration.
	// Names without the "--" prefix get it added.
	Variables map[string]string

	// Preserve selects the retention policy for variable declarations
	Preserve Preserve
}
