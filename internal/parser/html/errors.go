package html

import (
	"errors"
	"fmt"
)

// ErrInvalidStyleAttribute is returned when a style attribute holds more than a
// declaration list
var ErrInvalidStyleAttribute = errors.New("style attribute is not a declaration list")

// RegionError reports a CSS region that could not be parsed.
// Line and Column are 1-based positions in the HTML source.
type RegionError struct {
	Type   RegionType
	Line   uint
	Column uint
	Err    error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %v", e.Type, e.Line, e.Column, e.Err)
}

func (e *RegionError) Unwrap() error {
	return e.Err
}

// NewRegionError creates a new RegionError for region
func NewRegionError(region CSSRegion, err error) error {
	return &RegionError{
		Type:   region.Type,
		Line:   region.StartLine + 1,
		Column: region.StartCol + 1,
		Err:    err,
	}
}
