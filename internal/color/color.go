// Package color formats structured design token colors as CSS color values.
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ErrInvalidColor is returned for color objects that cannot be expressed in CSS
var ErrInvalidColor = errors.New("invalid color value")

// Value is a color in the 2025.10 token format:
// {"colorSpace": "srgb", "components": [1, 0.5, 0], "alpha": 1, "hex": "#ff8000"}
type Value struct {
	ColorSpace string
	Components []any // float64, int or the "none" keyword
	Alpha      float64
	Hex        string
}

// FromMap reads a color object decoded from JSON or YAML
func FromMap(m map[string]any) (*Value, error) {
	space, ok := m["colorSpace"].(string)
	if !ok || space == "" {
		return nil, fmt.Errorf("%w: missing colorSpace", ErrInvalidColor)
	}
	components, ok := m["components"].([]any)
	if !ok || len(components) < 3 {
		return nil, fmt.Errorf("%w: %s color needs three components", ErrInvalidColor, space)
	}

	v := &Value{
		ColorSpace: strings.ToLower(space),
		Components: components,
		Alpha:      1,
	}
	if alpha, ok := number(m["alpha"]); ok {
		v.Alpha = alpha
	}
	if hex, ok := m["hex"].(string); ok && hex != "" {
		parsed, err := csscolorparser.Parse(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: hex %q: %v", ErrInvalidColor, hex, err)
		}
		v.Hex = parsed.HexString()
	}
	return v, nil
}

func (v *Value) opaque() bool {
	return v.Alpha >= 0.999
}

// CSS returns the value as CSS. An opaque color with a hex field uses it.
func (v *Value) CSS() string {
	if v.Hex != "" && v.opaque() {
		return v.Hex
	}

	c := v.Components
	switch v.ColorSpace {
	case "srgb":
		return v.srgb()
	case "hsl":
		return v.function("hsl", "%s %s%% %s%%", fixed(c[0], 1), fixed(c[1], 1), fixed(c[2], 1))
	case "hwb":
		return v.function("hwb", "%s %s%% %s%%", fixed(c[0], 1), fixed(c[1], 1), fixed(c[2], 1))
	case "lab":
		return v.function("lab", "%s %s %s", fixed(c[0], 1), fixed(c[1], 1), fixed(c[2], 1))
	case "lch":
		return v.function("lch", "%s %s %s", fixed(c[0], 1), fixed(c[1], 1), fixed(c[2], 1))
	case "oklab":
		return v.function("oklab", "%s %s %s", fixed(c[0], 2), fixed(c[1], 2), fixed(c[2], 2))
	case "oklch":
		return v.function("oklch", "%s %s %s", fixed(c[0], 2), fixed(c[1], 2), fixed(c[2], 1))
	default:
		// display-p3, rec2020, xyz-d65 and the other predefined spaces
		return v.function("color", v.ColorSpace+" %s %s %s", fixed(c[0], 4), fixed(c[1], 4), fixed(c[2], 4))
	}
}

func (v *Value) function(name, format string, args ...any) string {
	body := fmt.Sprintf(format, args...)
	if !v.opaque() {
		body += " / " + strconv.FormatFloat(v.Alpha, 'f', 2, 64)
	}
	return name + "(" + body + ")"
}

func (v *Value) srgb() string {
	c := csscolorparser.Color{
		R: channel(v.Components[0]),
		G: channel(v.Components[1]),
		B: channel(v.Components[2]),
		A: 1,
	}
	if v.opaque() {
		return c.HexString()
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)",
		int(math.Round(c.R*255)), int(math.Round(c.G*255)), int(math.Round(c.B*255)), v.Alpha)
}

// channel clamps an sRGB component to [0, 1]. "none" is zero.
func channel(component any) float64 {
	f, _ := number(component)
	return math.Max(0, math.Min(1, f))
}

// fixed formats a component with the given precision, passing "none" through
func fixed(component any, precision int) string {
	if s, ok := component.(string); ok {
		return s
	}
	f, _ := number(component)
	return strconv.FormatFloat(f, 'f', precision, 64)
}

func number(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
