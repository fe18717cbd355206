package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected string
		ok       bool
	}{
		{
			name:     "color",
			raw:      map[string]any{"colorSpace": "srgb", "components": []any{0.0, 0.0, 1.0}},
			expected: "#0000ff",
			ok:       true,
		},
		{name: "dimension", raw: map[string]any{"value": 0.5, "unit": "rem"}, expected: "0.5rem", ok: true},
		{name: "duration", raw: map[string]any{"value": 200, "unit": "ms"}, expected: "200ms", ok: true},
		{name: "invalid color", raw: map[string]any{"colorSpace": "srgb"}},
		{name: "unitless object", raw: map[string]any{"value": 1.0}},
		{name: "array", raw: []any{0.4, 0, 0.2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := structuredValue(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
