package tokens

import (
	"strconv"

	"bennypowers.dev/cssvars/internal/color"
	"bennypowers.dev/cssvars/internal/log"
)

// structuredValue formats the object values of the 2025.10 format:
// colors, and dimensions or durations as {"value": 4, "unit": "px"}
func structuredValue(raw any) (string, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}

	if _, ok := m["colorSpace"]; ok {
		c, err := color.FromMap(m)
		if err != nil {
			log.Warn("Skipping color token: %v", err)
			return "", false
		}
		return c.CSS(), true
	}

	unit, ok := m["unit"].(string)
	if !ok {
		return "", false
	}
	switch n := m["value"].(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64) + unit, true
	case int:
		return strconv.Itoa(n) + unit, true
	}
	return "", false
}
