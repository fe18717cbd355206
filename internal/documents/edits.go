package documents

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// edit replaces content[start:end] with text
type edit struct {
	start uint
	end   uint
	text  string
}

// applyEdits splices non-overlapping edits into content
func applyEdits(content string, edits []edit) (string, error) {
	if len(edits) == 0 {
		return content, nil
	}
	edits = slices.Clone(edits)
	slices.SortFunc(edits, func(a, b edit) int {
		return cmp.Compare(a.start, b.start)
	})

	var result strings.Builder
	result.Grow(len(content))

	var offset uint
	for _, e := range edits {
		if e.start < offset || e.end < e.start || e.end > uint(len(content)) {
			return "", fmt.Errorf("edit [%d, %d) out of bounds or overlapping (length %d)", e.start, e.end, len(content))
		}
		result.WriteString(content[offset:e.start])
		result.WriteString(e.text)
		offset = e.end
	}
	result.WriteString(content[offset:])

	return result.String(), nil
}
