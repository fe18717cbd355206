package transform

import (
	"slices"

	"bennypowers.dev/cssvars/internal/collections"
	"bennypowers.dev/cssvars/internal/stylesheet"
)

// cleanup removes, bottom-up, every container that lost a child during this transform
// and is now empty. A removal marks the parent, so emptiness propagates upward.
// It returns the number of containers removed.
func cleanup(n *stylesheet.Node, dirty collections.Set[*stylesheet.Node]) int {
	removed := 0
	for _, child := range slices.Clone(n.Nodes) {
		if !child.IsContainer() {
			continue
		}
		removed += cleanup(child, dirty)
		if dirty.Has(child) && child.IsEmpty() {
			remove(child)
			dirty.Add(n)
			removed++
		}
	}
	return removed
}
