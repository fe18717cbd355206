// Package transform resolves CSS custom properties in a stylesheet at build time.
//
// Transform builds the scope tree, records variable declarations per scope, replaces
// every resolvable var() usage with its literal value, applies the preserve policy to
// the variable declarations and finally removes rules left empty by those removals.
// A malformed var() anywhere rejects the whole stylesheet before anything is modified.
package transform

import (
	"strings"

	"bennypowers.dev/cssvars/internal/collections"
	"bennypowers.dev/cssvars/internal/log"
	"bennypowers.dev/cssvars/internal/resolver"
	"bennypowers.dev/cssvars/internal/scope"
	"bennypowers.dev/cssvars/internal/stylesheet"
)

// Stats summarizes what a transform changed
type Stats struct {
	// Resolved counts declarations whose value was rewritten
	Resolved int
	// Unresolved counts usages left as written
	Unresolved int
	// Removed counts variable declarations removed from the output
	Removed int
	// RulesRemoved counts rules and at-rules removed because they became empty
	RulesRemoved int
}

// Changed reports whether the stylesheet was modified
func (s *Stats) Changed() bool {
	return s.Resolved > 0 || s.Removed > 0 || s.RulesRemoved > 0
}

// Add accumulates o into s
func (s *Stats) Add(o Stats) {
	s.Resolved += o.Resolved
	s.Unresolved += o.Unresolved
	s.Removed += o.Removed
	s.RulesRemoved += o.RulesRemoved
}

type rewrite struct {
	decl  *stylesheet.Node
	value string
}

// Transform resolves the stylesheet in place
func Transform(root *stylesheet.Node, opts Options) (Stats, error) {
	var stats Stats

	tree, err := scope.Build(root)
	if err != nil {
		return stats, err
	}
	if err := seed(tree, opts.Variables); err != nil {
		return stats, err
	}
	reg, err := collect(root, tree)
	if err != nil {
		return stats, err
	}

	r := resolver.New(tree)
	var rewrites []rewrite
	for _, u := range reg.usages {
		res := r.Expand(u.expr, u.scope)
		if !res.Resolved {
			log.Debug("Leaving %s: %s unresolved at %d:%d (references %s)",
				u.decl.Prop, u.decl.Value, u.decl.Line, u.decl.Column, strings.Join(u.expr.Names(), ", "))
			stats.Unresolved++
			continue
		}
		rewrites = append(rewrites, rewrite{decl: u.decl, value: res.Value})
	}

	var removals []*stylesheet.Node
	for _, v := range reg.variables {
		switch opts.Preserve {
		case PreserveNone:
			removals = append(removals, v.Decl)
		case PreserveComputed:
			if !v.Expr.HasReferences() {
				continue
			}
			if res := r.ResolveVariable(v); res.Resolved {
				rewrites = append(rewrites, rewrite{decl: v.Decl, value: res.Value})
			}
		}
	}

	for _, rw := range rewrites {
		if rw.decl.Value != rw.value {
			rw.decl.Value = rw.value
			stats.Resolved++
		}
	}

	dirty := collections.NewSet[*stylesheet.Node]()
	for _, decl := range removals {
		parent := decl.Parent
		if remove(decl) {
			dirty.Add(parent)
			stats.Removed++
		}
	}
	stats.RulesRemoved = cleanup(root, dirty)

	return stats, nil
}

// remove detaches n, handing its leading whitespace to the next sibling when n is the
// first child so the container does not start with a blank line
func remove(n *stylesheet.Node) bool {
	parent := n.Parent
	if parent == nil {
		return false
	}
	if parent.Index(n) == 0 && len(parent.Nodes) > 1 {
		parent.Nodes[1].Raws.Before = n.Raws.Before
	}
	return n.Remove()
}
