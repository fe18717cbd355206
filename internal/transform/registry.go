package transform

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/cssvars/internal/reference"
	"bennypowers.dev/cssvars/internal/scope"
	"bennypowers.dev/cssvars/internal/stylesheet"
)

// usage is a non-variable declaration whose value contains references
type usage struct {
	decl  *stylesheet.Node
	expr  reference.Expression
	scope scope.ID
}

// registry holds what the collection pass found
type registry struct {
	// variables in document order, seeds excluded
	variables []*scope.Variable
	usages    []usage
}

// seed records configuration variables at the root in name order, ahead of any
// stylesheet declaration
func seed(tree *scope.Tree, vars map[string]string) error {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		raw := vars[name]
		expr, err := reference.Parse(raw)
		if err != nil {
			return fmt.Errorf("variable %s: %w", name, err)
		}
		tree.Declare(tree.Root(), &scope.Variable{
			Name:   normalizeName(name),
			Raw:    raw,
			Expr:   expr,
			Seeded: true,
		})
	}
	return nil
}

// collect parses every declaration value and records variables into their scopes.
// Nothing in the stylesheet is modified.
func collect(root *stylesheet.Node, tree *scope.Tree) (*registry, error) {
	reg := &registry{}
	var walkErr error

	root.Walk(func(n *stylesheet.Node) bool {
		if walkErr != nil {
			return false
		}
		if n.Type != stylesheet.DeclarationNode {
			return n.IsContainer()
		}

		id, ok := tree.Enclosing(n)
		if !ok {
			walkErr = fmt.Errorf("%w: declaration %s has no scope", scope.ErrCorruptTree, n.Prop)
			return false
		}

		if !n.IsVariable() && !reference.Contains(n.Value) {
			return false
		}
		expr, err := reference.Parse(n.Value)
		if err != nil {
			walkErr = NewDeclarationError(n.Prop, n.Value, n.Line, n.Column, err)
			return false
		}

		if n.IsVariable() {
			v := &scope.Variable{
				Name:      n.Prop,
				Raw:       n.Value,
				Expr:      expr,
				Important: n.Important,
				Decl:      n,
			}
			tree.Declare(publishScope(tree, id), v)
			reg.variables = append(reg.variables, v)
		} else if expr.HasReferences() {
			reg.usages = append(reg.usages, usage{decl: n, expr: expr, scope: id})
		}
		return false
	})

	if walkErr != nil {
		return nil, walkErr
	}
	return reg, nil
}

// publishScope returns the scope a variable declared in scope id belongs to.
// Declarations of a :root rule are visible to the rule's siblings, so they are
// recorded one level up.
func publishScope(tree *scope.Tree, id scope.ID) scope.ID {
	s := tree.Get(id)
	if s.Parent != scope.None && isRootSelector(s.Node) {
		return s.Parent
	}
	return id
}

func isRootSelector(n *stylesheet.Node) bool {
	if n.Type != stylesheet.RuleNode {
		return false
	}
	for sel := range strings.SplitSeq(n.Selector, ",") {
		if strings.TrimSpace(sel) != ":root" {
			return false
		}
	}
	return true
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, stylesheet.VariablePrefix) {
		return name
	}
	return stylesheet.VariablePrefix + name
}
