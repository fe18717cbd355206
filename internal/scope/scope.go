// Package scope builds the lexical scope tree of a stylesheet: one scope for the root
// and for every rule and block at-rule, linked to the scope of the enclosing container.
package scope

import (
	"errors"
	"fmt"

	"bennypowers.dev/cssvars/internal/reference"
	"bennypowers.dev/cssvars/internal/stylesheet"
)

// ErrCorruptTree indicates a stylesheet whose parent links disagree with its children
var ErrCorruptTree = errors.New("corrupt stylesheet tree")

// ID addresses a scope within its Tree
type ID int

// None is the parent of the root scope
const None ID = -1

// Variable is a custom property value recorded in a scope
type Variable struct {
	// Name includes the "--" prefix
	Name string
	// Raw is the value as written
	Raw string
	// Expr is Raw split into text and var() references
	Expr reference.Expression
	// Important mirrors the declaration's !important flag. It does not affect lookup.
	Important bool
	// Scope is where the variable was recorded
	Scope ID
	// Decl is the source declaration, nil for seeded variables
	Decl *stylesheet.Node
	// Seeded marks variables supplied by configuration rather than the stylesheet
	Seeded bool
}

// Scope is one node of the scope tree
type Scope struct {
	ID       ID
	Parent   ID
	Node     *stylesheet.Node
	Vars     map[string]*Variable
	Children []ID
}

// Tree is an arena of scopes. Scopes refer to each other by ID.
type Tree struct {
	scopes []Scope
	byNode map[*stylesheet.Node]ID
}

// Build walks the stylesheet once in document order and returns its scope tree
func Build(root *stylesheet.Node) (*Tree, error) {
	if root == nil || !root.IsContainer() {
		return nil, fmt.Errorf("%w: root is not a container", ErrCorruptTree)
	}
	t := &Tree{byNode: make(map[*stylesheet.Node]ID)}
	if err := t.build(root, None); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) build(container *stylesheet.Node, parent ID) error {
	id := t.add(container, parent)
	for _, child := range container.Nodes {
		if child.Parent != container {
			return fmt.Errorf("%w: %s at %d:%d is not linked to its container",
				ErrCorruptTree, child.Type, child.Line, child.Column)
		}
		if !child.IsContainer() {
			if len(child.Nodes) > 0 {
				return fmt.Errorf("%w: %s at %d:%d cannot have children",
					ErrCorruptTree, child.Type, child.Line, child.Column)
			}
			continue
		}
		if err := t.build(child, id); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) add(node *stylesheet.Node, parent ID) ID {
	id := ID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{
		ID:     id,
		Parent: parent,
		Node:   node,
		Vars:   make(map[string]*Variable),
	})
	if parent != None {
		t.scopes[parent].Children = append(t.scopes[parent].Children, id)
	}
	t.byNode[node] = id
	return id
}

// Root returns the ID of the stylesheet's scope
func (t *Tree) Root() ID {
	return 0
}

// Get returns the scope with the given ID
func (t *Tree) Get(id ID) *Scope {
	return &t.scopes[id]
}

// Parent returns the parent of a scope, or None for the root
func (t *Tree) Parent(id ID) ID {
	return t.scopes[id].Parent
}

// Of returns the scope created for a container node
func (t *Tree) Of(container *stylesheet.Node) (ID, bool) {
	id, ok := t.byNode[container]
	return id, ok
}

// Enclosing returns the scope a non-container node belongs to: the scope of its parent
func (t *Tree) Enclosing(node *stylesheet.Node) (ID, bool) {
	if node.Parent == nil {
		return None, false
	}
	return t.Of(node.Parent)
}

// Declare records a variable in a scope, replacing any earlier value of the same name
func (t *Tree) Declare(id ID, v *Variable) {
	v.Scope = id
	t.scopes[id].Vars[v.Name] = v
}

// Lookup walks from a scope up through its ancestors and returns the nearest
// variable called name
func (t *Tree) Lookup(name string, from ID) (*Variable, bool) {
	for id := from; id != None; id = t.scopes[id].Parent {
		if v, ok := t.scopes[id].Vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
