// Package stylesheet is a small CSS syntax tree: rules, at-rules, declarations and
// comments hanging off a root node, with enough formatting information (Raws) to print
// an unmodified tree back to the exact source it was read from.
package stylesheet

import (
	"errors"
	"strings"
)

// NodeType identifies the kind of a Node
type NodeType int

const (
	// RootNode is the stylesheet itself
	RootNode NodeType = iota
	// RuleNode is a qualified rule: a selector followed by a block
	RuleNode
	// AtRuleNode is an at-rule such as @media or @import, with or without a block
	AtRuleNode
	// DeclarationNode is a property: value pair
	DeclarationNode
	// CommentNode is a /* comment */
	CommentNode
)

// VariablePrefix marks a declaration as a custom property
const VariablePrefix = "--"

// ErrNotChild is returned when a reference node is not a child of the container
var ErrNotChild = errors.New("node is not a child of this container")

func (t NodeType) String() string {
	switch t {
	case RootNode:
		return "root"
	case RuleNode:
		return "rule"
	case AtRuleNode:
		return "atrule"
	case DeclarationNode:
		return "decl"
	case CommentNode:
		return "comment"
	default:
		return "unknown"
	}
}

// Raws holds the source text surrounding a node.
// Zero values print as the most compact valid CSS.
type Raws struct {
	// Before is the text between the previous sibling (or the opening brace) and the node
	Before string
	// Between is, for declarations, the text between property and value including the
	// colon; for rules and at-rules, the text between selector or params and "{" or ";"
	Between string
	// AfterName is the text between an at-rule name and its params
	AfterName string
	// Important is the text between a declaration value and its terminating ";",
	// including the "!important" flag when present
	Important string
	// After is the text between the last child and the closing brace, or the end of
	// input for the root
	After string
	// Semicolon reports whether a declaration or block-less at-rule ends with ";"
	Semicolon bool
}

// Node is an element of the stylesheet tree. Which fields are meaningful depends on Type.
type Node struct {
	Type NodeType

	// Selector is the selector list of a rule
	Selector string

	// Name is the at-rule name without "@"
	Name string
	// Params is the at-rule prelude, e.g. "(min-width: 600px)"
	Params string
	// HasBody reports whether the at-rule has a { } block
	HasBody bool

	// Prop is the declaration property name
	Prop string
	// Value is the raw declaration value, without "!important"
	Value string
	// Important reports whether the declaration carries !important
	Important bool

	// Text is the full comment including delimiters
	Text string

	Nodes  []*Node
	Parent *Node
	Raws   Raws

	// Line and Column are the 1-based source position, zero when unknown
	Line   int
	Column int
}

// NewRoot creates an empty stylesheet
func NewRoot() *Node {
	return &Node{Type: RootNode}
}

// NewRule creates a rule with the given selector and an empty block
func NewRule(selector string) *Node {
	return &Node{Type: RuleNode, Selector: selector}
}

// NewAtRule creates an at-rule with an empty block
func NewAtRule(name, params string) *Node {
	return &Node{Type: AtRuleNode, Name: name, Params: params, HasBody: true}
}

// NewDeclaration creates a declaration terminated by a semicolon
func NewDeclaration(prop, value string) *Node {
	return &Node{
		Type:  DeclarationNode,
		Prop:  prop,
		Value: value,
		Raws:  Raws{Semicolon: true},
	}
}

// NewComment creates a comment node; text must include the delimiters
func NewComment(text string) *Node {
	return &Node{Type: CommentNode, Text: text}
}

// IsContainer reports whether the node can hold children
func (n *Node) IsContainer() bool {
	switch n.Type {
	case RootNode, RuleNode:
		return true
	case AtRuleNode:
		return n.HasBody
	default:
		return false
	}
}

// IsVariable reports whether the node declares a custom property
func (n *Node) IsVariable() bool {
	return n.Type == DeclarationNode && strings.HasPrefix(n.Prop, VariablePrefix)
}

// Root returns the topmost ancestor of the node
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
