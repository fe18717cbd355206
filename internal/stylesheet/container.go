package stylesheet

import "slices"

// Append adds children at the end of the node, detaching them from any previous parent
func (n *Node) Append(children ...*Node) {
	for _, child := range children {
		child.Remove()
		child.Parent = n
		n.Nodes = append(n.Nodes, child)
	}
}

// InsertBefore inserts child immediately before ref
func (n *Node) InsertBefore(ref, child *Node) error {
	return n.insertAt(ref, child, 0)
}

// InsertAfter inserts child immediately after ref
func (n *Node) InsertAfter(ref, child *Node) error {
	return n.insertAt(ref, child, 1)
}

func (n *Node) insertAt(ref, child *Node, offset int) error {
	if n.Index(ref) < 0 {
		return ErrNotChild
	}
	if child == ref {
		return nil
	}
	child.Remove()
	i := n.Index(ref) + offset
	child.Parent = n
	n.Nodes = slices.Insert(n.Nodes, i, child)
	return nil
}

// Index returns the position of child among the node's children, or -1
func (n *Node) Index(child *Node) int {
	return slices.Index(n.Nodes, child)
}

// Remove detaches the node from its parent. It reports whether the node had one.
func (n *Node) Remove() bool {
	parent := n.Parent
	if parent == nil {
		return false
	}
	n.Parent = nil
	i := parent.Index(n)
	if i < 0 {
		return false
	}
	parent.Nodes = slices.Delete(parent.Nodes, i, i+1)
	return true
}

// Walk calls fn for every descendant in document order. When fn returns false the
// descendants of that node are skipped. fn may remove the node it was called with.
func (n *Node) Walk(fn func(*Node) bool) {
	for _, child := range slices.Clone(n.Nodes) {
		if fn(child) {
			child.Walk(fn)
		}
	}
}

// Declarations returns the direct declaration children of the node
func (n *Node) Declarations() []*Node {
	var decls []*Node
	for _, child := range n.Nodes {
		if child.Type == DeclarationNode {
			decls = append(decls, child)
		}
	}
	return decls
}

// IsEmpty reports whether a container has no declarations and no nested rules or
// at-rules. Comments do not count as content.
func (n *Node) IsEmpty() bool {
	for _, child := range n.Nodes {
		if child.Type != CommentNode {
			return false
		}
	}
	return true
}
