package stylesheet

import "strings"

// String prints the node and its descendants, including the node's leading raws
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Type {
	case RootNode:
		n.writeChildren(b)
		b.WriteString(n.Raws.After)

	case RuleNode:
		b.WriteString(n.Raws.Before)
		b.WriteString(n.Selector)
		b.WriteString(n.Raws.Between)
		n.writeBlock(b)

	case AtRuleNode:
		b.WriteString(n.Raws.Before)
		b.WriteString("@")
		b.WriteString(n.Name)
		if n.Params != "" {
			afterName := n.Raws.AfterName
			if afterName == "" {
				afterName = " "
			}
			b.WriteString(afterName)
			b.WriteString(n.Params)
		}
		b.WriteString(n.Raws.Between)
		if n.HasBody {
			n.writeBlock(b)
		} else if n.Raws.Semicolon {
			b.WriteString(";")
		}

	case DeclarationNode:
		b.WriteString(n.Raws.Before)
		b.WriteString(n.Prop)
		between := n.Raws.Between
		if between == "" {
			between = ": "
		}
		b.WriteString(between)
		b.WriteString(n.Value)
		if n.Important && n.Raws.Important == "" {
			b.WriteString(" !important")
		} else {
			b.WriteString(n.Raws.Important)
		}
		if n.Raws.Semicolon {
			b.WriteString(";")
		}

	case CommentNode:
		b.WriteString(n.Raws.Before)
		b.WriteString(n.Text)
	}
}

func (n *Node) writeBlock(b *strings.Builder) {
	b.WriteString("{")
	n.writeChildren(b)
	b.WriteString(n.Raws.After)
	b.WriteString("}")
}

func (n *Node) writeChildren(b *strings.Builder) {
	for _, child := range n.Nodes {
		child.write(b)
	}
}
