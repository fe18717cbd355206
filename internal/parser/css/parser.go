package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/cssvars/internal/stylesheet"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser reads CSS into a stylesheet tree using tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse parses CSS source into a stylesheet. Printing the result without changes
// reproduces source exactly. Source that tree-sitter cannot parse cleanly is rejected
// with a *SyntaxError.
func (p *Parser) Parse(source string) (*stylesheet.Node, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, newSyntaxErrorAt(firstError(root), src)
	}

	b := &builder{src: src}
	sheet := stylesheet.NewRoot()
	if err := b.fill(sheet, children(root), 0, uint(len(src))); err != nil {
		return nil, err
	}
	return sheet, nil
}

// builder converts tree-sitter nodes into stylesheet nodes
type builder struct {
	src []byte
}

func (b *builder) text(start, end uint) string {
	return string(b.src[start:end])
}

// fill converts items, the nodes of a container body spanning src[start:end], and
// appends them to container. Text between items becomes their Raws.Before.
func (b *builder) fill(container *stylesheet.Node, items []*sitter.Node, start, end uint) error {
	pos := start
	for _, item := range items {
		child, err := b.convert(item)
		if err != nil {
			return err
		}
		child.Raws.Before = b.text(pos, item.StartByte())
		child.Line = int(item.StartPosition().Row) + 1      //nolint:gosec // G115: bounded by file size
		child.Column = int(item.StartPosition().Column) + 1 //nolint:gosec // G115: bounded by file size
		container.Append(child)
		pos = item.EndByte()
	}
	container.Raws.After = b.text(pos, end)
	return nil
}

func (b *builder) convert(node *sitter.Node) (*stylesheet.Node, error) {
	kind := node.Kind()
	switch {
	case kind == "comment" || kind == "js_comment":
		return stylesheet.NewComment(b.text(node.StartByte(), node.EndByte())), nil
	case kind == "declaration":
		return b.declaration(node)
	case kind == "rule_set" || kind == "keyframe_block":
		return b.rule(node)
	case kind == "at_rule" || strings.HasSuffix(kind, "_statement"):
		return b.atRule(node)
	default:
		pos := node.StartPosition()
		return nil, fmt.Errorf("unexpected %s at %d:%d", kind, pos.Row+1, pos.Column+1)
	}
}

func (b *builder) declaration(node *sitter.Node) (*stylesheet.Node, error) {
	var property, colon, important, semicolon *sitter.Node
	var values []*sitter.Node

	for _, child := range children(node) {
		switch child.Kind() {
		case "property_name":
			property = child
		case ":":
			if colon == nil {
				colon = child
			} else {
				values = append(values, child)
			}
		case "important", "!important":
			important = child
		case ";":
			semicolon = child
		case "comment", "js_comment":
			// comments around the value stay in the raws
			if len(values) > 0 && important == nil && semicolon == nil {
				values = append(values, child)
			}
		default:
			if colon != nil {
				values = append(values, child)
			}
		}
	}

	if property == nil || colon == nil {
		pos := node.StartPosition()
		return nil, fmt.Errorf("declaration without property at %d:%d", pos.Row+1, pos.Column+1)
	}

	// trailing comments are not part of the value
	for len(values) > 0 && isComment(values[len(values)-1]) {
		values = values[:len(values)-1]
	}

	valueStart, valueEnd := colon.EndByte(), colon.EndByte()
	if len(values) > 0 {
		valueStart = values[0].StartByte()
		valueEnd = values[len(values)-1].EndByte()
	}
	tailEnd := node.EndByte()
	if semicolon != nil {
		tailEnd = semicolon.StartByte()
	}

	decl := stylesheet.NewDeclaration(b.text(property.StartByte(), property.EndByte()), b.text(valueStart, valueEnd))
	decl.Important = important != nil
	decl.Raws.Between = b.text(property.EndByte(), valueStart)
	decl.Raws.Important = b.text(valueEnd, tailEnd)
	decl.Raws.Semicolon = semicolon != nil
	return decl, nil
}

func (b *builder) rule(node *sitter.Node) (*stylesheet.Node, error) {
	kids := children(node)
	bodyIndex := indexOfKind(kids, "block")
	if bodyIndex <= 0 {
		pos := node.StartPosition()
		return nil, fmt.Errorf("rule without block at %d:%d", pos.Row+1, pos.Column+1)
	}
	body := kids[bodyIndex]
	selectorEnd := kids[bodyIndex-1].EndByte()

	rule := stylesheet.NewRule(b.text(node.StartByte(), selectorEnd))
	rule.Raws.Between = b.text(selectorEnd, body.StartByte())
	if err := b.block(rule, body); err != nil {
		return nil, err
	}
	return rule, nil
}

func (b *builder) atRule(node *sitter.Node) (*stylesheet.Node, error) {
	kids := children(node)
	if len(kids) == 0 {
		pos := node.StartPosition()
		return nil, fmt.Errorf("empty at-rule at %d:%d", pos.Row+1, pos.Column+1)
	}
	keyword := kids[0]

	var body, semicolon *sitter.Node
	for _, child := range kids[1:] {
		switch child.Kind() {
		case "block", "keyframe_block_list":
			body = child
		case ";":
			semicolon = child
		}
	}

	preludeEnd := node.EndByte()
	switch {
	case body != nil:
		preludeEnd = body.StartByte()
	case semicolon != nil:
		preludeEnd = semicolon.StartByte()
	}

	at := &stylesheet.Node{
		Type:    stylesheet.AtRuleNode,
		Name:    strings.TrimPrefix(b.text(keyword.StartByte(), keyword.EndByte()), "@"),
		HasBody: body != nil,
	}
	at.Raws.AfterName, at.Params, at.Raws.Between = splitPrelude(b.text(keyword.EndByte(), preludeEnd))
	at.Raws.Semicolon = semicolon != nil

	if body != nil {
		if err := b.block(at, body); err != nil {
			return nil, err
		}
	}
	return at, nil
}

// block fills container from a { ... } node
func (b *builder) block(container *stylesheet.Node, body *sitter.Node) error {
	kids := children(body)
	if len(kids) < 2 || kids[0].Kind() != "{" || kids[len(kids)-1].Kind() != "}" {
		pos := body.StartPosition()
		return fmt.Errorf("unterminated block at %d:%d", pos.Row+1, pos.Column+1)
	}
	open, closing := kids[0], kids[len(kids)-1]
	return b.fill(container, kids[1:len(kids)-1], open.EndByte(), closing.StartByte())
}

// splitPrelude splits the text after an at-rule keyword into leading whitespace,
// params and trailing whitespace
func splitPrelude(raw string) (afterName, params, between string) {
	const ws = " \t\r\n\f"
	rest := strings.TrimLeft(raw, ws)
	if rest == "" {
		return "", "", raw
	}
	afterName = raw[:len(raw)-len(rest)]
	params = strings.TrimRight(rest, ws)
	between = rest[len(params):]
	return afterName, params, between
}

func children(node *sitter.Node) []*sitter.Node {
	count := node.ChildCount()
	kids := make([]*sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if child := node.Child(i); child != nil {
			kids = append(kids, child)
		}
	}
	return kids
}

func indexOfKind(nodes []*sitter.Node, kind string) int {
	for i, n := range nodes {
		if n.Kind() == kind {
			return i
		}
	}
	return -1
}

func isComment(node *sitter.Node) bool {
	kind := node.Kind()
	return kind == "comment" || kind == "js_comment"
}

// firstError returns the first error or missing node in document order
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for _, child := range children(node) {
		if child.HasError() || child.IsMissing() {
			if found := firstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}
