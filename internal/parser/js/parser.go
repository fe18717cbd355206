package js

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser handles parsing JS/TS to extract CSS from tagged template literals
type Parser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
	genericQuery  *sitter.Query // matches css<Type>`...` (generic form parsed by JS grammar as binary_expression)
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		templateQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		// css<Type>`...` is valid TypeScript but tree-sitter-javascript reads it as
		// nested binary expressions
		genericQuery, qerr := sitter.NewQuery(jsLang, `
			(binary_expression
				left: (binary_expression
					left: (identifier) @tag)
				right: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile generic query: %v", qerr))
		}

		return &Parser{
			parser:        parser,
			templateQuery: templateQuery,
			genericQuery:  genericQuery,
		}
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
	if p.templateQuery != nil {
		p.templateQuery.Close()
	}
	if p.genericQuery != nil {
		p.genericQuery.Close()
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

// ParseTemplates finds css and html tagged template literals in source order.
// Handles both standard form (css`...`) and generic form (css<Type>`...`).
func (p *Parser) ParseTemplates(source string) []TemplateRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var regions []TemplateRegion

	for _, query := range []*sitter.Query{p.templateQuery, p.genericQuery} {
		regions = p.runTemplateQuery(query, root, sourceBytes, regions)
	}

	slices.SortFunc(regions, func(a, b TemplateRegion) int {
		return cmp.Compare(a.StartByte, b.StartByte)
	})
	return regions
}

// runTemplateQuery executes a single tree-sitter query against the parsed tree,
// appending matching css/html tagged templates to regions
func (p *Parser) runTemplateQuery(query *sitter.Query, root *sitter.Node, sourceBytes []byte, regions []TemplateRegion) []TemplateRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tagName string
		var templateNode sitter.Node
		foundTemplate := false

		for _, capture := range match.Captures {
			switch query.CaptureNames()[capture.Index] {
			case "tag":
				tagName = string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			case "template":
				templateNode = capture.Node
				foundTemplate = true
			}
		}

		if tagName != "css" && tagName != "html" {
			continue
		}
		if !foundTemplate {
			continue
		}

		if region, ok := newRegion(tagName, &templateNode, sourceBytes); ok {
			regions = append(regions, region)
		}
	}

	return regions
}

// newRegion describes the text between the backticks of a template_string node
func newRegion(tag string, templateNode *sitter.Node, sourceBytes []byte) (TemplateRegion, bool) {
	start, end := templateNode.StartByte()+1, templateNode.EndByte()-1
	if end <= start || end >= uint(len(sourceBytes)) || sourceBytes[end] != '`' {
		return TemplateRegion{}, false
	}

	substitutions := false
	for i := uint(0); i < templateNode.ChildCount(); i++ {
		if templateNode.Child(i).Kind() == "template_substitution" {
			substitutions = true
			break
		}
	}

	pos := templateNode.StartPosition()
	return TemplateRegion{
		Tag:              tag,
		Content:          string(sourceBytes[start:end]),
		StartByte:        start,
		EndByte:          end,
		StartLine:        pos.Row,
		StartCol:         pos.Column + 1,
		HasSubstitutions: substitutions,
	}, true
}
