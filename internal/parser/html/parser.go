package html

import (
	"cmp"
	"fmt"
	stdhtml "html"
	"slices"
	"sync"

	"bennypowers.dev/cssvars/internal/parser/css"
	"bennypowers.dev/cssvars/internal/stylesheet"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser handles parsing HTML to extract CSS regions
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
	attrQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `
			(attribute
				(attribute_name) @attr_name
				(quoted_attribute_value (attribute_value) @attr_value)
				(#eq? @attr_name "style"))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
			attrQuery:  attrQuery,
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
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
	if p.attrQuery != nil {
		p.attrQuery.Close()
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

// ParseCSSRegions extracts CSS regions from HTML source in document order
func (p *Parser) ParseCSSRegions(source string) []CSSRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var regions []CSSRegion

	// Find <style> tag contents
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(p.styleQuery, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			if capture.Node.StartByte() == capture.Node.EndByte() {
				continue
			}
			regions = append(regions, newRegion(&capture.Node, sourceBytes, StyleTag))
		}
	}

	// Find style="..." attribute values
	cursor2 := sitter.NewQueryCursor()
	defer cursor2.Close()

	attrMatches := cursor2.Matches(p.attrQuery, root, sourceBytes)
	for match := attrMatches.Next(); match != nil; match = attrMatches.Next() {
		for _, capture := range match.Captures {
			captureName := p.attrQuery.CaptureNames()[capture.Index]
			if captureName != "attr_value" || capture.Node.StartByte() == capture.Node.EndByte() {
				continue
			}
			region := newRegion(&capture.Node, sourceBytes, StyleAttribute)
			if region.StartByte > 0 {
				region.Quote = sourceBytes[region.StartByte-1]
			}
			regions = append(regions, region)
		}
	}

	slices.SortFunc(regions, func(a, b CSSRegion) int {
		return cmp.Compare(a.StartByte, b.StartByte)
	})
	return regions
}

func newRegion(node *sitter.Node, sourceBytes []byte, typ RegionType) CSSRegion {
	return CSSRegion{
		Content:   string(sourceBytes[node.StartByte():node.EndByte()]),
		StartByte: node.StartByte(),
		EndByte:   node.EndByte(),
		StartLine: node.StartPosition().Row,
		StartCol:  node.StartPosition().Column,
		Type:      typ,
	}
}

// ParseStylesheets extracts the CSS regions of an HTML document and parses each one.
// A region that fails to parse rejects the document.
func (p *Parser) ParseStylesheets(source string) ([]*Sheet, error) {
	regions := p.ParseCSSRegions(source)
	if len(regions) == 0 {
		return nil, nil
	}

	cssParser := css.AcquireParser()
	defer css.ReleaseParser(cssParser)

	sheets := make([]*Sheet, 0, len(regions))
	for _, region := range regions {
		var root *stylesheet.Node
		var err error
		switch region.Type {
		case StyleAttribute:
			root, err = parseStyleAttribute(cssParser, region)
		default:
			root, err = cssParser.Parse(region.Content)
		}
		if err != nil {
			return nil, NewRegionError(region, err)
		}
		sheets = append(sheets, &Sheet{Region: region, Root: root})
	}
	return sheets, nil
}

// parseStyleAttribute parses CSS from a style attribute value.
// Character references are decoded first. The content is wrapped in "x{...}" to make
// it a valid CSS rule, then that rule is detached.
func parseStyleAttribute(cssParser *css.Parser, region CSSRegion) (*stylesheet.Node, error) {
	wrapped := "x{" + stdhtml.UnescapeString(region.Content) + "}"
	parsed, err := cssParser.Parse(wrapped)
	if err != nil {
		return nil, err
	}
	if len(parsed.Nodes) != 1 || parsed.Nodes[0].Type != stylesheet.RuleNode || parsed.Raws.After != "" {
		return nil, ErrInvalidStyleAttribute
	}

	rule := parsed.Nodes[0]
	rule.Remove()
	return rule, nil
}
