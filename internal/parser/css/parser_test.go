package css_test

import (
	"testing"

	"bennypowers.dev/cssvars/internal/parser/css"
	"bennypowers.dev/cssvars/internal/stylesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) *stylesheet.Node {
	t.Helper()
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)
	sheet, err := parser.Parse(source)
	require.NoError(t, err)
	require.NotNil(t, sheet)
	return sheet
}

// TestParseRoundTrip checks that printing an untouched tree reproduces the source
func TestParseRoundTrip(t *testing.T) {
	sources := map[string]string{
		"empty":         "",
		"simple rule":   ".a {\n  color: red;\n}\n",
		"no semicolon":  ".a{color:red}",
		"variables":     ":root {\n  --color-primary: #0000ff;\n  --gap: calc(var(--base) * 2);\n}\n",
		"important":     ".a {\n  --x: 1px !important;\n  width: var(--x) !important;\n}\n",
		"comments":      "/* header */\n.a {\n  /* inside */\n  color: red; /* trailing */\n}\n",
		"media":         "@media (max-width: 1000px) {\n  .a {\n    width: var(--w);\n  }\n}\n",
		"nested media":  "@media print {\n  @media (min-width: 10px) {\n    .a { color: red; }\n  }\n}\n",
		"supports":      "@supports (display: grid) {\n  .a { display: grid; }\n}\n",
		"import":        "@import \"base.css\";\n.a { color: red; }\n",
		"keyframes":     "@keyframes spin {\n  from { transform: rotate(0deg); }\n  to { transform: rotate(360deg); }\n}\n",
		"selector list": "h1, h2 > span {\n  margin: 0 auto;\n}\n",
		"nested rules":  ".a {\n  --x: 1px;\n  .b {\n    width: var(--x);\n  }\n}\n",
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			sheet := parse(t, source)
			assert.Equal(t, source, sheet.String())
		})
	}
}

func TestParseDeclarations(t *testing.T) {
	sheet := parse(t, ":root {\n  --color-primary: #0000ff;\n  --spacing: 8px !important;\n}")

	require.Len(t, sheet.Nodes, 1)
	rule := sheet.Nodes[0]
	assert.Equal(t, stylesheet.RuleNode, rule.Type)
	assert.Equal(t, ":root", rule.Selector)
	assert.Equal(t, 1, rule.Line)

	decls := rule.Declarations()
	require.Len(t, decls, 2)

	assert.Equal(t, "--color-primary", decls[0].Prop)
	assert.Equal(t, "#0000ff", decls[0].Value)
	assert.False(t, decls[0].Important)
	assert.True(t, decls[0].IsVariable())
	assert.Equal(t, 2, decls[0].Line)
	assert.Equal(t, 3, decls[0].Column)

	assert.Equal(t, "--spacing", decls[1].Prop)
	assert.Equal(t, "8px", decls[1].Value)
	assert.True(t, decls[1].Important)
}

func TestParseVarFunctionValue(t *testing.T) {
	sheet := parse(t, ".button {\n  color: var(--color-primary, var(--color-base, #000));\n}")

	decl := sheet.Nodes[0].Declarations()[0]
	assert.Equal(t, "color", decl.Prop)
	assert.Equal(t, "var(--color-primary, var(--color-base, #000))", decl.Value)
	assert.False(t, decl.IsVariable())
}

func TestParseAtRules(t *testing.T) {
	sheet := parse(t, "@import \"a.css\";\n@media screen and (min-width: 600px) {\n  .a { color: red; }\n}")

	require.Len(t, sheet.Nodes, 2)

	imp := sheet.Nodes[0]
	assert.Equal(t, stylesheet.AtRuleNode, imp.Type)
	assert.Equal(t, "import", imp.Name)
	assert.Equal(t, `"a.css"`, imp.Params)
	assert.False(t, imp.HasBody)
	assert.False(t, imp.IsContainer())

	media := sheet.Nodes[1]
	assert.Equal(t, "media", media.Name)
	assert.Equal(t, "screen and (min-width: 600px)", media.Params)
	assert.True(t, media.HasBody)
	require.Len(t, media.Nodes, 1)
	assert.Equal(t, ".a", media.Nodes[0].Selector)
	assert.Same(t, media, media.Nodes[0].Parent)
}

func TestParseNestedRules(t *testing.T) {
	sheet := parse(t, ".a {\n  --x: 1px;\n  .b {\n    width: var(--x);\n  }\n}")

	outer := sheet.Nodes[0]
	require.Len(t, outer.Nodes, 2)
	assert.Equal(t, stylesheet.DeclarationNode, outer.Nodes[0].Type)
	inner := outer.Nodes[1]
	assert.Equal(t, stylesheet.RuleNode, inner.Type)
	assert.Equal(t, ".b", inner.Selector)
	assert.Equal(t, "var(--x)", inner.Declarations()[0].Value)
}

func TestParseComments(t *testing.T) {
	sheet := parse(t, "/* header */\n.a { color: red; }")

	require.Len(t, sheet.Nodes, 2)
	assert.Equal(t, stylesheet.CommentNode, sheet.Nodes[0].Type)
	assert.Equal(t, "/* header */", sheet.Nodes[0].Text)
}

func TestParseSyntaxError(t *testing.T) {
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)

	_, err := parser.Parse(".a {\n  color: red;\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, css.ErrInvalidStylesheet)

	var syntaxErr *css.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Positive(t, syntaxErr.Line)
}

func TestParseRejectsEmptyValues(t *testing.T) {
	// tree-sitter-css reports an error node for an empty fallback and an empty custom property
	tests := []string{
		".a{width: var(--m,)}",
		":root{--e: ;}",
	}

	for _, source := range tests {
		t.Run(source, func(t *testing.T) {
			parser := css.AcquireParser()
			defer css.ReleaseParser(parser)

			_, err := parser.Parse(source)
			assert.ErrorIs(t, err, css.ErrInvalidStylesheet)
		})
	}
}

func TestParserPoolReuse(t *testing.T) {
	for range 3 {
		parser := css.AcquireParser()
		sheet, err := parser.Parse(".a { color: red; }")
		css.ReleaseParser(parser)
		require.NoError(t, err)
		assert.Len(t, sheet.Nodes, 1)
	}
}

func TestClosePoolThenAcquire(t *testing.T) {
	css.ReleaseParser(css.AcquireParser())
	css.ClosePool()

	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)
	sheet, err := parser.Parse(".a { color: red; }")
	require.NoError(t, err)
	assert.Len(t, sheet.Nodes, 1)
}
