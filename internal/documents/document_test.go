package documents_test

import (
	"testing"

	"bennypowers.dev/cssvars/internal/documents"
	"bennypowers.dev/cssvars/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc := documents.NewDocument("styles/site.css", "css", ".a { color: red; }")

	assert.Equal(t, "styles/site.css", doc.Path())
	assert.Equal(t, "css", doc.LanguageID())
	assert.Equal(t, ".a { color: red; }", doc.Content())
}

func TestDocumentTransform(t *testing.T) {
	content := ":root { --w: 1px; }\n.a { width: var(--w); }\n"
	doc := documents.NewDocument("a.css", documents.LanguageCSS, content)

	result, err := doc.Transform(transform.Options{})
	require.NoError(t, err)
	assert.Equal(t, ".a { width: 1px; }\n", result.Content)
	assert.Equal(t, content, doc.Content(), "the document is not modified")
}

func TestLanguageIDFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"site.css", documents.LanguageCSS},
		{"index.html", documents.LanguageHTML},
		{"legacy/INDEX.HTM", documents.LanguageHTML},
		{"element.js", documents.LanguageJavaScript},
		{"element.mjs", documents.LanguageJavaScript},
		{"component.jsx", documents.LanguageJavaScriptReact},
		{"element.ts", documents.LanguageTypeScript},
		{"component.tsx", documents.LanguageTypeScriptReact},
		{"tokens.json", ""},
		{"Makefile", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, documents.LanguageIDFromPath(tt.path))
		})
	}
}
