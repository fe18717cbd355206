package documents_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/cssvars/internal/documents"
	"bennypowers.dev/cssvars/internal/parser/html"
	"bennypowers.dev/cssvars/internal/reference"
	"bennypowers.dev/cssvars/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "test", "fixtures", "documents", name))
	require.NoError(t, err)
	return string(data)
}

func TestProcessFixtures(t *testing.T) {
	tests := []struct {
		input      string
		expected   string
		languageID string
	}{
		{"page.html", "page.expected.html", documents.LanguageHTML},
		{"component.js", "component.expected.js", documents.LanguageJavaScript},
		{"component.js", "component.expected.js", documents.LanguageTypeScript},
	}

	for _, tt := range tests {
		t.Run(tt.languageID+"/"+tt.input, func(t *testing.T) {
			result, err := documents.Process(readFixture(t, tt.input), tt.languageID, transform.Options{})
			require.NoError(t, err)
			assert.Equal(t, readFixture(t, tt.expected), result.Content)
		})
	}
}

func TestProcessHTMLStats(t *testing.T) {
	result, err := documents.Process(readFixture(t, "page.html"), documents.LanguageHTML, transform.Options{})
	require.NoError(t, err)

	assert.Equal(t, transform.Stats{
		Resolved:     2,
		Unresolved:   1,
		Removed:      2,
		RulesRemoved: 1,
	}, result.Stats)
}

func TestProcessCSS(t *testing.T) {
	result, err := documents.Process(".a { width: var(--w); }", documents.LanguageCSS, transform.Options{
		Variables: map[string]string{"w": "3px"},
	})
	require.NoError(t, err)
	assert.Equal(t, ".a { width: 3px; }", result.Content)
	assert.Equal(t, 1, result.Stats.Resolved)
}

func TestProcessNoCSS(t *testing.T) {
	source := "<p>nothing to see</p>\n"
	result, err := documents.Process(source, documents.LanguageHTML, transform.Options{})
	require.NoError(t, err)
	assert.Equal(t, source, result.Content)

	source = "export const answer = 42;\n"
	result, err = documents.Process(source, documents.LanguageJavaScript, transform.Options{})
	require.NoError(t, err)
	assert.Equal(t, source, result.Content)
}

func TestProcessStyleAttributeCharacterReferences(t *testing.T) {
	opts := transform.Options{Variables: map[string]string{"--x": "1px"}}

	result, err := documents.Process(`<p style="font-family: &quot;A&quot;; width: var(--x)">x</p>`, documents.LanguageHTML, opts)
	require.NoError(t, err)
	assert.Equal(t, `<p style="font-family: &quot;A&quot;; width: 1px">x</p>`, result.Content)

	// regions the transform leaves alone keep their original encoding
	source := `<p style="content: &#34;a&#34;; width: var(--missing)">x</p>`
	result, err = documents.Process(source, documents.LanguageHTML, opts)
	require.NoError(t, err)
	assert.Equal(t, source, result.Content)
}

func TestProcessMalformedRegionRejectsDocument(t *testing.T) {
	source := "<style>.a { width: var(--w, 1px); }</style>\n<p style=\"height: var()\">x</p>\n"

	_, err := documents.Process(source, documents.LanguageHTML, transform.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, reference.ErrMalformedReference)

	var regionErr *html.RegionError
	require.ErrorAs(t, err, &regionErr)
	assert.Equal(t, html.StyleAttribute, regionErr.Type)
	assert.Equal(t, uint(2), regionErr.Line)
}

func TestProcessMalformedTemplate(t *testing.T) {
	source := "const a = css`.a { width: var(--w); }`;\nconst b = css`.b { width: var(w); }`;\n"

	_, err := documents.Process(source, documents.LanguageJavaScript, transform.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, reference.ErrMalformedReference)
	assert.Contains(t, err.Error(), "css template at 2:")
}

func TestProcessUnsupportedLanguage(t *testing.T) {
	_, err := documents.Process("{}", "json", transform.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, documents.ErrUnsupportedLanguage)
}
