package js_test

import (
	"testing"

	"bennypowers.dev/cssvars/internal/parser/js"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const component = "import { LitElement, css, html } from 'lit';\n" +
	"\n" +
	"export class MyElement extends LitElement {\n" +
	"  static styles = css`\n" +
	"    :host { --gap: 4px; }\n" +
	"    .a { margin: var(--gap); }\n" +
	"  `;\n" +
	"\n" +
	"  render() {\n" +
	"    return html`<div style=\"padding: var(--gap)\">${this.label}</div>`;\n" +
	"  }\n" +
	"}\n" +
	"\n" +
	"export const shared = css`.b { color: var(--color, red); }`;\n"

func TestParseTemplates(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantCSS  int
		wantHTML int
	}{
		{name: "component", source: component, wantCSS: 2, wantHTML: 1},
		{name: "css tagged template", source: "const s = css`.a { color: red; }`;", wantCSS: 1},
		{name: "html tagged template", source: "const t = html`<style>.a { color: red; }</style>`;", wantHTML: 1},
		{name: "generic form", source: "const s = css<CSSResult>`.a { color: red; }`;", wantCSS: 1},
		{name: "other tags", source: "const s = sql`select 1`; const u = String.raw`x`;"},
		{name: "empty template", source: "const s = css``;"},
		{name: "no tagged templates", source: "const a = `plain ${1}`;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := js.AcquireParser()
			defer js.ReleaseParser(parser)

			templates := parser.ParseTemplates(tt.source)

			cssCount := 0
			htmlCount := 0
			for _, tmpl := range templates {
				switch tmpl.Tag {
				case "css":
					cssCount++
				case "html":
					htmlCount++
				}
				assert.Equal(t, tmpl.Content, tt.source[tmpl.StartByte:tmpl.EndByte], "template offsets")
			}

			assert.Equal(t, tt.wantCSS, cssCount, "css template count")
			assert.Equal(t, tt.wantHTML, htmlCount, "html template count")
		})
	}
}

func TestParseTemplatesSourceOrder(t *testing.T) {
	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)

	templates := parser.ParseTemplates(component)
	require.Len(t, templates, 3)

	assert.Equal(t, "css", templates[0].Tag)
	assert.False(t, templates[0].HasSubstitutions)
	assert.Equal(t, uint(3), templates[0].StartLine)
	assert.Equal(t, uint(22), templates[0].StartCol)

	assert.Equal(t, "html", templates[1].Tag)
	assert.True(t, templates[1].HasSubstitutions)

	assert.Equal(t, "css", templates[2].Tag)
	assert.Equal(t, ".b { color: var(--color, red); }", templates[2].Content)
}

func TestParseTemplatesGenericContent(t *testing.T) {
	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)

	source := "const s = css<CSSResult>`.a { width: var(--w); }`;"
	templates := parser.ParseTemplates(source)
	require.Len(t, templates, 1)
	assert.Equal(t, ".a { width: var(--w); }", templates[0].Content)
}
