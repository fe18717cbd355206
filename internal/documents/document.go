package documents

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/cssvars/internal/transform"
)

// Language identifiers understood by Process
const (
	LanguageCSS             = "css"
	LanguageHTML            = "html"
	LanguageJavaScript      = "javascript"
	LanguageJavaScriptReact = "javascriptreact"
	LanguageTypeScript      = "typescript"
	LanguageTypeScriptReact = "typescriptreact"
)

var extensions = map[string]string{
	".css":  LanguageCSS,
	".html": LanguageHTML,
	".htm":  LanguageHTML,
	".js":   LanguageJavaScript,
	".mjs":  LanguageJavaScript,
	".cjs":  LanguageJavaScript,
	".jsx":  LanguageJavaScriptReact,
	".ts":   LanguageTypeScript,
	".mts":  LanguageTypeScript,
	".cts":  LanguageTypeScript,
	".tsx":  LanguageTypeScriptReact,
}

// LanguageIDFromPath returns the language identifier for a file name, or "" when the
// extension is not supported
func LanguageIDFromPath(path string) string {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Document is a source file to be transformed
type Document struct {
	path       string
	languageID string
	content    string
}

// NewDocument creates a new document
func NewDocument(path, languageID, content string) *Document {
	return &Document{
		path:       path,
		languageID: languageID,
		content:    content,
	}
}

// Path returns the document's file path
func (d *Document) Path() string {
	return d.path
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Content returns the document's content
func (d *Document) Content() string {
	return d.content
}

// Transform processes the document's content. The document itself is not modified.
func (d *Document) Transform(opts transform.Options) (Result, error) {
	return Process(d.content, d.languageID, opts)
}
