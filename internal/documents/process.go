// Package documents transforms whole source files, CSS or CSS embedded in HTML and
// JS/TS tagged templates, splicing rewritten regions back into the host document.
package documents

import (
	"errors"
	"fmt"

	"bennypowers.dev/cssvars/internal/log"
	"bennypowers.dev/cssvars/internal/parser/css"
	"bennypowers.dev/cssvars/internal/parser/html"
	"bennypowers.dev/cssvars/internal/parser/js"
	"bennypowers.dev/cssvars/internal/transform"
)

// ErrUnsupportedLanguage is returned for a language identifier Process cannot handle
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Result is the outcome of processing a document
type Result struct {
	Content string
	Stats   transform.Stats
}

// Process transforms content according to its language.
// Every embedded region is parsed and transformed before any is written back, so a
// rejected region leaves the whole document unchanged.
func Process(content, languageID string, opts transform.Options) (Result, error) {
	switch languageID {
	case LanguageCSS:
		return processCSS(content, opts)
	case LanguageHTML:
		return processHTML(content, opts)
	case LanguageJavaScript, LanguageJavaScriptReact, LanguageTypeScript, LanguageTypeScriptReact:
		return processJS(content, opts)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, languageID)
	}
}

func processCSS(content string, opts transform.Options) (Result, error) {
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)

	sheet, err := parser.Parse(content)
	if err != nil {
		return Result{}, err
	}
	stats, err := transform.Transform(sheet, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Content: sheet.String(), Stats: stats}, nil
}

func processHTML(content string, opts transform.Options) (Result, error) {
	parser := html.AcquireParser()
	sheets, err := parser.ParseStylesheets(content)
	html.ReleaseParser(parser)
	if err != nil {
		return Result{}, err
	}

	var result Result
	var edits []edit
	for _, sheet := range sheets {
		stats, err := transform.Transform(sheet.Root, opts)
		if err != nil {
			return Result{}, html.NewRegionError(sheet.Region, err)
		}
		result.Stats.Add(stats)

		if !stats.Changed() {
			continue
		}
		if text := sheet.String(); text != sheet.Region.Content {
			edits = append(edits, edit{start: sheet.Region.StartByte, end: sheet.Region.EndByte, text: text})
		}
	}

	result.Content, err = applyEdits(content, edits)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func processJS(content string, opts transform.Options) (Result, error) {
	parser := js.AcquireParser()
	templates := parser.ParseTemplates(content)
	js.ReleaseParser(parser)

	var result Result
	var edits []edit
	for _, tmpl := range templates {
		if tmpl.HasSubstitutions {
			log.Debug("Skipping %s template at %d:%d: it contains substitutions", tmpl.Tag, tmpl.StartLine+1, tmpl.StartCol+1)
			continue
		}

		var processed Result
		var err error
		switch tmpl.Tag {
		case "css":
			processed, err = processCSS(tmpl.Content, opts)
		case "html":
			processed, err = processHTML(tmpl.Content, opts)
		default:
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("%s template at %d:%d: %w", tmpl.Tag, tmpl.StartLine+1, tmpl.StartCol+1, err)
		}
		result.Stats.Add(processed.Stats)

		if processed.Content != tmpl.Content {
			edits = append(edits, edit{start: tmpl.StartByte, end: tmpl.EndByte, text: processed.Content})
		}
	}

	var err error
	result.Content, err = applyEdits(content, edits)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
