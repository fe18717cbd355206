package js

// TemplateRegion represents a tagged template literal found in JS/TS source
type TemplateRegion struct {
	// Tag is the template tag function name ("css" or "html")
	Tag string
	// Content is the raw text between the backticks
	Content string
	// StartByte and EndByte delimit Content in the source
	StartByte uint
	EndByte   uint
	// StartLine is the 0-indexed line in the JS/TS source where Content begins
	StartLine uint
	// StartCol is the 0-indexed column in the JS/TS source where Content begins
	StartCol uint
	// HasSubstitutions reports whether the template contains ${...} expressions
	HasSubstitutions bool
}
