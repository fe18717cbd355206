package html

import (
	"strings"

	"bennypowers.dev/cssvars/internal/stylesheet"
)

// RegionType identifies the kind of CSS region found in HTML
type RegionType int

const (
	// UnknownRegion is the zero value, indicating an uninitialized region type
	UnknownRegion RegionType = iota
	// StyleTag represents CSS inside a <style> element
	StyleTag
	// StyleAttribute represents CSS inside a style="..." attribute
	StyleAttribute
)

func (t RegionType) String() string {
	switch t {
	case StyleTag:
		return "style element"
	case StyleAttribute:
		return "style attribute"
	default:
		return "unknown region"
	}
}

// CSSRegion represents a region of CSS content found in an HTML document.
// StartByte and EndByte delimit Content in the source, so a rewritten region can be
// spliced back in place.
type CSSRegion struct {
	Content   string
	StartByte uint
	EndByte   uint
	StartLine uint
	StartCol  uint
	Type      RegionType
	// Quote is the quote character around a style attribute value
	Quote byte
}

// Sheet is a CSS region parsed into a stylesheet.
// Style attribute declarations are held by a detached rule acting as the root.
type Sheet struct {
	Region CSSRegion
	Root   *stylesheet.Node
}

// Attribute values are parsed with character references decoded, so printing
// encodes the ampersand and the enclosing quote again.
var (
	doubleQuoted = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
	singleQuoted = strings.NewReplacer("&", "&amp;", "'", "&#39;")
)

// String prints the sheet as it belongs in the HTML source
func (s *Sheet) String() string {
	if s.Region.Type != StyleAttribute {
		return s.Root.String()
	}

	var b strings.Builder
	for _, n := range s.Root.Nodes {
		b.WriteString(n.String())
	}
	b.WriteString(s.Root.Raws.After)

	switch s.Region.Quote {
	case '"':
		return doubleQuoted.Replace(b.String())
	case '\'':
		return singleQuoted.Replace(b.String())
	default:
		return b.String()
	}
}
