package reference

import (
	"strconv"
	"strings"
)

// Contains reports whether value may contain a var() call. It is a cheap pre-check;
// Parse is authoritative.
func Contains(value string) bool {
	return strings.Contains(strings.ToLower(value), "var(")
}

// Parse splits a raw CSS value into literal text and var() references.
// Quoted strings and escapes are treated as literal text. An unbalanced var( call
// or a missing or invalid variable name is a *SyntaxError.
func Parse(value string) (Expression, error) {
	p := &parser{src: value}
	return p.expression(0, len(value))
}

type parser struct {
	src string
}

// expression parses src[start:end]
func (p *parser) expression(start, end int) (Expression, error) {
	var expr Expression
	litStart := start
	flush := func(to int) {
		if to > litStart {
			expr.Segments = append(expr.Segments, Segment{Literal: p.src[litStart:to]})
		}
	}

	for i := start; i < end; {
		switch c := p.src[i]; {
		case c == '"' || c == '\'':
			i = p.skipString(i, end)
		case c == '\\':
			i += 2
		case p.isVarCall(i, start, end):
			flush(i)
			ref, next, err := p.reference(i, end)
			if err != nil {
				return Expression{}, err
			}
			expr.Segments = append(expr.Segments, Segment{Ref: ref})
			i = next
			litStart = next
		default:
			i++
		}
	}
	flush(end)
	return expr, nil
}

// isVarCall reports whether a case-insensitive "var(" starts at i and is not the tail
// of a longer identifier
func (p *parser) isVarCall(i, start, end int) bool {
	if i+4 > end || !strings.EqualFold(p.src[i:i+4], "var(") {
		return false
	}
	return i == start || !isNameChar(p.src[i-1])
}

// reference parses a var() call starting at i and returns the index after its ")"
func (p *parser) reference(i, end int) (*Reference, int, error) {
	open := i + len("var(")
	depth := 1
	comma := -1
	closing := -1

scan:
	for j := open; j < end; {
		switch p.src[j] {
		case '"', '\'':
			j = p.skipString(j, end)
			continue
		case '\\':
			j += 2
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closing = j
				break scan
			}
		case ',':
			if depth == 1 && comma < 0 {
				comma = j
			}
		}
		j++
	}

	if closing < 0 {
		return nil, 0, NewSyntaxError(p.src, i, "unbalanced parentheses")
	}

	nameEnd := closing
	if comma >= 0 {
		nameEnd = comma
	}
	name := strings.TrimSpace(p.src[open:nameEnd])
	if name == "" {
		return nil, 0, NewSyntaxError(p.src, i, "missing variable name")
	}
	if !validName(name) {
		return nil, 0, NewSyntaxError(p.src, i, "invalid variable name "+strconv.Quote(name))
	}

	ref := &Reference{Name: name}
	if comma >= 0 {
		fbStart, fbEnd := trimRange(p.src, comma+1, closing)
		fallback, err := p.expression(fbStart, fbEnd)
		if err != nil {
			return nil, 0, err
		}
		ref.Fallback = &fallback
	}
	return ref, closing + 1, nil
}

// skipString returns the index after the string literal starting at i. An unterminated
// string runs to end, like in CSS.
func (p *parser) skipString(i, end int) int {
	quoteChar := p.src[i]
	for j := i + 1; j < end; j++ {
		switch p.src[j] {
		case '\\':
			j++
		case quoteChar:
			return j + 1
		}
	}
	return end
}

func validName(name string) bool {
	if len(name) <= len("--") || !strings.HasPrefix(name, "--") {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isNameChar(name[i]) && name[i] != '\\' {
			return false
		}
	}
	return true
}

func isNameChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c >= 0x80
}

func trimRange(s string, start, end int) (int, int) {
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return start, end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
