// Package diff renders line diffs between an input file and its transformed output.
package diff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Context is the number of unchanged lines shown around each change
const Context = 3

// Colors formats the parts of a diff
type Colors struct {
	Header  func(string, ...any) string
	Hunk    func(string, ...any) string
	Delete  func(string, ...any) string
	Insert  func(string, ...any) string
	Context func(string, ...any) string
}

// NewColors returns terminal colors. fatih/color disables them when the output is
// not a terminal or NO_COLOR is set.
func NewColors() *Colors {
	return &Colors{
		Header:  color.New(color.Bold).SprintfFunc(),
		Hunk:    color.CyanString,
		Delete:  color.RedString,
		Insert:  color.GreenString,
		Context: fmt.Sprintf,
	}
}

// Plain returns colors that leave text unchanged
func Plain() *Colors {
	return &Colors{
		Header:  fmt.Sprintf,
		Hunk:    fmt.Sprintf,
		Delete:  fmt.Sprintf,
		Insert:  fmt.Sprintf,
		Context: fmt.Sprintf,
	}
}

type op int

const (
	equal op = iota
	deleted
	inserted
)

type line struct {
	op   op
	text string
}

// Lines computes a line-level diff of before and after
func Lines(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lineArray)
}

// Unified renders a unified diff of before and after under the given name.
// It returns "" when the two are equal.
func Unified(name, before, after string, colors *Colors) string {
	if before == after {
		return ""
	}
	if colors == nil {
		colors = Plain()
	}

	lines := split(Lines(before, after))

	var b strings.Builder
	b.WriteString(colors.Header("--- %s", name))
	b.WriteString("\n")
	b.WriteString(colors.Header("+++ %s", name))
	b.WriteString("\n")

	for _, h := range hunks(lines) {
		writeHunk(&b, lines, h, colors)
	}
	return b.String()
}

func split(diffs []diffmatchpatch.Diff) []line {
	var lines []line
	for _, d := range diffs {
		o := equal
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			o = deleted
		case diffmatchpatch.DiffInsert:
			o = inserted
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for l := range strings.SplitSeq(text, "\n") {
			lines = append(lines, line{op: o, text: l})
		}
	}
	return lines
}

// hunk is a range of lines [start, end) to print
type hunk struct {
	start, end int
}

func hunks(lines []line) []hunk {
	var result []hunk
	for i, l := range lines {
		if l.op == equal {
			continue
		}
		start := max(0, i-Context)
		end := min(len(lines), i+Context+1)
		if n := len(result); n > 0 && start <= result[n-1].end {
			result[n-1].end = max(result[n-1].end, end)
			continue
		}
		result = append(result, hunk{start: start, end: end})
	}
	return result
}

func writeHunk(b *strings.Builder, lines []line, h hunk, colors *Colors) {
	oldStart, newStart := 1, 1
	for _, l := range lines[:h.start] {
		if l.op != inserted {
			oldStart++
		}
		if l.op != deleted {
			newStart++
		}
	}
	oldLen, newLen := 0, 0
	for _, l := range lines[h.start:h.end] {
		if l.op != inserted {
			oldLen++
		}
		if l.op != deleted {
			newLen++
		}
	}

	b.WriteString(colors.Hunk("@@ -%d,%d +%d,%d @@", oldStart, oldLen, newStart, newLen))
	b.WriteString("\n")
	for _, l := range lines[h.start:h.end] {
		switch l.op {
		case deleted:
			b.WriteString(colors.Delete("-%s", l.text))
		case inserted:
			b.WriteString(colors.Insert("+%s", l.text))
		default:
			b.WriteString(colors.Context(" %s", l.text))
		}
		b.WriteString("\n")
	}
}
