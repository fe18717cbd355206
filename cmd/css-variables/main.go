// Command css-variables resolves CSS custom properties at build time.
//
// Usage:
//
//	css-variables [flags] <file|glob>...
//
// Each CSS, HTML or JS/TS file is transformed and printed to stdout, written to an
// output directory, rewritten in place, or shown as a diff.
package main

import (
	"fmt"
	"os"

	"bennypowers.dev/cssvars/internal/parser/css"
	"bennypowers.dev/cssvars/internal/parser/html"
	"bennypowers.dev/cssvars/internal/parser/js"
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	err := rootCmd.Execute()
	closeParsers()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// closeParsers releases the tree-sitter parsers pooled during the run
func closeParsers() {
	css.ClosePool()
	html.ClosePool()
	js.ClosePool()
}
