// Package prose finds the narrative text of a document and reflows it.
//
// Markdown paragraphs are located through the goldmark AST, Python
// docstrings through a line scanner. Text of any other kind is reflowed as a
// whole.
package prose

import (
	"path/filepath"
	"strings"

	"github.com/Gobot1234/blacken-docs/internal/engine"
	"github.com/Gobot1234/blacken-docs/internal/formatter"
	"github.com/Gobot1234/blacken-docs/internal/reflow"
)

// Result is the outcome of reflowing a document.
type Result struct {
	Text    string
	Changed bool
	// Regions counts the paragraphs or docstrings that were rewritten.
	Regions int
	// Errors are code blocks inside docstrings the formatter rejected.
	Errors []*engine.FormatError
}

// Reflow rewrites the prose of src according to the extension of path. f
// formats code blocks found in Python docstrings; it may be nil.
func Reflow(path, src string, f formatter.Formatter, cfg reflow.Config) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyi":
		return Python(src, f, cfg)
	case ".md", ".markdown":
		return Markdown(src, cfg)
	default:
		return Text(src, cfg), nil
	}
}

// Text reflows src as one piece of prose. Surrounding blank lines are kept.
func Text(src string, cfg reflow.Config) Result {
	out := reflowRegion(src, 0, cfg)

	res := Result{Text: out, Changed: out != src}
	if res.Changed {
		res.Regions = 1
	}

	return res
}

// reflowRegion reflows seg, keeping its leading blank lines and its trailing
// whitespace byte for byte.
func reflowRegion(seg string, indent int, cfg reflow.Config) string {
	trimmed := strings.TrimLeft(seg, " \t\n")

	lead := ""
	if i := strings.LastIndex(seg[:len(seg)-len(trimmed)], "\n"); i >= 0 {
		lead = seg[:i+1]
	}

	rest := seg[len(lead):]
	core := strings.TrimRight(rest, " \t\n")

	if core == "" {
		return seg
	}

	return lead + reflow.ReflowIndented(core, indent, cfg) + rest[len(core):]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
