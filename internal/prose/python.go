package prose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Gobot1234/blacken-docs/internal/dialect"
	"github.com/Gobot1234/blacken-docs/internal/engine"
	"github.com/Gobot1234/blacken-docs/internal/formatter"
	"github.com/Gobot1234/blacken-docs/internal/reflow"
	"github.com/Gobot1234/blacken-docs/internal/splice"
)

// docstringDialects are the code block conventions recognized in docstrings.
var docstringDialects = []dialect.Dialect{dialect.Fenced, dialect.Directive}

const doctestPrompt = ">>>"

type span struct {
	start int
	end   int
}

// Python reflows the docstrings of a Python module. Single-line docstrings
// only get their inline literals normalized. In multi-line docstrings the
// code blocks are formatted with f, when f is not nil, and the prose around
// them is reflowed. The lines holding the quotes are kept as they are.
func Python(src string, f formatter.Formatter, cfg reflow.Config) (Result, error) {
	var (
		edits splice.Edits
		errs  []*engine.FormatError
	)

	for _, d := range Docstrings(src) {
		body, blockErrs, err := processDocstring(src, d, f, cfg)
		if err != nil {
			return Result{}, fmt.Errorf("docstring at line %d: %w", splice.LineAt(src, d.Start), err)
		}

		errs = append(errs, blockErrs...)

		if body != src[d.Start:d.End] {
			edits = append(edits, splice.Edit{Start: d.Start, End: d.End, Text: body})
		}
	}

	out, err := splice.Apply(src, edits)
	if err != nil {
		return Result{}, err
	}

	return Result{Text: out, Changed: out != src, Regions: len(edits), Errors: errs}, nil
}

func processDocstring(src string, d Docstring, f formatter.Formatter, cfg reflow.Config) (string, []*engine.FormatError, error) {
	body := src[d.Start:d.End]

	first, rest, multiline := strings.Cut(body, "\n")
	if !multiline {
		return reflow.Normalize(body, cfg), nil, nil
	}

	content, closing := rest, ""
	if i := strings.LastIndex(rest, "\n"); i >= 0 && isBlank(rest[i+1:]) {
		content, closing = rest[:i], rest[i:]
	}

	if isBlank(content) {
		return body, nil, nil
	}

	lines := strings.Split(content, "\n")

	indent, ok := commonIndent(lines)
	if !ok {
		return body, nil, nil
	}

	text := dedent(lines, indent) + "\n"

	var errs []*engine.FormatError

	if f != nil {
		res, err := engine.Run(
			engine.Document{Text: text, Dialects: docstringDialects},
			f,
			engine.Options{Mode: engine.Permissive, Formatter: cfg.FormatterOptions(indent)},
		)
		if err != nil {
			return "", nil, err
		}

		text = res.Text
		errs = relocate(src, d.Start+len(first)+1, res.Errors)
	}

	verbatim, err := verbatimSpans(text)
	if err != nil {
		return "", nil, err
	}

	var out strings.Builder

	pos := 0

	for _, s := range verbatim {
		out.WriteString(reflowRegion(text[pos:s.start], indent, cfg))
		out.WriteString(text[s.start:s.end])

		pos = s.end
	}

	out.WriteString(reflowRegion(text[pos:], indent, cfg))

	return first + "\n" + reindent(strings.TrimSuffix(out.String(), "\n"), indent) + closing, errs, nil
}

// verbatimSpans returns the code blocks and doctest sessions of text, sorted
// and merged.
func verbatimSpans(text string) ([]span, error) {
	var spans []span

	for _, d := range docstringDialects {
		blocks, err := d.Find(text)
		if err != nil {
			return nil, err
		}

		for _, b := range blocks {
			spans = append(spans, span{start: b.Start, end: b.End})
		}
	}

	spans = append(spans, doctests(text)...)

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := spans[:0]

	for _, s := range spans {
		if n := len(merged); n > 0 && s.start < merged[n-1].end {
			merged[n-1].end = max(merged[n-1].end, s.end)

			continue
		}

		merged = append(merged, s)
	}

	return merged, nil
}

// doctests returns the interactive sessions of text: from a line starting
// with ">>>" up to the next blank line.
func doctests(text string) []span {
	var (
		spans []span
		open  = -1
	)

	for pos := 0; pos < len(text); {
		end := lineEnd(text, pos)
		line := text[pos:end]
		next := min(end+1, len(text))

		switch {
		case open < 0 && strings.HasPrefix(strings.TrimSpace(line), doctestPrompt):
			open = pos
		case open >= 0 && isBlank(line):
			spans = append(spans, span{start: open, end: pos})
			open = -1
		}

		pos = next
	}

	if open >= 0 {
		spans = append(spans, span{start: open, end: len(text)})
	}

	return spans
}

// commonIndent returns the smallest space indentation of the non-blank
// lines. It fails when a line is indented with a tab.
func commonIndent(lines []string) (int, bool) {
	indent := -1

	for _, l := range lines {
		if isBlank(l) {
			continue
		}

		body := strings.TrimLeft(l, " ")
		if strings.HasPrefix(body, "\t") {
			return 0, false
		}

		if n := len(l) - len(body); indent < 0 || n < indent {
			indent = n
		}
	}

	return max(indent, 0), true
}

func dedent(lines []string, indent int) string {
	out := make([]string, len(lines))

	for i, l := range lines {
		if !isBlank(l) {
			out[i] = l[indent:]
		}
	}

	return strings.Join(out, "\n")
}

func reindent(text string, indent int) string {
	prefix := strings.Repeat(" ", indent)
	lines := strings.Split(text, "\n")

	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}

	return strings.Join(lines, "\n")
}

// relocate moves errors found in a docstring body starting at offset of src
// to the lines of src.
func relocate(src string, offset int, errs []*engine.FormatError) []*engine.FormatError {
	if len(errs) == 0 {
		return nil
	}

	base := splice.LineAt(src, offset)
	out := make([]*engine.FormatError, len(errs))

	for i, e := range errs {
		line := base + e.Line - 1

		out[i] = &engine.FormatError{
			Offset:  lineOffset(src, line),
			Line:    line,
			Dialect: e.Dialect,
			Err:     e.Err,
		}
	}

	return out
}

func lineOffset(src string, line int) int {
	pos := 0

	for n := 1; n < line; n++ {
		i := strings.IndexByte(src[pos:], '\n')
		if i < 0 {
			return len(src)
		}

		pos += i + 1
	}

	return pos
}
