package prose

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Gobot1234/blacken-docs/internal/reflow"
	"github.com/Gobot1234/blacken-docs/internal/splice"
)

// paragraph is a plain Markdown paragraph: src[start:end] holds its lines,
// the first starting at column.
type paragraph struct {
	start  int
	end    int
	column int
	lines  []string
}

// Markdown reflows the plain paragraphs of a Markdown document, including the
// text of tight list items. Paragraphs inside block quotes, with hard line
// breaks, tab indentation or table rows are left alone, as is everything that
// is not a paragraph.
func Markdown(src string, cfg reflow.Config) (Result, error) {
	source := []byte(src)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var edits splice.Edits

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || (node.Kind() != ast.KindParagraph && node.Kind() != ast.KindTextBlock) {
			return ast.WalkContinue, nil
		}

		p, ok := extractParagraph(node, source)
		if !ok {
			return ast.WalkSkipChildren, nil
		}

		if replacement := p.reflow(cfg); replacement != src[p.start:p.end] {
			edits = append(edits, splice.Edit{Start: p.start, End: p.end, Text: replacement})
		}

		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return Result{}, err
	}

	out, err := splice.Apply(src, edits)
	if err != nil {
		return Result{}, err
	}

	return Result{Text: out, Changed: out != src, Regions: len(edits)}, nil
}

func (p paragraph) reflow(cfg reflow.Config) string {
	out := reflow.ReflowIndented(strings.Join(p.lines, "\n"), p.column, cfg)

	return strings.ReplaceAll(out, "\n", "\n"+strings.Repeat(" ", p.column))
}

func extractParagraph(node ast.Node, source []byte) (paragraph, bool) {
	lines := node.Lines()
	if lines.Len() == 0 || inBlockquote(node) || hasHardBreak(node) {
		return paragraph{}, false
	}

	var p paragraph

	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if seg.Padding > 0 {
			return paragraph{}, false
		}

		prefix := source[bytes.LastIndexByte(source[:seg.Start], '\n')+1 : seg.Start]

		if i == 0 {
			if bytes.ContainsAny(prefix, "\t>") {
				return paragraph{}, false
			}

			p.start = seg.Start
			p.column = runewidth.StringWidth(string(prefix))
		} else if len(bytes.Trim(prefix, " ")) > 0 {
			return paragraph{}, false
		}

		value := strings.TrimSpace(string(seg.Value(source)))
		if strings.HasPrefix(value, "|") {
			return paragraph{}, false
		}

		p.lines = append(p.lines, value)
		p.end = seg.Stop
	}

	for p.end > p.start && isSpace(source[p.end-1]) {
		p.end--
	}

	return p, p.end > p.start
}

func inBlockquote(node ast.Node) bool {
	for n := node.Parent(); n != nil; n = n.Parent() {
		if n.Kind() == ast.KindBlockquote {
			return true
		}
	}

	return false
}

func hasHardBreak(node ast.Node) bool {
	found := false

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering && t.HardLineBreak() {
			found = true

			return ast.WalkStop, nil
		}

		return ast.WalkContinue, nil
	})

	return found
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
