package dialect

import (
	"errors"
	"strings"
	"unicode"
)

// IndentPolicy removes a block's indentation before formatting and restores
// it afterwards.
type IndentPolicy interface {
	Dedent(code string) string
	Reindent(formatted string) string
}

// FixedIndent strips and restores a prefix taken from the opening delimiter.
type FixedIndent struct {
	Prefix string
}

// Dedent removes Prefix from every line that starts with it. Other lines are
// left as they are.
func (p FixedIndent) Dedent(code string) string {
	if p.Prefix == "" {
		return code
	}

	return mapLines(code, func(l string) string {
		return strings.TrimPrefix(l, p.Prefix)
	})
}

// Reindent prepends Prefix to every non-empty line.
func (p FixedIndent) Reindent(formatted string) string {
	return indentLines(formatted, p.Prefix)
}

// MinIndent strips the smallest indentation shared by a block's non-blank
// lines and restores it, keeping the block's trailing newlines verbatim.
type MinIndent struct {
	Width    int
	Trailing string
}

var errNoIndent = errors.New("no non-blank code line")

// NewMinIndent infers the policy of code. It fails when every line of code is
// blank. CRLF line endings are read as "\n", so Trailing only holds "\n".
func NewMinIndent(code string) (MinIndent, error) {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	width := -1

	for _, l := range strings.Split(code, "\n") {
		if isBlank(l) {
			continue
		}

		indent, _ := splitIndent(l)
		if width < 0 || len(indent) < width {
			width = len(indent)
		}
	}

	if width < 0 {
		return MinIndent{}, errNoIndent
	}

	trimmed := strings.TrimRight(code, "\n")

	return MinIndent{Width: width, Trailing: code[len(trimmed):]}, nil
}

// Dedent removes Width columns from every line. Blank lines become empty.
func (p MinIndent) Dedent(code string) string {
	return mapLines(code, func(l string) string {
		if isBlank(l) {
			return ""
		}

		return l[p.Width:]
	})
}

// Reindent indents every non-empty line by Width spaces, drops trailing
// whitespace and appends Trailing.
func (p MinIndent) Reindent(formatted string) string {
	indented := indentLines(formatted, strings.Repeat(" ", p.Width))

	return strings.TrimRightFunc(indented, unicode.IsSpace) + p.Trailing
}

// mapLines applies fn to every line of s, keeping newlines.
func mapLines(s string, fn func(string) string) string {
	lines := strings.SplitAfter(s, "\n")

	var buf strings.Builder

	buf.Grow(len(s))

	for _, l := range lines {
		content := strings.TrimSuffix(l, "\n")
		buf.WriteString(fn(content))
		buf.WriteString(l[len(content):])
	}

	return buf.String()
}

func indentLines(s, prefix string) string {
	if prefix == "" {
		return s
	}

	return mapLines(s, func(l string) string {
		if l == "" {
			return l
		}

		return prefix + l
	})
}
