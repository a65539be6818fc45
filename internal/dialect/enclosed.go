package dialect

import (
	"strconv"
	"strings"
)

// enclosed matches blocks delimited by an opening line and a closing line at
// the same indentation: Markdown fences and LaTeX environments.
type enclosed struct {
	kind Kind
	name string
	// open reports whether the unindented opening line starts a block and
	// returns the name the closing line must repeat.
	open func(rest string) (string, bool)
	// close reports whether the unindented line is any closing marker and
	// returns its name.
	close func(rest string) (string, bool)
}

func (e enclosed) Kind() Kind   { return e.kind }
func (e enclosed) Name() string { return e.name }

func (e enclosed) Find(text string) ([]Block, error) {
	var blocks []Block

	lines := splitLines(text)

	for i := 0; i < len(lines); i++ {
		opening := lines[i]
		if !opening.terminated() {
			continue
		}

		indent, rest := splitIndent(text[opening.start:opening.end])

		tag, ok := e.open(rest)
		if !ok {
			continue
		}

		j, matched := e.closing(text, lines[i+1:], indent, tag)
		if j < 0 {
			return nil, &BoundaryError{
				Dialect: e.name,
				Offset:  opening.start,
				Reason:  "no closing delimiter at indentation " + quoteIndent(indent),
			}
		}

		if !matched {
			continue
		}

		closing := lines[i+1+j]
		blocks = append(blocks, Block{
			Kind:   e.kind,
			Start:  opening.start,
			End:    closing.end,
			Before: text[opening.start:opening.next],
			Code:   text[opening.next:closing.start],
			After:  text[closing.start:closing.end],
			Indent: FixedIndent{Prefix: indent},
		})

		i += 1 + j
	}

	return blocks, nil
}

// closing returns the index of the first closing line at indent, and whether
// its name matches tag. It returns -1 when there is none.
func (e enclosed) closing(text string, lines []line, indent, tag string) (int, bool) {
	for j, l := range lines {
		content := text[l.start:l.end]
		if !strings.HasPrefix(content, indent) {
			continue
		}

		name, ok := e.close(content[len(indent):])
		if !ok {
			continue
		}

		return j, name == tag
	}

	return -1, false
}

func quoteIndent(indent string) string {
	if len(indent) == 1 {
		return "1 space"
	}

	return strconv.Itoa(len(indent)) + " spaces"
}

const fence = "```"

func fenced() enclosed {
	return enclosed{
		kind: KindFenced,
		name: "markdown",
		open: func(rest string) (string, bool) {
			return "", rest == fence+"python"
		},
		close: func(rest string) (string, bool) {
			return "", isCloser(rest, "", fence)
		},
	}
}

func minted() enclosed {
	return enclosed{
		kind: KindEnvironment,
		name: "latex",
		open: func(rest string) (string, bool) {
			return "", rest == `\begin{minted}{python}`
		},
		close: func(rest string) (string, bool) {
			return "", isCloser(rest, "", `\end{minted}`)
		},
	}
}

// PythonTeX environment names accepted by [MultiEnvironment].
var pythontexEnvs = []string{"pyblock", "pycode", "pyconsole", "pyverbatim"}

func pythontex() enclosed {
	return enclosed{
		kind: KindMultiEnvironment,
		name: "pythontex",
		open: func(rest string) (string, bool) {
			return environment(rest, `\begin{`, false)
		},
		close: func(rest string) (string, bool) {
			return environment(rest, `\end{`, true)
		},
	}
}

// environment parses `\begin{name}` or `\end{name}` for a PythonTeX name.
// Trailing whitespace is only accepted on closing lines.
func environment(rest, prefix string, trailing bool) (string, bool) {
	for _, name := range pythontexEnvs {
		marker := prefix + name + "}"
		if trailing && isCloser(rest, "", marker) {
			return name, true
		}

		if !trailing && rest == marker {
			return name, true
		}
	}

	return "", false
}
