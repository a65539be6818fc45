package dialect

import "strings"

var (
	// directiveTypes are the reStructuredText directives that take a language.
	directiveTypes = []string{"code", "code-block", "sourcecode", "ipython"}
	// pythonLangs are the language arguments treated as Python.
	pythonLangs = []string{"python", "py", "sage", "python3", "py3", "numpy"}
)

const jupyterExecute = ".. jupyter-execute::"

// directive matches reStructuredText code directives. The code indentation is
// not given by the directive line, so blocks use [MinIndent].
type directive struct{}

func (directive) Kind() Kind   { return KindDirective }
func (directive) Name() string { return "rst" }

func (d directive) Find(text string) ([]Block, error) {
	var blocks []Block

	lines := splitLines(text)

	for i := 0; i < len(lines); i++ {
		opening := lines[i]
		if !opening.terminated() {
			continue
		}

		indent, rest := splitIndent(text[opening.start:opening.end])
		if !isPythonDirective(rest) {
			continue
		}

		j := i + 1
		for j < len(lines) && lines[j].terminated() && isOption(text[lines[j].start:lines[j].end], indent) {
			j++
		}

		blank := j
		for j < len(lines) && lines[j].terminated() && lines[j].start == lines[j].end {
			j++
		}

		k := j
		for k < len(lines) && isCodeLine(text, lines[k], indent) {
			k++
		}

		if k == j {
			if j == blank {
				continue
			}

			// the last empty line is the whole code region
			j--
		}

		code := text[lines[j].start:lines[k-1].next]

		policy, err := NewMinIndent(code)
		if err != nil {
			return nil, &BoundaryError{
				Dialect: d.Name(),
				Offset:  opening.start,
				Reason:  "cannot infer indentation: " + err.Error(),
			}
		}

		blocks = append(blocks, Block{
			Kind:   KindDirective,
			Start:  opening.start,
			End:    lines[k-1].next,
			Before: text[opening.start:lines[j].start],
			Code:   code,
			Indent: policy,
		})

		i = k - 1
	}

	return blocks, nil
}

func isPythonDirective(rest string) bool {
	if rest == jupyterExecute {
		return true
	}

	after, ok := strings.CutPrefix(rest, ".. ")
	if !ok {
		return false
	}

	typ, lang, ok := strings.Cut(after, ":: ")
	if !ok {
		return false
	}

	return contains(directiveTypes, typ) && contains(pythonLangs, lang)
}

// isOption reports whether content is a directive option: indented deeper
// than the directive and starting with a colon.
func isOption(content, indent string) bool {
	if !strings.HasPrefix(content, indent+" ") {
		return false
	}

	_, rest := splitIndent(content[len(indent):])

	return strings.HasPrefix(rest, ":")
}

// isCodeLine reports whether l belongs to a directive body: an empty line, or
// a line indented deeper than the directive. Only the last line of the text
// may lack a newline, and only if it is not empty.
func isCodeLine(text string, l line, indent string) bool {
	content := text[l.start:l.end]
	if content == "" {
		return l.terminated()
	}

	return strings.HasPrefix(content, indent+" ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
