package prose

import (
	"strings"
)

// Docstring is a triple-quoted string that documents a module, class or
// function.
type Docstring struct {
	// Start and End delimit the body between the quotes.
	Start int
	End   int
	Quote string
	// Indent is the indentation of the line holding the opening quotes.
	Indent int
}

// Docstrings returns the docstrings of a Python module in source order: the
// first statement of the module and the first statement after a def or class
// header, when that statement is a triple-quoted string.
func Docstrings(src string) []Docstring {
	var (
		docs   []Docstring
		expect = true
		header bool
		depth  int
	)

	for pos := 0; pos < len(src); {
		end := lineEnd(src, pos)
		line := src[pos:end]
		body := strings.TrimLeft(line, " \t")
		next := min(end+1, len(src))

		if body == "" || strings.HasPrefix(body, "#") {
			pos = next

			continue
		}

		if header {
			depth += nesting(body)
			if depth <= 0 {
				header = false
				expect = opensBlock(body)
			}

			pos = next

			continue
		}

		if expect {
			if quote, n, ok := openingQuote(body); ok {
				start := pos + len(line) - len(body) + n

				stop := closingQuote(src, start, quote)
				if stop < 0 {
					return docs
				}

				docs = append(docs, Docstring{Start: start, End: stop, Quote: quote, Indent: len(line) - len(body)})
				expect = false
				pos = min(lineEnd(src, stop)+1, len(src))

				continue
			}
		}

		expect = false

		if isDefinition(body) {
			depth = nesting(body)
			if depth > 0 {
				header = true
			} else {
				expect = opensBlock(body)
			}

			pos = next

			continue
		}

		if quote, at := unclosedTriple(body); at >= 0 {
			stop := closingQuote(src, pos+len(line)-len(body)+at+len(quote), quote)
			if stop < 0 {
				return docs
			}

			pos = min(lineEnd(src, stop)+1, len(src))

			continue
		}

		pos = next
	}

	return docs
}

func lineEnd(src string, pos int) int {
	if i := strings.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i
	}

	return len(src)
}

func isDefinition(body string) bool {
	body = strings.TrimPrefix(body, "async ")

	for _, kw := range []string{"def ", "class "} {
		if strings.HasPrefix(body, kw) {
			return true
		}
	}

	return false
}

// nesting returns the bracket depth change of a line.
func nesting(body string) int {
	depth := 0

	for _, r := range body {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}

	return depth
}

func opensBlock(body string) bool {
	if i := strings.Index(body, "#"); i >= 0 {
		body = body[:i]
	}

	return strings.HasSuffix(strings.TrimSpace(body), ":")
}

// openingQuote reports whether body starts a triple-quoted string and
// returns its quote and the length of prefix and quote.
func openingQuote(body string) (string, int, bool) {
	n := 0
	if body != "" && strings.ContainsRune("rRuU", rune(body[0])) {
		n = 1
	}

	for _, q := range []string{`"""`, `'''`} {
		if strings.HasPrefix(body[n:], q) {
			return q, n + len(q), true
		}
	}

	return "", 0, false
}

// closingQuote returns the offset of the first unescaped quote in src at or
// after from, or -1.
func closingQuote(src string, from int, quote string) int {
	for from <= len(src) {
		i := strings.Index(src[from:], quote)
		if i < 0 {
			return -1
		}

		at := from + i

		escapes := 0
		for j := at - 1; j >= 0 && src[j] == '\\'; j-- {
			escapes++
		}

		if escapes%2 == 0 {
			return at
		}

		from = at + 1
	}

	return -1
}

// unclosedTriple returns the quote and offset of a triple-quoted string that
// starts in body and does not end on the same line.
func unclosedTriple(body string) (string, int) {
	for i := 0; i < len(body); {
		at, quote := nextTriple(body[i:])
		if at < 0 {
			return "", -1
		}

		start := i + at + len(quote)

		stop := strings.Index(body[start:], quote)
		if stop < 0 {
			return quote, i + at
		}

		i = start + stop + len(quote)
	}

	return "", -1
}

func nextTriple(s string) (int, string) {
	d, q := strings.Index(s, `"""`), strings.Index(s, `'''`)

	switch {
	case d < 0 && q < 0:
		return -1, ""
	case q < 0 || (d >= 0 && d < q):
		return d, `"""`
	default:
		return q, `'''`
	}
}
