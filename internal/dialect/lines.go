package dialect

import "strings"

// line locates one line of a text. text[start:end] is the content without
// its "\n" or "\r\n" terminator; next is the offset of the following line.
type line struct {
	start int
	end   int
	next  int
}

func (l line) terminated() bool {
	return l.next > l.end
}

// splitLines returns the lines of text. A final newline does not start an
// extra empty line.
func splitLines(text string) []line {
	var lines []line

	for start := 0; start < len(text); {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			lines = append(lines, line{start: start, end: len(text), next: len(text)})

			break
		}

		next := start + idx + 1

		end := next - 1
		if end > start && text[end-1] == '\r' {
			end--
		}

		lines = append(lines, line{start: start, end: end, next: next})
		start = next
	}

	return lines
}

// splitIndent separates the leading spaces of s from the rest.
func splitIndent(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}

	return s[:i], s[i:]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isCloser reports whether content is exactly indent followed by marker and
// optional trailing whitespace.
func isCloser(content, indent, marker string) bool {
	if !strings.HasPrefix(content, indent+marker) {
		return false
	}

	return isBlank(content[len(indent)+len(marker):])
}
