package reflow

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

const (
	punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	maxBlank    = 2
)

type segmentKind int

const (
	// prose lines are joined and rewrapped.
	prose segmentKind = iota
	// verbatim lines are copied as they are and stop a paragraph.
	verbatim
	// gap is a run of blank lines.
	gap
)

// segment is a sentinel-delimited piece of the text. Only prose segments
// are rewrapped.
type segment struct {
	kind   segmentKind
	indent string
	lines  []string
}

// Fill rewraps the paragraphs of text greedily to width display columns.
//
// Runs of three or more blank lines become two. Lines ending in "::" and
// lines indented by four spaces or a tab are kept verbatim and end the
// current paragraph, as does a change of indentation. A double space inside a
// line forces a line break. Words longer than width are not broken. Leading
// and trailing blank lines are removed.
func Fill(text string, width int) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, l := range lines {
		if !isVerbatim(l) {
			lines[i] = strings.TrimRight(l, " \t")
		}
	}

	migratePunctuation(lines)

	var out []string

	for _, seg := range segments(lines) {
		switch seg.kind {
		case prose:
			out = append(out, wrap(seg, width)...)
		case gap:
			for i, n := 0, min(len(seg.lines), maxBlank); i < n; i++ {
				out = append(out, "")
			}
		default:
			out = append(out, seg.lines...)
		}
	}

	for len(out) > 0 && isBlank(out[0]) {
		out = out[1:]
	}

	for len(out) > 0 && isBlank(out[len(out)-1]) {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n")
}

func isVerbatim(line string) bool {
	if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
		return true
	}

	return strings.HasSuffix(strings.TrimSpace(line), "::")
}

// migratePunctuation runs line by line. A line without trailing punctuation
// that is followed by another line of its paragraph gets a period, and the
// following line is capitalized. A line ending with a period that is followed
// by a line not ending with one hands its period over.
func migratePunctuation(lines []string) {
	for i, l := range lines {
		if isBlank(l) || isVerbatim(l) || i+1 == len(lines) {
			continue
		}

		next := lines[i+1]
		if isBlank(next) || isVerbatim(next) {
			continue
		}

		switch {
		case !endsWithPunctuation(l):
			lines[i] = l + "."
			lines[i+1] = capitalize(next)
		case strings.HasSuffix(l, ".") && !strings.HasSuffix(next, "."):
			lines[i] = strings.TrimSuffix(l, ".")
			lines[i+1] = next + "."
		}
	}
}

func endsWithPunctuation(line string) bool {
	r, _ := utf8.DecodeLastRuneInString(line)

	return strings.ContainsRune(punctuation, r)
}

func capitalize(line string) string {
	body := strings.TrimLeft(line, " ")
	r, size := utf8.DecodeRuneInString(body)

	if size == 0 {
		return line
	}

	return line[:len(line)-len(body)] + string(unicode.ToUpper(r)) + body[size:]
}

func segments(lines []string) []segment {
	var segs []segment

	push := func(kind segmentKind, indent, line string) {
		if n := len(segs); n > 0 && segs[n-1].kind == kind && kind != verbatim && segs[n-1].indent == indent {
			segs[n-1].lines = append(segs[n-1].lines, line)

			return
		}

		segs = append(segs, segment{kind: kind, indent: indent, lines: []string{line}})
	}

	for _, l := range lines {
		switch {
		case isBlank(l):
			push(gap, "", "")
		case isVerbatim(l):
			push(verbatim, "", l)
		default:
			body := strings.TrimLeft(l, " ")
			push(prose, l[:len(l)-len(body)], body)
		}
	}

	return segs
}

// wrap packs the words of seg into lines no wider than width, each prefixed
// by the segment's indentation.
func wrap(seg segment, width int) []string {
	// wordwrap never breaks before a word as wide as its limit, so a limit
	// of 1 would keep every word on one line. At 2 each word already gets
	// its own line.
	ww := wordwrap.NewWriter(max(width-runewidth.StringWidth(seg.indent), 2))
	ww.Breakpoints = nil

	_, _ = ww.Write([]byte(joinWords(seg.lines)))
	_ = ww.Close()

	var out []string

	for _, l := range strings.Split(ww.String(), "\n") {
		if l != "" {
			out = append(out, seg.indent+l)
		}
	}

	return out
}

// joinWords joins the words of lines with single spaces. A double space
// inside a line becomes a newline, which the wrapper keeps as a break.
func joinWords(lines []string) string {
	var (
		b   strings.Builder
		brk bool
	)

	for _, l := range lines {
		for i, part := range strings.Split(l, "  ") {
			if i > 0 {
				brk = true
			}

			fields := strings.Fields(part)
			if len(fields) == 0 {
				continue
			}

			if b.Len() > 0 {
				if brk {
					b.WriteByte('\n')
				} else {
					b.WriteByte(' ')
				}
			}

			brk = false

			b.WriteString(strings.Join(fields, " "))
		}
	}

	return b.String()
}
