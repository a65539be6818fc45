// Package splice replaces byte ranges of a text while keeping every byte
// outside those ranges intact, and maps offsets of the rewritten text back to
// the text it was produced from.
package splice

import (
	"errors"
	"fmt"
	"strings"
)

// Edit replaces Text[Start:End] of the source with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

func (e Edit) sizeIncrement() int {
	return len(e.Text) - (e.End - e.Start)
}

// Edits is an ordered list of non-overlapping edits, ascending by Start.
type Edits []Edit

// ErrOverlap is returned by [Apply] when two edits overlap or are out of order.
var ErrOverlap = errors.New("overlapping edits")

// ErrOutOfRange is returned by [Apply] when an edit lies outside the source.
var ErrOutOfRange = errors.New("edit out of range")

// Apply returns source with every edit applied. Edits must be sorted by
// Start and must not overlap.
func Apply(source string, edits Edits) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	size := len(source)
	prev := 0

	for i, edit := range edits {
		if edit.Start < 0 || edit.End > len(source) || edit.Start > edit.End {
			return "", fmt.Errorf("%w: edit %d [%d:%d] of %d bytes", ErrOutOfRange, i, edit.Start, edit.End, len(source))
		}

		if edit.Start < prev {
			return "", fmt.Errorf("%w: edit %d starts at %d before %d", ErrOverlap, i, edit.Start, prev)
		}

		prev = edit.End
		size += edit.sizeIncrement()
	}

	var res strings.Builder

	res.Grow(size)

	srcIdx := 0

	for _, edit := range edits {
		res.WriteString(source[srcIdx:edit.Start])
		res.WriteString(edit.Text)

		srcIdx = edit.End
	}

	res.WriteString(source[srcIdx:])

	return res.String(), nil
}

// Origin maps an offset of the text produced by applying e back to the
// offset it came from. Offsets inside a replaced range map to the start of
// that range.
func (e Edits) Origin(offset int) int {
	delta := 0

	for _, edit := range e {
		start := edit.Start + delta
		if offset < start {
			break
		}

		if offset < start+len(edit.Text) {
			return edit.Start
		}

		delta += edit.sizeIncrement()
	}

	return offset - delta
}

// Journal records the edits of successive rewrites of one text.
type Journal struct {
	passes []Edits
}

// Record appends the edits of one rewrite. Empty edit lists are skipped.
func (j *Journal) Record(edits Edits) {
	if len(edits) == 0 {
		return
	}

	j.passes = append(j.passes, edits)
}

// Origin maps an offset of the latest text back to the original text.
func (j *Journal) Origin(offset int) int {
	for i := len(j.passes) - 1; i >= 0; i-- {
		offset = j.passes[i].Origin(offset)
	}

	return offset
}

// LineAt returns the 1-based line number of offset in source.
func LineAt(source string, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}

	if offset < 0 {
		offset = 0
	}

	return strings.Count(source[:offset], "\n") + 1
}
