package engine

import (
	"fmt"
	"sort"

	"github.com/Gobot1234/blacken-docs/internal/splice"
)

// FormatError records a code block the formatter rejected. The block's code
// is left as it was.
type FormatError struct {
	// Offset of the block's first byte in the original document.
	Offset  int
	Line    int
	Dialect string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: code block parse error %v", e.Line, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Message returns e as a line-numbered diagnostic.
func (e *FormatError) Message() Message {
	return Message{Line: e.Line, Text: "code block parse error " + e.Err.Error()}
}

// Message is a line-numbered diagnostic for reporting.
type Message struct {
	Line int
	Text string
}

// collector gathers format errors for one document without aborting it.
type collector struct {
	original string
	journal  *splice.Journal
	errs     []*FormatError
}

// record adds err for a block found at offset in the current pass text.
func (c *collector) record(offset int, dialect string, err error) {
	origin := c.journal.Origin(offset)

	c.errs = append(c.errs, &FormatError{
		Offset:  origin,
		Line:    splice.LineAt(c.original, origin),
		Dialect: dialect,
		Err:     err,
	})
}

func (c *collector) errors() []*FormatError {
	sort.SliceStable(c.errs, func(i, j int) bool { return c.errs[i].Offset < c.errs[j].Offset })

	return c.errs
}
