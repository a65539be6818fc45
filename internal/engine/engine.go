// Package engine formats the Python code blocks of a document.
//
// Dialects are applied one after the other, each to the output of the
// previous one. Every block is dedented, passed to the formatter, reindented
// and spliced back; text outside blocks is never touched.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Gobot1234/blacken-docs/internal/dialect"
	"github.com/Gobot1234/blacken-docs/internal/formatter"
	"github.com/Gobot1234/blacken-docs/internal/splice"
)

// Mode selects how a document with rejected blocks is written back.
type Mode int

const (
	// Strict discards every change of a document with a rejected block.
	Strict Mode = iota
	// Permissive keeps the blocks that were formatted.
	Permissive
)

func (m Mode) String() string {
	if m == Permissive {
		return "permissive"
	}

	return "strict"
}

// Document is the input of [Run].
type Document struct {
	Path     string
	Text     string
	Dialects []dialect.Dialect
}

// Options configure [Run].
type Options struct {
	Mode      Mode
	Formatter formatter.Options
}

// Result is the outcome of [Run].
type Result struct {
	Text    string
	Errors  []*FormatError
	Changed bool
	// Blocks counts the blocks found across all dialects.
	Blocks int
}

// Messages returns the errors of r as line-numbered messages.
func (r Result) Messages() []Message {
	msgs := make([]Message, len(r.Errors))

	for i, err := range r.Errors {
		msgs[i] = err.Message()
	}

	return msgs
}

// Run formats the code blocks of doc. Rejected blocks are recorded in
// Result.Errors. A *dialect.BoundaryError or a formatter failure other than
// a rejection is returned as error.
func Run(doc Document, f formatter.Formatter, opts Options) (Result, error) {
	var journal splice.Journal

	col := &collector{original: doc.Text, journal: &journal}
	text := doc.Text
	found := 0

	for _, d := range dialect.Ordered(doc.Dialects) {
		blocks, err := d.Find(text)
		if err != nil {
			return Result{}, boundary(err, doc.Text, &journal)
		}

		found += len(blocks)

		edits := make(splice.Edits, 0, len(blocks))

		for _, block := range blocks {
			code, err := Format(block, f, opts.Formatter)
			if errors.Is(err, formatter.ErrRejected) {
				col.record(block.Start, d.Name(), err)

				continue
			}

			if err != nil {
				return Result{}, fmt.Errorf("line %d: %w", splice.LineAt(doc.Text, journal.Origin(block.Start)), err)
			}

			replacement := block.Before + code + block.After
			if replacement != text[block.Start:block.End] {
				edits = append(edits, splice.Edit{Start: block.Start, End: block.End, Text: replacement})
			}
		}

		text, err = splice.Apply(text, edits)
		if err != nil {
			return Result{}, err
		}

		journal.Record(edits)
	}

	res := Result{Text: text, Errors: col.errors(), Blocks: found}

	if len(res.Errors) > 0 && opts.Mode == Strict {
		res.Text = doc.Text
	}

	res.Changed = res.Text != doc.Text

	return res, nil
}

// Format dedents the code of block, formats it and restores its indentation.
// The formatter always sees "\n" line endings; a block opened by a CRLF line
// gets CRLF endings back.
func Format(block dialect.Block, f formatter.Formatter, opts formatter.Options) (string, error) {
	code := strings.ReplaceAll(block.Code, "\r\n", "\n")

	formatted, err := f.Format(block.Indent.Dedent(code), opts)
	if err != nil {
		return "", err
	}

	out := block.Indent.Reindent(formatted)
	if strings.HasSuffix(block.Before, "\r\n") {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}

	return out, nil
}

func boundary(err error, original string, journal *splice.Journal) error {
	var berr *dialect.BoundaryError
	if !errors.As(err, &berr) {
		return err
	}

	return fmt.Errorf("line %d: %w", splice.LineAt(original, journal.Origin(berr.Offset)), err)
}
