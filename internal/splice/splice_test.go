package splice_test

import (
	"testing"

	"github.com/Gobot1234/blacken-docs/internal/splice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()

	src := "aaa[bb]ccc[d]ee"

	got, err := splice.Apply(src, splice.Edits{
		{Start: 3, End: 7, Text: "[BBBB]"},
		{Start: 10, End: 13, Text: ""},
	})

	require.NoError(t, err)
	assert.Equal(t, "aaa[BBBB]cccee", got)
}

func TestApplyNoEdits(t *testing.T) {
	t.Parallel()

	got, err := splice.Apply("unchanged", nil)

	require.NoError(t, err)
	assert.Equal(t, "unchanged", got)
}

func TestApplyErrors(t *testing.T) {
	t.Parallel()

	_, err := splice.Apply("0123456789", splice.Edits{
		{Start: 2, End: 5, Text: "x"},
		{Start: 4, End: 6, Text: "y"},
	})
	require.ErrorIs(t, err, splice.ErrOverlap)

	_, err = splice.Apply("0123", splice.Edits{{Start: 2, End: 9}})
	require.ErrorIs(t, err, splice.ErrOutOfRange)

	_, err = splice.Apply("0123", splice.Edits{{Start: 3, End: 2}})
	require.ErrorIs(t, err, splice.ErrOutOfRange)
}

func TestEditsOrigin(t *testing.T) {
	t.Parallel()

	// "ab|cd|ef|gh" -> "ab|CCCC|ef|" : first edit grows by 2, second drops 2
	edits := splice.Edits{
		{Start: 3, End: 5, Text: "CCCC"},
		{Start: 9, End: 11, Text: ""},
	}

	out, err := splice.Apply("ab|cd|ef|gh", edits)
	require.NoError(t, err)
	require.Equal(t, "ab|CCCC|ef|", out)

	assert.Equal(t, 0, edits.Origin(0))
	assert.Equal(t, 2, edits.Origin(2))
	assert.Equal(t, 3, edits.Origin(3))
	assert.Equal(t, 3, edits.Origin(6))
	assert.Equal(t, 5, edits.Origin(7))
	assert.Equal(t, 8, edits.Origin(10))
	assert.Equal(t, 11, edits.Origin(11))
}

func TestJournalOrigin(t *testing.T) {
	t.Parallel()

	var journal splice.Journal

	original := "one\ntwo\nthree\n"

	first := splice.Edits{{Start: 0, End: 3, Text: "one\nextra"}}
	pass1, err := splice.Apply(original, first)
	require.NoError(t, err)
	journal.Record(first)
	journal.Record(nil)

	second := splice.Edits{{Start: 10, End: 13, Text: "TWO"}}
	pass2, err := splice.Apply(pass1, second)
	require.NoError(t, err)
	journal.Record(second)

	require.Equal(t, "one\nextra\nTWO\nthree\n", pass2)

	three := len("one\nextra\nTWO\n")
	assert.Equal(t, len("one\ntwo\n"), journal.Origin(three))
	assert.Equal(t, 3, splice.LineAt(original, journal.Origin(three)))
}

func TestLineAt(t *testing.T) {
	t.Parallel()

	src := "a\nb\nc"

	assert.Equal(t, 1, splice.LineAt(src, 0))
	assert.Equal(t, 1, splice.LineAt(src, 1))
	assert.Equal(t, 2, splice.LineAt(src, 2))
	assert.Equal(t, 3, splice.LineAt(src, 4))
	assert.Equal(t, 3, splice.LineAt(src, 100))
	assert.Equal(t, 1, splice.LineAt(src, -1))
}
