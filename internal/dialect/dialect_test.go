package dialect_test

import (
	"testing"

	"github.com/Gobot1234/blacken-docs/internal/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSpans(t *testing.T, text string, blocks []dialect.Block) {
	t.Helper()

	for _, b := range blocks {
		assert.Equal(t, text[b.Start:b.End], b.Span())
	}
}

func TestFencedFind(t *testing.T) {
	t.Parallel()

	text := "# Title\n\n```python\ndef f(x):\n    return x+1\n```\n\ntext\n"

	blocks, err := dialect.Fenced.Find(text)

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assertSpans(t, text, blocks)

	b := blocks[0]
	assert.Equal(t, dialect.KindFenced, b.Kind)
	assert.Equal(t, "```python\n", b.Before)
	assert.Equal(t, "def f(x):\n    return x+1\n", b.Code)
	assert.Equal(t, "```", b.After)
	assert.Equal(t, dialect.FixedIndent{Prefix: ""}, b.Indent)
}

func TestFencedFindIndented(t *testing.T) {
	t.Parallel()

	text := "- item\n\n  ```python\n  x = 1\n    ```\n  ```  \nafter\n"

	blocks, err := dialect.Fenced.Find(text)

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assertSpans(t, text, blocks)
	assert.Equal(t, "  x = 1\n    ```\n", blocks[0].Code)
	assert.Equal(t, "  ```  ", blocks[0].After)
	assert.Equal(t, dialect.FixedIndent{Prefix: "  "}, blocks[0].Indent)
}

func TestFencedFindIgnoresOtherTags(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"```py\nx=1\n```\n",
		"```Python\nx=1\n```\n",
		"```python3\nx=1\n```\n",
		"```python \nx=1\n```\n",
		"text ```python\nx=1\n```\n",
		"```python",
	} {
		blocks, err := dialect.Fenced.Find(text)

		require.NoError(t, err, text)
		assert.Empty(t, blocks, text)
	}
}

func TestFencedFindMultiple(t *testing.T) {
	t.Parallel()

	text := "```python\na\n```\nmid\n```python\n```\n"

	blocks, err := dialect.Fenced.Find(text)

	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assertSpans(t, text, blocks)
	assert.Equal(t, "a\n", blocks[0].Code)
	assert.Equal(t, "", blocks[1].Code)
	assert.Less(t, blocks[0].End, blocks[1].Start)
}

func TestFencedFindUnclosed(t *testing.T) {
	t.Parallel()

	_, err := dialect.Fenced.Find("intro\n```python\nx = 1\n")

	require.ErrorIs(t, err, dialect.ErrBoundary)

	var berr *dialect.BoundaryError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, len("intro\n"), berr.Offset)
	assert.Equal(t, "markdown", berr.Dialect)
}

func TestDirectiveFind(t *testing.T) {
	t.Parallel()

	text := "Example\n\n.. code-block:: python\n   :linenos:\n\n   x=1\n\n\nAfter.\n"

	blocks, err := dialect.Directive.Find(text)

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assertSpans(t, text, blocks)

	b := blocks[0]
	assert.Equal(t, ".. code-block:: python\n   :linenos:\n\n", b.Before)
	assert.Equal(t, "   x=1\n\n\n", b.Code)
	assert.Equal(t, "", b.After)
	assert.Equal(t, dialect.MinIndent{Width: 3, Trailing: "\n\n\n"}, b.Indent)
}

func TestFindCRLF(t *testing.T) {
	t.Parallel()

	text := "Intro\r\n\r\n```python\r\nx=1\r\n```\r\n\r\n.. code-block:: python\r\n   :linenos:\r\n\r\n   y=2\r\n\r\n" +
		"\\begin{minted}{python}\r\nz=3\r\n\\end{minted}\r\n\\begin{pycode}\r\nw=4\r\n\\end{pycode}\r\n"

	fenced, err := dialect.Fenced.Find(text)
	require.NoError(t, err)
	require.Len(t, fenced, 1)
	assertSpans(t, text, fenced)
	assert.Equal(t, "```python\r\n", fenced[0].Before)
	assert.Equal(t, "x=1\r\n", fenced[0].Code)
	assert.Equal(t, "```", fenced[0].After)

	directives, err := dialect.Directive.Find(text)
	require.NoError(t, err)
	require.Len(t, directives, 1)
	assertSpans(t, text, directives)
	assert.Equal(t, ".. code-block:: python\r\n   :linenos:\r\n\r\n", directives[0].Before)
	assert.Equal(t, "   y=2\r\n\r\n", directives[0].Code)
	assert.Equal(t, dialect.MinIndent{Width: 3, Trailing: "\n\n"}, directives[0].Indent)

	for _, d := range []dialect.Dialect{dialect.Environment, dialect.MultiEnvironment} {
		blocks, err := d.Find(text)
		require.NoError(t, err, d.Name())
		require.Len(t, blocks, 1, d.Name())
		assertSpans(t, text, blocks)
	}
}

func TestDirectiveFindVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		code  string
		found bool
	}{
		{name: "code", text: ".. code:: py\n\n    x\n", code: "    x\n", found: true},
		{name: "sourcecode", text: ".. sourcecode:: python3\n\n  x\n", code: "  x\n", found: true},
		{name: "ipython", text: ".. ipython:: numpy\n\n  x\n", code: "  x\n", found: true},
		{name: "sage", text: ".. code-block:: sage\n\n  x\n", code: "  x\n", found: true},
		{name: "jupyter", text: ".. jupyter-execute::\n\n  x\n", code: "  x\n", found: true},
		{name: "no blank line", text: ".. code:: py3\n  x\n", code: "  x\n", found: true},
		{name: "unterminated", text: ".. code:: py\n\n   x=1", code: "   x=1", found: true},
		{name: "other language", text: ".. code-block:: bash\n\n  x\n"},
		{name: "unknown directive", text: ".. literalinclude:: python\n\n  x\n"},
		{name: "no body", text: ".. code-block:: python\nnot code\n"},
		{name: "at end", text: ".. code-block:: python\n"},
		{name: "trailing space", text: ".. code-block:: python \n\n  x\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks, err := dialect.Directive.Find(tt.text)
			require.NoError(t, err)

			if !tt.found {
				assert.Empty(t, blocks)

				return
			}

			require.Len(t, blocks, 1)
			assertSpans(t, tt.text, blocks)
			assert.Equal(t, tt.code, blocks[0].Code)
		})
	}
}

func TestDirectiveFindIndented(t *testing.T) {
	t.Parallel()

	text := "  .. code-block:: python\n     :caption: demo\n\n     if x:\n         y()\n\n     z()\nback\n"

	blocks, err := dialect.Directive.Find(text)

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assertSpans(t, text, blocks)
	assert.Equal(t, "     if x:\n         y()\n\n     z()\n", blocks[0].Code)
	assert.Equal(t, dialect.MinIndent{Width: 5, Trailing: "\n"}, blocks[0].Indent)
}

func TestDirectiveFindAllBlank(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		".. code-block:: python\n\nnot indented\n",
		".. code-block:: python\n\n     \n\nback\n",
	} {
		_, err := dialect.Directive.Find(text)

		var berr *dialect.BoundaryError
		require.ErrorAs(t, err, &berr, text)
		assert.Equal(t, 0, berr.Offset)
	}
}

func TestMintedFind(t *testing.T) {
	t.Parallel()

	text := "\\begin{document}\n  \\begin{minted}{python}\n  x=1\n  \\end{minted}\n\\end{document}\n"

	blocks, err := dialect.Environment.Find(text)

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assertSpans(t, text, blocks)
	assert.Equal(t, "  \\begin{minted}{python}\n", blocks[0].Before)
	assert.Equal(t, "  x=1\n", blocks[0].Code)
	assert.Equal(t, "  \\end{minted}", blocks[0].After)
	assert.Equal(t, dialect.FixedIndent{Prefix: "  "}, blocks[0].Indent)
}

func TestMintedFindUnclosed(t *testing.T) {
	t.Parallel()

	_, err := dialect.Environment.Find("\\begin{minted}{python}\nx\n  \\end{minted}\n")

	require.ErrorIs(t, err, dialect.ErrBoundary)
}

func TestPythontexFind(t *testing.T) {
	t.Parallel()

	text := "\\begin{pycode}\nx=1\n\\end{pycode}\n\\begin{pyconsole}\ny\n\\end{pyconsole}\n"

	blocks, err := dialect.MultiEnvironment.Find(text)

	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assertSpans(t, text, blocks)
	assert.Equal(t, "x=1\n", blocks[0].Code)
	assert.Equal(t, "\\end{pyconsole}", blocks[1].After)
}

func TestPythontexFindMismatchedClose(t *testing.T) {
	t.Parallel()

	text := "\\begin{pycode}\nx=1\n\\end{pyblock}\n\\begin{pyblock}\ny=2\n\\end{pyblock}\n"

	blocks, err := dialect.MultiEnvironment.Find(text)

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assertSpans(t, text, blocks)
	assert.Equal(t, "y=2\n", blocks[0].Code)
}

func TestPythontexFindUnclosed(t *testing.T) {
	t.Parallel()

	_, err := dialect.MultiEnvironment.Find("\\begin{pyverbatim}\nx\n")

	require.ErrorIs(t, err, dialect.ErrBoundary)
}

func TestOrdered(t *testing.T) {
	t.Parallel()

	got := dialect.Ordered([]dialect.Dialect{
		dialect.MultiEnvironment,
		dialect.Fenced,
		nil,
		dialect.Directive,
		dialect.Fenced,
	})

	kinds := make([]dialect.Kind, len(got))
	for i, d := range got {
		kinds[i] = d.Kind()
	}

	assert.Equal(t, []dialect.Kind{dialect.KindFenced, dialect.KindDirective, dialect.KindMultiEnvironment}, kinds)
}

func TestByName(t *testing.T) {
	t.Parallel()

	for _, name := range dialect.Names() {
		d, err := dialect.ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
		assert.Equal(t, name, d.Kind().String())
	}

	_, err := dialect.ByName("asciidoc")
	require.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestFixedIndent(t *testing.T) {
	t.Parallel()

	p := dialect.FixedIndent{Prefix: "  "}

	assert.Equal(t, "x = 1\n\nif y:\n    z\n", p.Dedent("  x = 1\n\n  if y:\n      z\n"))
	assert.Equal(t, "x\n \n", p.Dedent("  x\n \n"))
	assert.Equal(t, "  x = 1\n\n  y\n", p.Reindent("x = 1\n\ny\n"))
	assert.Equal(t, "", p.Reindent(""))
}

func TestMinIndentRoundTrip(t *testing.T) {
	t.Parallel()

	code := "   x=1\n   if x:\n       y\n\n\n"

	p, err := dialect.NewMinIndent(code)
	require.NoError(t, err)
	assert.Equal(t, dialect.MinIndent{Width: 3, Trailing: "\n\n\n"}, p)

	assert.Equal(t, "x=1\nif x:\n    y\n\n\n", p.Dedent(code))
	assert.Equal(t, "   x = 1\n   if x:\n       y\n\n\n", p.Reindent("x = 1\nif x:\n    y\n"))
}

func TestMinIndentNoTrailingNewline(t *testing.T) {
	t.Parallel()

	p, err := dialect.NewMinIndent("    a\n  b")
	require.NoError(t, err)
	assert.Equal(t, dialect.MinIndent{Width: 2}, p)
	assert.Equal(t, "  a\nb", p.Dedent("    a\n  b"))
	assert.Equal(t, "  a = 1", p.Reindent("a = 1\n"))
}

func TestMinIndentBlankLines(t *testing.T) {
	t.Parallel()

	p, err := dialect.NewMinIndent("      x\n  \n      y\n")
	require.NoError(t, err)
	assert.Equal(t, 6, p.Width)
	assert.Equal(t, "x\n\ny\n", p.Dedent("      x\n  \n      y\n"))

	_, err = dialect.NewMinIndent("\n   \n\n")
	require.Error(t, err)
}
