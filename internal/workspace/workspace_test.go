package workspace_test

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/Gobot1234/blacken-docs/internal/workspace"
	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFS(t *testing.T, files ...string) *memoryfs.FS {
	t.Helper()

	fsys := memoryfs.New()

	for _, name := range files {
		if dir := path.Dir(name); dir != "." {
			require.NoError(t, fsys.MkdirAll(dir, 0o755))
		}

		require.NoError(t, fsys.WriteFile(name, []byte("content of "+name), 0o644))
	}

	return fsys
}

func paths(files []workspace.File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}

	return out
}

var tree = []string{
	"README.md",
	"notes.tex",
	"docs/a.rst",
	"docs/b.txt",
	"docs/_build/x.md",
	"docs/.hidden/y.md",
	"docs/gen/skip.md",
	"node_modules/z.md",
	"pkg/mod.py",
	"pkg/__pycache__/c.py",
	".git/HEAD.md",
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, tree...)

	excludes, err := workspace.CompileExcludes([]string{"gen", "*.tex"})
	require.NoError(t, err)

	files, err := workspace.Discover(fsys, []workspace.File{{Path: ".", Name: "."}}, workspace.Options{
		Extensions: workspace.FormatExtensions,
		Exclude:    excludes,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "docs/a.rst", "pkg/mod.py"}, paths(files))
	assert.Equal(t, "README.md", files[0].Name)
}

func TestDiscoverExplicitFiles(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, tree...)

	roots := []workspace.File{
		{Path: "docs/b.txt", Name: "docs/b.txt"},
		{Path: "docs", Name: "docs"},
		{Path: "docs/a.rst", Name: "docs/a.rst"},
	}

	files, err := workspace.Discover(fsys, roots, workspace.Options{Extensions: workspace.FormatExtensions})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.rst", "docs/b.txt", "docs/gen/skip.md"}, paths(files))
	assert.Equal(t, "docs/gen/skip.md", files[2].Name)
}

func TestDiscoverReflowExtensions(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, tree...)

	files, err := workspace.Discover(fsys, []workspace.File{{Path: "docs", Name: "docs"}}, workspace.Options{
		Extensions: workspace.ReflowExtensions,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/b.txt", "docs/gen/skip.md"}, paths(files))
}

func TestDiscoverDoubleStar(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, tree...)

	excludes, err := workspace.CompileExcludes([]string{"docs/**"})
	require.NoError(t, err)

	files, err := workspace.Discover(fsys, []workspace.File{{Path: ".", Name: "."}}, workspace.Options{
		Extensions: workspace.FormatExtensions,
		Exclude:    excludes,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "notes.tex", "pkg/mod.py"}, paths(files))
}

func TestDiscoverMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := workspace.Discover(newFS(t, tree...), []workspace.File{{Path: "nope", Name: "nope"}}, workspace.Options{})

	require.Error(t, err)
}

func TestReadWrite(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, tree...)

	require.NoError(t, workspace.Write(fsys, "docs/a.rst", "new content"))

	got, err := workspace.Read(fsys, "docs/a.rst")
	require.NoError(t, err)
	assert.Equal(t, "new content", got)
}

type readOnly struct {
	*memoryfs.FS
}

var errReadOnly = errors.New("read-only")

func (readOnly) WriteFile(string, []byte, fs.FileMode) error {
	return errReadOnly
}

func TestWriteFailure(t *testing.T) {
	t.Parallel()

	err := workspace.Write(readOnly{newFS(t, tree...)}, "README.md", "x")

	require.ErrorIs(t, err, workspace.ErrWrite)
	require.ErrorIs(t, err, errReadOnly)
	assert.Contains(t, err.Error(), "README.md")
}

func TestRoot(t *testing.T) {
	t.Parallel()

	f, err := workspace.Root("docs/../docs/a.rst")
	require.NoError(t, err)

	assert.Equal(t, "docs/a.rst", f.Name)
	assert.True(t, strings.HasSuffix(f.Path, "docs/a.rst"))
	assert.False(t, strings.HasPrefix(f.Path, "/"))
	assert.True(t, fs.ValidPath(f.Path))
}
