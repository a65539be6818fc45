// Package workspace finds the documents to process and writes them back.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ErrWrite wraps failures to write a document back.
var ErrWrite = errors.New("cannot write file")

// FS is a file system that can also be written to.
type FS interface {
	fs.FS
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// File is a document found by [Discover].
type File struct {
	// Path addresses the file within the FS.
	Path string
	// Name is the path shown to the user.
	Name string
}

// Options configure [Discover].
type Options struct {
	// Extensions kept when walking directories, with the leading dot.
	Extensions []string
	Exclude    []glob.Glob
}

var (
	// FormatExtensions are the documents the format and list commands walk.
	FormatExtensions = []string{".md", ".markdown", ".rst", ".tex", ".py"}
	// ReflowExtensions are the documents the reflow command walks.
	ReflowExtensions = []string{".md", ".markdown", ".py", ".txt"}
)

// pruned directories are never walked into.
var pruned = []string{"_build", "node_modules", "__pycache__", ".git"}

const fileMode = 0o644

// CompileExcludes compiles exclusion globs. A "*" does not cross "/"; use
// "**" for that.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}

// Discover expands roots into the files to process. Files named directly are
// always kept. Directories are walked for files with one of the extensions
// of opts; hidden and build directories are pruned, and files or directories
// matching an exclude glob by relative path or base name are skipped. The
// result is sorted by path and free of duplicates.
func Discover(fsys fs.FS, roots []File, opts Options) ([]File, error) {
	seen := make(map[string]bool)

	var files []File

	add := func(f File) {
		if !seen[f.Path] {
			seen[f.Path] = true
			files = append(files, f)
		}
	}

	for _, root := range roots {
		info, err := fs.Stat(fsys, root.Path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(root)

			continue
		}

		err = fs.WalkDir(fsys, root.Path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if p == root.Path {
				return nil
			}

			rel := strings.TrimPrefix(p, strings.TrimSuffix(root.Path, "/")+"/")
			if root.Path == "." {
				rel = p
			}

			if d.IsDir() {
				if isPruned(d.Name()) || excluded(opts.Exclude, rel, d.Name()) {
					return fs.SkipDir
				}

				return nil
			}

			if !hasExtension(d.Name(), opts.Extensions) || excluded(opts.Exclude, rel, d.Name()) {
				return nil
			}

			add(File{Path: p, Name: filepath.Join(root.Name, filepath.FromSlash(rel))})

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return files, nil
}

func isPruned(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}

	for _, p := range pruned {
		if name == p {
			return true
		}
	}

	return false
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))

	for _, e := range exts {
		if ext == e {
			return true
		}
	}

	return false
}

func excluded(globs []glob.Glob, rel, base string) bool {
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}

	return false
}

// Read returns the content of the file at name.
func Read(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Write replaces the content of the file at name, keeping its permissions.
func Write(fsys FS, name, content string) error {
	perm := fs.FileMode(fileMode)

	if info, err := fs.Stat(fsys, name); err == nil {
		perm = info.Mode().Perm()
	}

	if err := fsys.WriteFile(name, []byte(content), perm); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}

	return nil
}

// Local returns the operating system file system. Paths are absolute slash
// paths without the leading slash, as returned by [Root].
func Local() FS {
	return local{FS: os.DirFS("/")}
}

type local struct {
	fs.FS
}

func (local) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}

	return os.WriteFile(string(filepath.Separator)+filepath.FromSlash(name), data, perm)
}

// Root turns a command line path into a File of [Local].
func Root(arg string) (File, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return File{}, err
	}

	p := strings.TrimPrefix(filepath.ToSlash(abs), "/")
	if p == "" {
		p = "."
	}

	return File{Path: p, Name: filepath.Clean(arg)}, nil
}
