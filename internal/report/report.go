// Package report prints per-file outcomes, diffs and summaries the way black
// does, and computes the process return code.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Return codes.
const (
	CodeOK      = 0
	CodeChanged = 1
	CodeFailed  = 123
)

const (
	allDone = "All done! ✨ 🍰 ✨"
	ohNo    = "Oh no! 💥 💔 💥"
)

// Options configure a [Report].
type Options struct {
	// Check and Diff report what would change without writing.
	Check   bool
	Diff    bool
	Quiet   bool
	Verbose bool
	Color   bool
}

// Report counts file outcomes and prints them. Status lines go to the
// status writer, diffs and tables to the output writer.
type Report struct {
	opts   Options
	out    io.Writer
	status io.Writer

	changed int
	same    int
	failed  int

	bold  *color.Color
	red   *color.Color
	green *color.Color
	cyan  *color.Color
}

// New returns a report writing diffs to out and status lines to status.
func New(out, status io.Writer, opts Options) *Report {
	r := &Report{
		opts:   opts,
		out:    out,
		status: status,
		bold:   color.New(color.Bold),
		red:    color.New(color.FgRed),
		green:  color.New(color.FgGreen),
		cyan:   color.New(color.FgCyan),
	}

	for _, c := range []*color.Color{r.bold, r.red, r.green, r.cyan} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// DryRun reports whether files are left unwritten.
func (r *Report) DryRun() bool {
	return r.opts.Check || r.opts.Diff
}

// Done records a file that was processed.
func (r *Report) Done(name string, changed bool) {
	if !changed {
		r.same++

		if r.opts.Verbose {
			r.printf("%s already well formatted, good job.\n", name)
		}

		return
	}

	r.changed++

	if r.opts.Verbose || !r.opts.Quiet {
		verb := "reformatted"
		if r.DryRun() {
			verb = "would reformat"
		}

		r.printf("%s %s\n", r.bold.Sprint(verb), name)
	}
}

// Failed records a file that could not be processed.
func (r *Report) Failed(name string, err error) {
	r.failed++

	r.printf("%s\n", r.red.Sprintf("error: cannot format %s: %v", name, err))
}

// BlockError prints a code block the formatter rejected.
func (r *Report) BlockError(name string, line int, msg string) {
	r.printf("%s:%d: %s\n", name, line, msg)
}

// Diff prints the unified diff between before and after.
func (r *Report) Diff(name, before, after string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name + "\t(original)",
		ToFile:   name + "\t(formatted)",
		Context:  3,
	})
	if err != nil {
		return err
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		text := strings.TrimSuffix(line, "\n")
		nl := line[len(text):]

		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = r.bold.Sprint(text)
		case strings.HasPrefix(text, "@@"):
			text = r.cyan.Sprint(text)
		case strings.HasPrefix(text, "+"):
			text = r.green.Sprint(text)
		case strings.HasPrefix(text, "-"):
			text = r.red.Sprint(text)
		}

		if _, err := io.WriteString(r.out, text+nl); err != nil {
			return err
		}
	}

	return nil
}

// ReturnCode is 123 when a file failed, 1 when a check found changes and 0
// otherwise.
func (r *Report) ReturnCode() int {
	switch {
	case r.failed > 0:
		return CodeFailed
	case r.changed > 0 && r.opts.Check:
		return CodeChanged
	default:
		return CodeOK
	}
}

// String summarizes the counters, for instance "1 file reformatted, 2 files
// left unchanged."
func (r *Report) String() string {
	reformatted, unchanged, failed := "reformatted", "left unchanged", "failed to reformat"
	if r.DryRun() {
		reformatted, unchanged, failed = "would be reformatted", "would be left unchanged", "would fail to reformat"
	}

	var parts []string

	if r.changed > 0 {
		parts = append(parts, r.bold.Sprintf("%s %s", files(r.changed), reformatted))
	}

	if r.same > 0 {
		parts = append(parts, fmt.Sprintf("%s %s", files(r.same), unchanged))
	}

	if r.failed > 0 {
		parts = append(parts, r.red.Sprintf("%s %s", files(r.failed), failed))
	}

	return strings.Join(parts, ", ") + "."
}

// Summary prints the closing lines unless the report is quiet.
func (r *Report) Summary() {
	if r.opts.Quiet && !r.opts.Verbose {
		return
	}

	headline := allDone
	if r.ReturnCode() != CodeOK {
		headline = ohNo
	}

	r.printf("%s\n%s\n", r.bold.Sprint(headline), r.String())
}

func (r *Report) printf(format string, a ...any) {
	fmt.Fprintf(r.status, format, a...)
}

func files(n int) string {
	if n == 1 {
		return "1 file"
	}

	return fmt.Sprintf("%d files", n)
}
