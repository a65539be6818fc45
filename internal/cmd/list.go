package cmd

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/Gobot1234/blacken-docs/internal/dialect"
	"github.com/Gobot1234/blacken-docs/internal/report"
	"github.com/Gobot1234/blacken-docs/internal/splice"
	"github.com/Gobot1234/blacken-docs/internal/workspace"
	"github.com/spf13/cobra"
)

//go:embed help/list.md
var listHelp string

type listing struct {
	file workspace.File
	rows []report.Row
	err  error
}

func listCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] path...",
		Aliases: []string{"ls"},
		Short:   "List the Python code blocks of documentation files",
		Long:    listHelp,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRun(cmd, opts, args)
		},

		DisableAutoGenTag: true,
	}

	discoveryFlags(cmd, opts)

	return cmd
}

func listRun(cmd *cobra.Command, opts *options, args []string) error {
	files, err := opts.discover(args, workspace.FormatExtensions)
	if err != nil {
		return err
	}

	dialects, err := opts.dialectSet()
	if err != nil {
		return err
	}

	listings := parallel(files, opts.jobs, func(file workspace.File) listing {
		text, err := workspace.Read(opts.env.fsys, file.Path)
		if err != nil {
			return listing{file: file, err: err}
		}

		rows, err := blockRows(file.Name, text, dialects)

		return listing{file: file, rows: rows, err: err}
	})

	rep := opts.newReport(cmd)

	var rows []report.Row

	for _, l := range listings {
		if l.err != nil {
			rep.Failed(l.file.Name, l.err)

			continue
		}

		rows = append(rows, l.rows...)
	}

	report.Table(cmd.OutOrStdout(), rows, opts.colored())

	opts.code = rep.ReturnCode()

	return nil
}

// blockRows lists the blocks of every dialect in text, in document order.
func blockRows(name, text string, dialects []dialect.Dialect) ([]report.Row, error) {
	type located struct {
		start int
		row   report.Row
	}

	var found []located

	for _, d := range dialects {
		blocks, err := d.Find(text)
		if err != nil {
			return nil, err
		}

		for _, b := range blocks {
			found = append(found, located{start: b.Start, row: report.Row{
				File:    name,
				Line:    splice.LineAt(text, b.Start),
				Dialect: d.Name(),
				Lines:   lineCount(b.Code),
			}})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })

	rows := make([]report.Row, len(found))
	for i, l := range found {
		rows[i] = l.row
	}

	return rows, nil
}

func lineCount(code string) int {
	if code == "" {
		return 0
	}

	n := strings.Count(code, "\n")
	if !strings.HasSuffix(code, "\n") {
		n++
	}

	return n
}
