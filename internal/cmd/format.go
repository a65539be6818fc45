package cmd

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/Gobot1234/blacken-docs/internal/engine"
	"github.com/Gobot1234/blacken-docs/internal/report"
	"github.com/Gobot1234/blacken-docs/internal/workspace"
	"github.com/spf13/cobra"
)

//go:embed help/format.md
var formatHelp string

// outcome is what processing one document produced.
type outcome struct {
	file     workspace.File
	before   string
	after    string
	changed  bool
	messages []engine.Message
	err      error
}

func formatCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "format [flags] [path...]",
		Aliases: []string{"fmt"},
		Short:   "Format Python code blocks in documentation files",
		Long:    formatHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				opts.status("No Path provided. Nothing to do 😴\n")

				return nil
			}

			return formatRun(cmd, opts, args)
		},

		DisableAutoGenTag: true,
	}

	modeFlags(cmd, opts)
	outputFlags(cmd, opts)
	discoveryFlags(cmd, opts)

	return cmd
}

func formatRun(cmd *cobra.Command, opts *options, args []string) error {
	files, err := opts.discover(args, workspace.FormatExtensions)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		opts.status("No documentation files are present to be formatted. Nothing to do 😴\n")

		return nil
	}

	dialects, err := opts.dialectSet()
	if err != nil {
		return err
	}

	f, err := opts.env.newFormatter(opts)
	if err != nil {
		return err
	}

	engineOpts := engine.Options{Mode: opts.mode(), Formatter: opts.formatterOptions()}

	outcomes := parallel(files, opts.jobs, func(file workspace.File) outcome {
		start := time.Now()

		text, err := workspace.Read(opts.env.fsys, file.Path)
		if err != nil {
			return outcome{file: file, err: err}
		}

		res, err := engine.Run(engine.Document{Path: file.Name, Text: text, Dialects: dialects}, f, engineOpts)

		opts.log.Debug("formatted document",
			"path", file.Name,
			"blocks", res.Blocks,
			"errors", len(res.Errors),
			"changed", res.Changed,
			"duration", time.Since(start),
		)

		return outcome{
			file:     file,
			before:   text,
			after:    res.Text,
			changed:  res.Changed,
			messages: res.Messages(),
			err:      err,
		}
	})

	rep := opts.newReport(cmd)

	for _, o := range outcomes {
		opts.finish(rep, o)
	}

	rep.Summary()

	opts.code = rep.ReturnCode()

	return nil
}

// finish reports one outcome and writes the document back when it changed.
func (opts *options) finish(rep *report.Report, o outcome) {
	if o.err != nil {
		rep.Failed(o.file.Name, o.err)

		return
	}

	for _, msg := range o.messages {
		rep.BlockError(o.file.Name, msg.Line, msg.Text)
	}

	if len(o.messages) > 0 && !opts.skipErrors {
		rep.Failed(o.file.Name, fmt.Errorf("%w: %d", errParseFailures, len(o.messages)))

		return
	}

	if o.changed {
		if opts.diff {
			if err := rep.Diff(o.file.Name, o.before, o.after); err != nil {
				rep.Failed(o.file.Name, err)

				return
			}
		}

		if !rep.DryRun() {
			if err := workspace.Write(opts.env.fsys, o.file.Path, o.after); err != nil {
				rep.Failed(o.file.Name, err)

				return
			}
		}
	}

	rep.Done(o.file.Name, o.changed)
}

var errParseFailures = errors.New("code blocks failed to parse")
