package cmd

import (
	_ "embed"
	"io"
	"time"

	"github.com/Gobot1234/blacken-docs/internal/prose"
	"github.com/Gobot1234/blacken-docs/internal/workspace"
	"github.com/spf13/cobra"
)

//go:embed help/reflow.md
var reflowHelp string

func reflowCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "reflow [flags] [path...]",
		Aliases: []string{"r"},
		Short:   "Reflow prose in Markdown, Python docstrings and plain text",
		Long:    reflowHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return reflowStdin(cmd, opts)
			}

			return reflowRun(cmd, opts, args)
		},

		DisableAutoGenTag: true,
	}

	modeFlags(cmd, opts)
	outputFlags(cmd, opts)
	discoveryFlags(cmd, opts)

	return cmd
}

func reflowRun(cmd *cobra.Command, opts *options, args []string) error {
	files, err := opts.discover(args, workspace.ReflowExtensions)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		opts.status("No prose files are present to be reflowed. Nothing to do 😴\n")

		return nil
	}

	f, err := opts.env.newFormatter(opts)
	if err != nil {
		return err
	}

	cfg := opts.reflowConfig()

	outcomes := parallel(files, opts.jobs, func(file workspace.File) outcome {
		start := time.Now()

		text, err := workspace.Read(opts.env.fsys, file.Path)
		if err != nil {
			return outcome{file: file, err: err}
		}

		res, err := prose.Reflow(file.Path, text, f, cfg)

		opts.log.Debug("reflowed document",
			"path", file.Name,
			"regions", res.Regions,
			"errors", len(res.Errors),
			"changed", res.Changed,
			"duration", time.Since(start),
		)

		o := outcome{file: file, before: text, after: res.Text, changed: res.Changed, err: err}

		for _, e := range res.Errors {
			o.messages = append(o.messages, e.Message())
		}

		return o
	})

	rep := opts.newReport(cmd)

	for _, o := range outcomes {
		opts.finish(rep, o)
	}

	rep.Summary()

	opts.code = rep.ReturnCode()

	return nil
}

// reflowStdin reflows standard input as plain text to standard output.
func reflowStdin(cmd *cobra.Command, opts *options) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}

	before := string(data)
	res := prose.Text(before, opts.reflowConfig())

	rep := opts.newReport(cmd)

	switch {
	case opts.diff:
		if res.Changed {
			if err := rep.Diff("STDIN", before, res.Text); err != nil {
				return err
			}
		}
	case !opts.check:
		if _, err := io.WriteString(cmd.OutOrStdout(), res.Text); err != nil {
			return err
		}
	}

	rep.Done("STDIN", res.Changed)

	opts.code = rep.ReturnCode()

	return nil
}
