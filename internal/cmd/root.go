// Package cmd implements the blacken-docs command line.
package cmd

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/Gobot1234/blacken-docs/internal/formatter"
	"github.com/Gobot1234/blacken-docs/internal/report"
	"github.com/Gobot1234/blacken-docs/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

//go:embed help/root.md
var rootHelp string

const codeUsage = 2

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(args, stdout, stderr, defaultEnv(stderr))
}

func defaultEnv(stderr io.Writer) *env {
	terminal := false
	if f, ok := stderr.(*os.File); ok {
		terminal = term.IsTerminal(int(f.Fd()))
	}

	return &env{
		fsys:         workspace.Local(),
		stdin:        os.Stdin,
		root:         workspace.Root,
		newFormatter: commandFormatter,
		terminal:     terminal,
	}
}

func commandFormatter(opts *options) (formatter.Formatter, error) {
	cmdOpts := []formatter.CommandOption{formatter.WithTimeout(opts.timeout)}
	if opts.projectDir != "" {
		cmdOpts = append(cmdOpts, formatter.WithDir(opts.projectDir))
	}

	return formatter.NewCommand(opts.formatter, cmdOpts...)
}

func execute(args []string, stdout, stderr io.Writer, e *env) int {
	opts := &options{env: e}

	root := rootCmd(opts)
	root.SetArgs(args)
	root.SetIn(e.stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		var usage *usageError
		if errors.As(err, &usage) {
			return codeUsage
		}

		return report.CodeFailed
	}

	return opts.code
}

func rootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:           "blacken-docs",
		Short:         "Run black on Python code blocks in documentation files",
		Long:          rootHelp,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.verbose && !cmd.Flag("log-level").Changed {
				opts.logLevel = "debug"
			}

			if err := opts.createLogger(cmd.ErrOrStderr()); err != nil {
				return &usageError{err}
			}

			switch opts.color {
			case colorAuto, colorOn, colorOff:
			default:
				return &usageError{fmt.Errorf("%w: %q", errColor, opts.color)}
			}

			if err := opts.loadConfig(cmd); err != nil {
				return &usageError{err}
			}

			opts.createStatus(cmd.ErrOrStderr())

			return nil
		},

		DisableAutoGenTag: true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	quietFlag(cmd, opts)
	verboseFlag(cmd, opts)

	cmd.PersistentFlags().StringVar(&opts.color, "color", colorAuto, "colorize output: auto, on or off")
	cmd.PersistentFlags().StringVar(&opts.config, "config", "", "read configuration from this file instead of pyproject.toml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "write log records as JSON")

	cmd.AddCommand(formatCmd(opts), reflowCmd(opts), listCmd(opts))

	return cmd
}

func defaultJobs() int {
	return runtime.NumCPU()
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err}
		}

		return nil
	}
}

// usageError marks errors caused by the command line itself.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

var errColor = errors.New("invalid color mode")
