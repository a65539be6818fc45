package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Gobot1234/blacken-docs/internal/dialect"
	"github.com/Gobot1234/blacken-docs/internal/engine"
	"github.com/Gobot1234/blacken-docs/internal/formatter"
	"github.com/Gobot1234/blacken-docs/internal/logger"
	"github.com/Gobot1234/blacken-docs/internal/reflow"
	"github.com/Gobot1234/blacken-docs/internal/report"
	"github.com/Gobot1234/blacken-docs/internal/workspace"
	"github.com/spf13/cobra"
)

type statusFunc func(format string, args ...any)

// env holds what a command needs from the outside world.
type env struct {
	fsys         workspace.FS
	stdin        io.Reader
	root         func(arg string) (workspace.File, error)
	newFormatter func(opts *options) (formatter.Formatter, error)
	terminal     bool
}

type options struct {
	lineLength              int
	targetVersions          []string
	skipStringNormalization bool
	skipErrors              bool
	check                   bool
	diff                    bool
	formatter               string
	timeout                 time.Duration
	dialects                []string
	exclude                 []string
	jobs                    int
	quiet                   bool
	verbose                 bool
	color                   string
	config                  string
	logLevel                string
	logJSON                 bool
	projectDir              string

	status statusFunc
	log    logger.Logger
	env    *env
	code   int
}

const (
	colorAuto = "auto"
	colorOn   = "on"
	colorOff  = "off"
)

func (opts *options) createStatus(out io.Writer) {
	if opts.quiet {
		opts.status = func(string, ...any) {}

		return
	}

	opts.status = func(format string, args ...any) {
		fmt.Fprintf(out, format, args...)
	}
}

func (opts *options) createLogger(out io.Writer) error {
	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}

	cfg := logger.DefaultConfig()
	cfg.Level = level
	cfg.Output = out
	cfg.JSON = opts.logJSON

	opts.log = logger.New(cfg)

	return nil
}

func (opts *options) colored() bool {
	switch opts.color {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return opts.env.terminal && os.Getenv("NO_COLOR") == ""
	}
}

func (opts *options) mode() engine.Mode {
	if opts.skipErrors {
		return engine.Permissive
	}

	return engine.Strict
}

func (opts *options) formatterOptions() formatter.Options {
	return formatter.Options{
		LineLength:              opts.lineLength,
		TargetVersions:          opts.targetVersions,
		SkipStringNormalization: opts.skipStringNormalization,
	}
}

func (opts *options) reflowConfig() reflow.Config {
	return reflow.Config{
		MaxWidth:        opts.lineLength,
		VersionHints:    opts.targetVersions,
		NormalizeQuotes: !opts.skipStringNormalization,
	}
}

func (opts *options) newReport(cmd *cobra.Command) *report.Report {
	return report.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), report.Options{
		Check:   opts.check,
		Diff:    opts.diff,
		Quiet:   opts.quiet,
		Verbose: opts.verbose,
		Color:   opts.colored(),
	})
}

func (opts *options) dialectSet() ([]dialect.Dialect, error) {
	if len(opts.dialects) == 0 {
		return dialect.All(), nil
	}

	set := make([]dialect.Dialect, 0, len(opts.dialects))

	for _, name := range opts.dialects {
		d, err := dialect.ByName(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}

		set = append(set, d)
	}

	return dialect.Ordered(set), nil
}

func (opts *options) discover(args []string, extensions []string) ([]workspace.File, error) {
	roots := make([]workspace.File, 0, len(args))

	for _, arg := range args {
		root, err := opts.env.root(arg)
		if err != nil {
			return nil, err
		}

		roots = append(roots, root)
	}

	excludes, err := workspace.CompileExcludes(opts.exclude)
	if err != nil {
		return nil, err
	}

	return workspace.Discover(opts.env.fsys, roots, workspace.Options{
		Extensions: extensions,
		Exclude:    excludes,
	})
}

func modeFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().IntVarP(&opts.lineLength, "line-length", "l", formatter.DefaultLineLength, "how many characters per line to allow")
	cmd.Flags().StringSliceVarP(&opts.targetVersions, "target-version", "t", nil, "python versions that should be supported, e.g. py311")
	cmd.Flags().BoolVarP(&opts.skipStringNormalization, "skip-string-normalization", "S", false, "don't normalize string quotes or prefixes")
	cmd.Flags().BoolVarP(&opts.skipErrors, "skip-errors", "E", false, "report code blocks that fail to parse without failing the file")
	cmd.Flags().StringVar(&opts.formatter, "formatter", formatter.DefaultCommand, "command line of the code formatter")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "time limit for one formatter run, 0 for none")
}

func outputFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().BoolVar(&opts.check, "check", false, "don't write the files back, return 1 if any would change")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "don't write the files back, print a diff for each file")
}

func discoveryFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringSliceVar(&opts.dialects, "dialect", nil, "dialects to process: "+strings.Join(dialect.Names(), ", "))
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "glob of paths to skip while walking directories")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", defaultJobs(), "number of documents processed in parallel")
}

func quietFlag(cmd *cobra.Command, opts *options) {
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "don't emit non-error messages")
}

func verboseFlag(cmd *cobra.Command, opts *options) {
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "also report unchanged files")
}
