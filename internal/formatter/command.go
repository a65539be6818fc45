package formatter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/shlex"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultCommand runs black from PATH.
const DefaultCommand = "black"

const (
	exitNotExecutable = 126
	exitNotFound      = 127
)

// Command formats code by piping it through an external command, black by
// default. The command reads code on stdin and writes the result to stdout.
type Command struct {
	argv    []string
	dir     string
	timeout time.Duration
	exec    interp.ExecHandlerFunc
}

// CommandOption configures a [Command].
type CommandOption func(*Command)

// WithDir sets the working directory of the command.
func WithDir(dir string) CommandOption {
	return func(c *Command) { c.dir = dir }
}

// WithTimeout bounds the run time of a single invocation.
func WithTimeout(d time.Duration) CommandOption {
	return func(c *Command) { c.timeout = d }
}

// WithExecHandler replaces the handler used to run programs.
func WithExecHandler(h interp.ExecHandlerFunc) CommandOption {
	return func(c *Command) { c.exec = h }
}

// NewCommand parses a command line such as "black" or
// "python -m black --preview".
func NewCommand(line string, opts ...CommandOption) (*Command, error) {
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("formatter command %q: %w", line, err)
	}

	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty formatter command", ErrUnavailable)
	}

	cmd := &Command{argv: argv, dir: "."}

	for _, opt := range opts {
		opt(cmd)
	}

	return cmd, nil
}

// Args returns the full argument list used for opts.
func (c *Command) Args(opts Options) []string {
	args := append([]string(nil), c.argv...)
	args = append(args, opts.Args()...)

	return append(args, "--quiet", "-")
}

// Format implements [Formatter].
func (c *Command) Format(code string, opts Options) (string, error) {
	ctx := context.TODO()

	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer

	status, err := c.run(ctx, c.Args(opts), strings.NewReader(code), &stdout, &stderr)
	if err != nil {
		return "", err
	}

	if ctx.Err() != nil {
		return "", fmt.Errorf("%s: %w", c.argv[0], ctx.Err())
	}

	switch status {
	case 0:
		return stdout.String(), nil
	case exitNotExecutable, exitNotFound:
		return "", fmt.Errorf("%w: %s: %s", ErrUnavailable, c.argv[0], message(&stderr, status))
	}

	return "", Reject(message(&stderr, status))
}

func (c *Command) run(ctx context.Context, args []string, stdin *strings.Reader, stdout, stderr *bytes.Buffer) (int, error) {
	words := make([]string, len(args))

	for i, arg := range args {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return -1, fmt.Errorf("formatter argument %q: %w", arg, err)
		}

		words[i] = quoted
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(strings.Join(words, " ")), "")
	if err != nil {
		return -1, err
	}

	runnerOpts := []interp.RunnerOption{interp.Dir(c.dir), interp.StdIO(stdin, stdout, stderr)}
	if c.exec != nil {
		runnerOpts = append(runnerOpts, interp.ExecHandler(c.exec))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return -1, err
	}

	err = runner.Run(ctx, file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}

func message(stderr *bytes.Buffer, status int) string {
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return fmt.Sprintf("exit status %d", status)
	}

	// black prefixes its diagnostics with "error: cannot format -: "
	if _, after, ok := strings.Cut(msg, "cannot format -: "); ok {
		msg = after
	}

	if first, _, ok := strings.Cut(msg, "\n"); ok {
		msg = first
	}

	return msg
}

var _ Formatter = (*Command)(nil)
