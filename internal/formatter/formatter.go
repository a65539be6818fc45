// Package formatter defines the contract of the external Python code
// formatter and a command-backed implementation.
package formatter

import (
	"errors"
	"strconv"
)

var (
	// ErrRejected signals that the formatter could not parse the code it was
	// given. It is recovered per block.
	ErrRejected = errors.New("code block parse error")

	// ErrUnavailable is returned when the formatter cannot be run at all.
	ErrUnavailable = errors.New("formatter unavailable")
)

// DefaultLineLength is black's default line length.
const DefaultLineLength = 88

// Options are passed to the formatter with every code fragment.
type Options struct {
	LineLength              int
	TargetVersions          []string
	SkipStringNormalization bool
}

// Args returns the black command-line flags for o.
func (o Options) Args() []string {
	var args []string

	if o.LineLength > 0 {
		args = append(args, "--line-length", strconv.Itoa(o.LineLength))
	}

	for _, v := range o.TargetVersions {
		args = append(args, "--target-version", v)
	}

	if o.SkipStringNormalization {
		args = append(args, "--skip-string-normalization")
	}

	return args
}

// WithLineLength returns a copy of o with the given line length.
func (o Options) WithLineLength(n int) Options {
	o.LineLength = n
	o.TargetVersions = append([]string(nil), o.TargetVersions...)

	return o
}

// Formatter formats Python source code. Format returns an error wrapping
// [ErrRejected] when code is not valid Python; any other error is fatal.
type Formatter interface {
	Format(code string, opts Options) (string, error)
}

// Func adapts a function to the [Formatter] interface.
type Func func(code string, opts Options) (string, error)

// Format calls f.
func (f Func) Format(code string, opts Options) (string, error) {
	return f(code, opts)
}

// RejectedError carries the formatter's explanation of a rejection.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrRejected.Error()
	}

	return e.Message
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// Reject returns an error wrapping [ErrRejected] with message.
func Reject(message string) error {
	return &RejectedError{Message: message}
}
