package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const pyprojectFile = "pyproject.toml"

type pyproject struct {
	Tool struct {
		Black struct {
			LineLength              int      `toml:"line-length"`
			TargetVersion           []string `toml:"target-version"`
			SkipStringNormalization bool     `toml:"skip-string-normalization"`
		} `toml:"black"`
		BlackenDocs struct {
			Formatter  string   `toml:"formatter"`
			SkipErrors bool     `toml:"skip-errors"`
			Exclude    []string `toml:"exclude"`
			Dialects   []string `toml:"dialects"`
			Timeout    string   `toml:"timeout"`
		} `toml:"blacken-docs"`
	} `toml:"tool"`
}

// loadConfig fills the options that were not given on the command line from
// the configuration file. A missing pyproject.toml is not an error; a
// missing --config file is.
func (opts *options) loadConfig(cmd *cobra.Command) error {
	name := opts.config
	explicit := name != ""

	if !explicit {
		name = pyprojectFile
	}

	file, err := opts.env.root(name)
	if err != nil {
		return err
	}

	data, err := fs.ReadFile(opts.env.fsys, file.Path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("%w %s: %w", errConfig, name, err)
	}

	var cfg pyproject

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errConfig, name, err)
	}

	for _, key := range md.Undecoded() {
		if len(key) > 1 && key[0] == "tool" && key[1] == "blacken-docs" {
			opts.log.Warn("unknown configuration key", "file", name, "key", key.String())
		}
	}

	opts.projectDir = filepath.Dir(name)

	black, docs := cfg.Tool.Black, cfg.Tool.BlackenDocs

	set := func(flag string, key ...string) bool {
		f := cmd.Flag(flag)

		return f != nil && !f.Changed && md.IsDefined(key...)
	}

	if set("line-length", "tool", "black", "line-length") {
		opts.lineLength = black.LineLength
	}

	if set("target-version", "tool", "black", "target-version") {
		opts.targetVersions = black.TargetVersion
	}

	if set("skip-string-normalization", "tool", "black", "skip-string-normalization") {
		opts.skipStringNormalization = black.SkipStringNormalization
	}

	if set("formatter", "tool", "blacken-docs", "formatter") {
		opts.formatter = docs.Formatter
	}

	if set("skip-errors", "tool", "blacken-docs", "skip-errors") {
		opts.skipErrors = docs.SkipErrors
	}

	if set("exclude", "tool", "blacken-docs", "exclude") {
		opts.exclude = docs.Exclude
	}

	if set("dialect", "tool", "blacken-docs", "dialects") {
		opts.dialects = docs.Dialects
	}

	if set("timeout", "tool", "blacken-docs", "timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(docs.Timeout))
		if err != nil {
			return fmt.Errorf("%w %s: timeout: %w", errConfig, name, err)
		}

		opts.timeout = d
	}

	opts.log.Debug("loaded configuration", "file", name)

	return nil
}

var errConfig = errors.New("invalid configuration")
