// Package reflow rewrites prose: builtin names become literal markup and
// paragraphs are refilled to a maximum width.
package reflow

import (
	"strings"

	"github.com/Gobot1234/blacken-docs/internal/formatter"
)

// Config is the reflow configuration. It is a value and is never changed
// by the functions that take it; widths for indented text are derived with
// [Config.EffectiveWidth].
type Config struct {
	MaxWidth int
	// VersionHints are black target versions such as "py38". Names added
	// after the newest hinted version are not treated as literals.
	VersionHints    []string
	NormalizeQuotes bool
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{MaxWidth: formatter.DefaultLineLength, NormalizeQuotes: true}
}

// EffectiveWidth returns the width left for text indented by indent
// columns. It is never less than one.
func (c Config) EffectiveWidth(indent int) int {
	w := c.MaxWidth - indent
	if w < 1 {
		return 1
	}

	return w
}

// FormatterOptions returns the formatter options for code indented by
// indent columns.
func (c Config) FormatterOptions(indent int) formatter.Options {
	return formatter.Options{
		LineLength:              c.EffectiveWidth(indent),
		TargetVersions:          append([]string(nil), c.VersionHints...),
		SkipStringNormalization: !c.NormalizeQuotes,
	}
}

// Reflow normalizes inline literals in text and fills it to the width of
// cfg.
func Reflow(text string, cfg Config) string {
	return ReflowIndented(text, 0, cfg)
}

// ReflowIndented is [Reflow] for text that will be indented by indent
// columns once written back.
func ReflowIndented(text string, indent int, cfg Config) string {
	return Fill(Normalize(text, cfg), cfg.EffectiveWidth(indent))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
