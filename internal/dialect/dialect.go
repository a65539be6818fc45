// Package dialect locates Python code blocks embedded in documentation text.
//
// Four markup dialects are supported, each with its own boundary grammar and
// indentation policy:
//
//   - [Fenced]: Markdown fences tagged "python".
//   - [Directive]: reStructuredText code directives naming a Python language.
//   - [Environment]: LaTeX minted environments for Python.
//   - [MultiEnvironment]: PythonTeX environments, closed by the same name.
//
// Matchers are hand-written line scanners. Every [Block] they return
// reconstructs its matched span exactly: Before + Code + After equals
// text[Start:End].
package dialect

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies a dialect. Kinds are ordered by the priority in which
// dialects are applied to a document.
type Kind int

const (
	KindFenced Kind = iota
	KindDirective
	KindEnvironment
	KindMultiEnvironment
)

// Block is one matched code region.
type Block struct {
	Kind   Kind
	Start  int
	End    int
	Before string
	Code   string
	After  string
	Indent IndentPolicy
}

// Span returns the matched text of the block.
func (b Block) Span() string {
	return b.Before + b.Code + b.After
}

// Dialect finds the blocks of one markup convention.
type Dialect interface {
	Kind() Kind
	Name() string
	// Find returns the ordered, non-overlapping blocks of text. A
	// *BoundaryError is returned when an opening delimiter has no well-formed
	// trailing component.
	Find(text string) ([]Block, error)
}

// The dialects, in priority order.
var (
	Fenced           Dialect = fenced()
	Directive        Dialect = directive{}
	Environment      Dialect = minted()
	MultiEnvironment Dialect = pythontex()
)

// All returns every dialect in priority order.
func All() []Dialect {
	return []Dialect{Fenced, Directive, Environment, MultiEnvironment}
}

// Ordered returns dialects sorted by priority with duplicates removed.
func Ordered(dialects []Dialect) []Dialect {
	seen := make(map[Kind]bool, len(dialects))
	res := make([]Dialect, 0, len(dialects))

	for _, d := range dialects {
		if d == nil || seen[d.Kind()] {
			continue
		}

		seen[d.Kind()] = true

		res = append(res, d)
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].Kind() < res[j].Kind() })

	return res
}

// ByName returns the dialect with the given name. Names are
// "markdown", "rst", "latex" and "pythontex".
func ByName(name string) (Dialect, error) {
	for _, d := range All() {
		if strings.EqualFold(d.Name(), name) {
			return d, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// Names returns the names of every dialect in priority order.
func Names() []string {
	all := All()
	names := make([]string, len(all))

	for i, d := range all {
		names[i] = d.Name()
	}

	return names
}

// String returns the dialect name for k.
func (k Kind) String() string {
	switch k {
	case KindFenced:
		return "markdown"
	case KindDirective:
		return "rst"
	case KindEnvironment:
		return "latex"
	case KindMultiEnvironment:
		return "pythontex"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}
