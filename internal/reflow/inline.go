package reflow

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const literalMarkup = "``"

// Normalize wraps builtin names, integers and single-backtick spans in
// double-backtick literal markup. Words are separated by single spaces and
// line structure is kept. Normalize is idempotent.
func Normalize(text string, cfg Config) string {
	lits := literalsFor(cfg.VersionHints)
	lines := strings.Split(text, "\n")

	for i, l := range lines {
		words := strings.Split(l, " ")
		for j, w := range words {
			words[j] = normalizeWord(w, lits)
		}

		lines[i] = strings.Join(words, " ")
	}

	return strings.Join(lines, "\n")
}

func normalizeWord(word string, lits literalSet) string {
	if name, trail, ok := literalCandidate(word, lits); ok {
		return literalMarkup + name + literalMarkup + trail
	}

	if isHalfWrapped(word) {
		return literalMarkup + strings.Trim(word, "`") + literalMarkup
	}

	return word
}

// literalCandidate splits word into a builtin name and one trailing
// punctuation character. Words already wrapped in double backticks are not
// candidates.
func literalCandidate(word string, lits literalSet) (string, string, bool) {
	core, trail := word, ""

	if r, size := utf8.DecodeLastRuneInString(word); size > 0 && !isIdentRune(r) && r != '`' {
		core, trail = word[:len(word)-size], word[len(word)-size:]
	}

	lead := len(core) - len(strings.TrimLeft(core, "`"))
	tail := len(core) - len(strings.TrimRight(core, "`"))

	if lead != tail || lead >= len(literalMarkup) || 2*lead >= len(core) {
		return "", "", false
	}

	name := core[lead : len(core)-tail]
	if !lits.has(name) {
		return "", "", false
	}

	return name, trail, true
}

// isHalfWrapped reports whether word looks like emphasis markup meant as a
// literal: `like this`, while a double-backtick literal is left alone.
func isHalfWrapped(word string) bool {
	if len(word) <= 4 {
		return false
	}

	if !strings.HasPrefix(word, "`") || !strings.HasSuffix(word, "`") {
		return false
	}

	return !(strings.HasPrefix(word, literalMarkup) && strings.HasSuffix(word, literalMarkup))
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
