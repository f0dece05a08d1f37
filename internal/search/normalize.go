package search

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower lowercases s for display in a ParsedQuery. A Caser is stateful, so
// each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// fold is the comparison form used by both matching and highlighting.
// Unicode case folding is context-free, so folding a string rune by rune
// gives the same result as folding it whole (Σ, σ and ς all fold to σ).
func fold(s string) string {
	return cases.Fold().String(s)
}

// foldRune folds a single rune, skipping the Caser for ASCII.
func foldRune(r rune) string {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		return string(r)
	}
	return fold(string(r))
}
