package search

import (
	"strings"
	"unicode/utf8"
)

// Highlight splits text into segments around every occurrence of query
// (trimmed), compared after Unicode case folding. Matches are found leftmost
// first and never overlap. Joining the segment texts reproduces text exactly.
func Highlight(text, query string) []Segment {
	needle := strings.TrimSpace(query)
	if needle == "" {
		return []Segment{{Text: text}}
	}

	pattern := fold(needle)

	segs := make([]Segment, 0, 3)
	start := 0
	for i := 0; i < len(text); {
		if n := matchAt(text[i:], pattern); n > 0 {
			if i > start {
				segs = append(segs, Segment{Text: text[start:i]})
			}
			segs = append(segs, Segment{Text: text[i : i+n], Highlighted: true})
			i += n
			start = i
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if start < len(text) {
		segs = append(segs, Segment{Text: text[start:]})
	}
	return segs
}

// HighlightTerm highlights text using the first phrase of q, or its first
// include term when q has no phrases.
func HighlightTerm(text string, q ParsedQuery) []Segment {
	switch {
	case len(q.ExactPhrases) > 0:
		return Highlight(text, q.ExactPhrases[0])
	case len(q.IncludeTerms) > 0:
		return Highlight(text, q.IncludeTerms[0])
	default:
		return Highlight(text, "")
	}
}

// HasHighlight reports whether any segment is highlighted.
func HasHighlight(segs []Segment) bool {
	for _, s := range segs {
		if s.Highlighted {
			return true
		}
	}
	return false
}

// matchAt returns the byte length of the shortest prefix of s whose case
// folding equals pattern, or 0 when there is none. A match never ends inside
// the folding of a single rune.
func matchAt(s, pattern string) int {
	rest := pattern
	for n := 0; n < len(s); {
		r, size := utf8.DecodeRuneInString(s[n:])
		f := foldRune(r)
		if !strings.HasPrefix(rest, f) {
			return 0
		}
		rest = rest[len(f):]
		n += size
		if rest == "" {
			return n
		}
	}
	return 0
}
