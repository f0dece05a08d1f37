package search

import (
	"regexp"
	"strings"
)

var phrasePattern = regexp.MustCompile(`"([^"]+)"`)

// ParseQuery splits a raw query into exact phrases ("..."), exclude terms
// (-term) and include terms. It never fails: an unterminated quote is left in
// place and ends up inside an ordinary term.
func ParseQuery(query string) ParsedQuery {
	q := ParsedQuery{
		IncludeTerms: []string{},
		ExcludeTerms: []string{},
		ExactPhrases: []string{},
	}

	rest := phrasePattern.ReplaceAllStringFunc(query, func(m string) string {
		phrase := m[1 : len(m)-1]
		if strings.TrimSpace(phrase) != "" {
			q.ExactPhrases = append(q.ExactPhrases, phrase)
		}
		return " "
	})

	seenInclude := map[string]bool{}
	seenExclude := map[string]bool{}
	for _, tok := range strings.Fields(rest) {
		if len(tok) > 1 && strings.HasPrefix(tok, "-") {
			term := lower(tok[1:])
			if !seenExclude[term] {
				seenExclude[term] = true
				q.ExcludeTerms = append(q.ExcludeTerms, term)
			}
			continue
		}
		term := lower(tok)
		if !seenInclude[term] {
			seenInclude[term] = true
			q.IncludeTerms = append(q.IncludeTerms, term)
		}
	}
	return q
}
