package search

import (
	"strings"

	"github.com/kamusis/scout-cli/internal/candidate"
)

// Filter returns the records matching query, preserving input order. A blank
// query returns records unchanged.
func Filter(records []candidate.Candidate, query string) []candidate.Candidate {
	if strings.TrimSpace(query) == "" {
		return records
	}
	return FilterParsed(records, ParseQuery(query))
}

// FilterParsed is Filter for an already parsed query. A record is kept when
// its searchable text contains every phrase and every include term and none
// of the exclude terms. Matching is plain substring containment after Unicode
// case folding, the same comparison Highlight uses.
func FilterParsed(records []candidate.Candidate, q ParsedQuery) []candidate.Candidate {
	phrases := foldAll(q.ExactPhrases)
	excludes := foldAll(q.ExcludeTerms)
	includes := foldAll(q.IncludeTerms)

	out := make([]candidate.Candidate, 0, len(records))
	for _, c := range records {
		if matches(fold(fieldText(c)), phrases, excludes, includes) {
			out = append(out, c)
		}
	}
	return out
}

// SearchableText is the lowercase blob of a record: name, title, skills,
// location and summary joined by spaces. Matching compares its case folding.
func SearchableText(c candidate.Candidate) string {
	return lower(fieldText(c))
}

func fieldText(c candidate.Candidate) string {
	return strings.Join([]string{
		c.Name,
		c.Title,
		strings.Join(c.Skills, " "),
		c.Location,
		c.Summary,
	}, " ")
}

func foldAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = fold(t)
	}
	return out
}

func matches(blob string, phrases, excludes, includes []string) bool {
	for _, p := range phrases {
		if !strings.Contains(blob, p) {
			return false
		}
	}
	for _, x := range excludes {
		if strings.Contains(blob, x) {
			return false
		}
	}
	for _, in := range includes {
		if !strings.Contains(blob, in) {
			return false
		}
	}
	return true
}
