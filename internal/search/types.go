// Package search implements candidate query parsing, filtering, match
// highlighting and autocomplete suggestions. Every function is pure and safe
// for concurrent use.
package search

import "fmt"

// ParsedQuery is the structured form of a free-text query. Term lists are
// lowercase and de-duplicated in first-seen order; phrases keep their casing.
type ParsedQuery struct {
	IncludeTerms []string `json:"includeTerms"`
	ExcludeTerms []string `json:"excludeTerms"`
	ExactPhrases []string `json:"exactPhrases"`
}

// IsEmpty reports whether q places no constraint on a record.
func (q ParsedQuery) IsEmpty() bool {
	return len(q.IncludeTerms) == 0 && len(q.ExcludeTerms) == 0 && len(q.ExactPhrases) == 0
}

// Segment is one run of display text, either inside or outside a match.
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// Category groups suggestions by the field they were drawn from.
type Category string

const (
	CategorySkill      Category = "skill"
	CategoryLocation   Category = "location"
	CategoryTitle      Category = "title"
	CategoryExperience Category = "experience"
)

// ParseCategory converts a user-supplied category name. The empty string is
// accepted and means any category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case "", CategorySkill, CategoryLocation, CategoryTitle, CategoryExperience:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q (want skill, location, title or experience)", s)
	}
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Trending bool     `json:"trending"`
}
