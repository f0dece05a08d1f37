package search

import (
	"strings"

	"github.com/kamusis/scout-cli/internal/candidate"
)

const (
	maxSkillSuggestions    = 8
	maxLocationSuggestions = 5
	maxTitleSuggestions    = 5

	// A suggestion seen more than this many times is trending.
	trendingThreshold = 3

	seniorMinYears = 5
	midMinYears    = 2
)

// GenerateSuggestions ranks the most frequent skills, cities and titles in
// records and appends the fixed experience bands. Skills and titles are
// counted by exact string; a location counts toward its city (the text before
// the first comma).
func GenerateSuggestions(records []candidate.Candidate) []Suggestion {
	skills := newCounter()
	locations := newCounter()
	titles := newCounter()
	var senior, mid, junior int

	for _, c := range records {
		for _, s := range c.Skills {
			skills.add(s)
		}
		city, _, _ := strings.Cut(c.Location, ",")
		locations.add(strings.TrimSpace(city))
		titles.add(c.Title)

		switch {
		case c.ExperienceYears >= seniorMinYears:
			senior++
		case c.ExperienceYears >= midMinYears:
			mid++
		default:
			junior++
		}
	}

	out := make([]Suggestion, 0, maxSkillSuggestions+maxLocationSuggestions+maxTitleSuggestions+3)
	out = append(out, skills.top(maxSkillSuggestions, CategorySkill)...)
	out = append(out, locations.top(maxLocationSuggestions, CategoryLocation)...)
	out = append(out, titles.top(maxTitleSuggestions, CategoryTitle)...)
	out = append(out,
		Suggestion{Text: "Senior", Category: CategoryExperience, Count: senior, Trending: true},
		Suggestion{Text: "Junior", Category: CategoryExperience, Count: junior},
		Suggestion{Text: "Mid-level", Category: CategoryExperience, Count: mid},
	)
	return out
}

// FilterSuggestions keeps suggestions whose text contains prefix
// (case-insensitive) and, when category is set, belong to that category.
func FilterSuggestions(suggestions []Suggestion, prefix string, category Category) []Suggestion {
	needle := fold(strings.TrimSpace(prefix))
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if category != "" && s.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(fold(s.Text), needle) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// counter tallies strings and remembers the order they were first seen.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(s string) {
	if s == "" {
		return
	}
	if _, ok := c.counts[s]; !ok {
		c.order = append(c.order, s)
	}
	c.counts[s]++
}

func (c *counter) top(n int, cat Category) []Suggestion {
	items := make([]Suggestion, 0, len(c.order))
	for _, k := range c.order {
		cnt := c.counts[k]
		items = append(items, Suggestion{Text: k, Category: cat, Count: cnt, Trending: cnt > trendingThreshold})
	}
	SortSuggestions(items)
	if len(items) > n {
		items = items[:n]
	}
	return items
}
