package search

import "sort"

// SortSuggestions orders suggestions by count (descending). Equal counts keep
// their current relative order.
func SortSuggestions(s []Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Count > s[j].Count
	})
}
