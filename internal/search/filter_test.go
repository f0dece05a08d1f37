package search

import (
	"strings"
	"testing"

	"github.com/kamusis/scout-cli/internal/candidate"
)

func sampleCandidates() []candidate.Candidate {
	return []candidate.Candidate{
		{ID: "1", Name: "Jane Doe", Title: "Senior Engineer", Skills: []string{"Python", "Go"}, Location: "Austin, TX", Summary: "Backend systems.", ExperienceYears: 8},
		{ID: "2", Name: "Raj Patel", Title: "Full Stack Developer", Skills: []string{"React", "Node.js"}, Location: "Seattle, WA", Summary: "Ships web apps.", ExperienceYears: 4},
		{ID: "3", Name: "Li Wei", Title: "Frontend Intern", Skills: []string{"React", "CSS"}, Location: "Austin, TX", Summary: "Full stack curious.", ExperienceYears: 0.5},
		{ID: "4", Name: "Maria Garcia", Title: "Data Scientist", Skills: []string{"Python", "SQL"}, Location: "Denver, CO", Summary: "Forecasting.", ExperienceYears: 6},
	}
}

func ids(cs []candidate.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilter_BlankQueryReturnsInput(t *testing.T) {
	recs := sampleCandidates()
	got := Filter(recs, "   ")
	if len(got) != len(recs) || &got[0] != &recs[0] {
		t.Fatalf("blank query must return the input slice unchanged")
	}
}

func TestFilter_PhraseAndExclude(t *testing.T) {
	recs := sampleCandidates()[:1]
	got := Filter(recs, `"Senior" -Go`)
	if len(got) != 0 {
		t.Fatalf("expected record excluded by -Go, got %v", ids(got))
	}
}

func TestFilter_Conjunctive(t *testing.T) {
	recs := sampleCandidates()
	cases := []struct {
		query string
		want  []string
	}{
		{"react", []string{"2", "3"}},
		{"react -intern", []string{"2"}},
		{`"full stack"`, []string{"2", "3"}},
		{`"full stack" -intern react`, []string{"2"}},
		{"python austin", []string{"1"}},
		{"PYTHON", []string{"1", "4"}},
		{"-python", []string{"2", "3"}},
		{"cobol", []string{}},
		{"doe engineer", []string{"1"}},
	}
	for _, tc := range cases {
		got := ids(Filter(recs, tc.query))
		if len(got) != len(tc.want) {
			t.Fatalf("Filter(%q) = %v, want %v", tc.query, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("Filter(%q) = %v, want %v", tc.query, got, tc.want)
			}
		}
	}
}

func TestFilter_SubstringNotToken(t *testing.T) {
	recs := sampleCandidates()
	// "stack dev" is contiguous in "full stack developer".
	if got := ids(Filter(recs, `"stack dev"`)); len(got) != 1 || got[0] != "2" {
		t.Fatalf("got %v", got)
	}
	// "ja" is a substring of "jane".
	if got := ids(Filter(recs, "ja")); len(got) != 1 || got[0] != "1" {
		t.Fatalf("got %v", got)
	}
}

func TestFilter_IsOrderedSubsequence(t *testing.T) {
	recs := sampleCandidates()
	for _, q := range []string{"a", "e", "-x", `"t"`, "react", "-react"} {
		got := Filter(recs, q)
		j := 0
		for _, c := range got {
			for j < len(recs) && recs[j].ID != c.ID {
				j++
			}
			if j == len(recs) {
				t.Fatalf("Filter(%q) is not an ordered subsequence: %v", q, ids(got))
			}
			j++
		}
	}
}

func TestFilter_ExcludeNeverReturnsContainingRecord(t *testing.T) {
	recs := sampleCandidates()
	for _, x := range []string{"go", "austin", "react", "e"} {
		for _, c := range Filter(recs, "-"+x) {
			if strings.Contains(SearchableText(c), x) {
				t.Fatalf("-%s returned %s", x, c.ID)
			}
		}
	}
}

func TestFilterParsed_EmptyQueryMatchesAll(t *testing.T) {
	recs := sampleCandidates()
	if got := FilterParsed(recs, ParsedQuery{}); len(got) != len(recs) {
		t.Fatalf("empty parsed query kept %v", ids(got))
	}
}

func TestSearchableText(t *testing.T) {
	c := sampleCandidates()[0]
	want := "jane doe senior engineer python go austin, tx backend systems."
	if got := SearchableText(c); got != want {
		t.Fatalf("SearchableText = %q, want %q", got, want)
	}
}
