package search

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kamusis/scout-cli/internal/candidate"
)

func join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestHighlight_CaseInsensitiveKeepsCasing(t *testing.T) {
	got := Highlight("JavaScript Developer", "script")
	want := []Segment{
		{Text: "Java"},
		{Text: "Script", Highlighted: true},
		{Text: " Developer"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestHighlight_BlankQuery(t *testing.T) {
	got := Highlight("Go Engineer", "  ")
	want := []Segment{{Text: "Go Engineer"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v", got)
	}
}

func TestHighlight_MultipleNonOverlapping(t *testing.T) {
	got := Highlight("aaaa", "aa")
	want := []Segment{
		{Text: "aa", Highlighted: true},
		{Text: "aa", Highlighted: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v", got)
	}

	got = Highlight("go, Go and GO!", " go ")
	if len(got) != 6 {
		t.Fatalf("got %+v", got)
	}
	if got[5].Text != "!" || got[5].Highlighted {
		t.Fatalf("trailing segment wrong: %+v", got[5])
	}
}

func TestHighlight_NoMatch(t *testing.T) {
	got := Highlight("Data Scientist", "rust")
	want := []Segment{{Text: "Data Scientist"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v", got)
	}
}

func TestHighlight_EmptyText(t *testing.T) {
	if got := Highlight("", "go"); len(got) != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestHighlight_Lossless(t *testing.T) {
	texts := []string{
		"JavaScript Developer",
		"Zürich, ÜBER München",
		"İstanbul ıı",
		"",
		"abcabcabc",
		"日本語のエンジニア",
	}
	queries := []string{"", "a", "über", "ü", "bc", "エンジ", "x", "İ", "abcabcabcabc"}
	for _, text := range texts {
		for _, q := range queries {
			if got := join(Highlight(text, q)); got != text {
				t.Fatalf("Highlight(%q, %q) reconstructs %q", text, q, got)
			}
		}
	}
}

func TestHighlight_Unicode(t *testing.T) {
	got := Highlight("Zürich, ÜBER München", "über")
	if len(got) != 3 || got[1].Text != "ÜBER" || !got[1].Highlighted {
		t.Fatalf("got %+v", got)
	}
}

func TestHighlightTerm(t *testing.T) {
	q := ParseQuery(`react "Stack Dev"`)
	got := HighlightTerm("Full Stack Developer", q)
	if !HasHighlight(got) || got[1].Text != "Stack Dev" {
		t.Fatalf("phrase should win: %+v", got)
	}

	got = HighlightTerm("React Native", ParseQuery("react -angular"))
	if got[0].Text != "React" || !got[0].Highlighted {
		t.Fatalf("first include term expected: %+v", got)
	}

	got = HighlightTerm("React Native", ParseQuery("-angular"))
	if HasHighlight(got) {
		t.Fatalf("exclude-only query must not highlight: %+v", got)
	}
}

func TestHighlight_AgreesWithFilterOnFinalSigma(t *testing.T) {
	recs := []candidate.Candidate{{ID: "g", Name: "ΟΔΟΣ"}}
	for _, q := range []string{"σ", "ς", "Σ", "οδος", "ΟΔΟΣ"} {
		filtered := len(Filter(recs, q)) == 1
		highlighted := HasHighlight(Highlight("ΟΔΟΣ", q))
		if !filtered || !highlighted {
			t.Fatalf("query %q: filter=%v highlight=%v, want both true", q, filtered, highlighted)
		}
	}

	got := Highlight("ΟΔΟΣ", "ς")
	want := []Segment{{Text: "ΟΔΟ"}, {Text: "Σ", Highlighted: true}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestHighlight_FoldedExpansionNotSplit(t *testing.T) {
	got := Highlight("Straße", "s")
	want := []Segment{{Text: "S", Highlighted: true}, {Text: "traße"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got := join(Highlight("Straße", "ss")); got != "Straße" {
		t.Fatalf("reconstructs %q", got)
	}
}
