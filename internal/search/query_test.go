package search

import (
	"reflect"
	"testing"
)

func TestParseQuery_PhraseExcludeInclude(t *testing.T) {
	q := ParseQuery(`"full stack" -intern react`)
	if !reflect.DeepEqual(q.ExactPhrases, []string{"full stack"}) {
		t.Fatalf("phrases: %v", q.ExactPhrases)
	}
	if !reflect.DeepEqual(q.ExcludeTerms, []string{"intern"}) {
		t.Fatalf("excludes: %v", q.ExcludeTerms)
	}
	if !reflect.DeepEqual(q.IncludeTerms, []string{"react"}) {
		t.Fatalf("includes: %v", q.IncludeTerms)
	}
}

func TestParseQuery_Lowercases(t *testing.T) {
	q := ParseQuery(`"Senior Dev" GoLang -PHP golang`)
	if q.ExactPhrases[0] != "Senior Dev" {
		t.Fatalf("phrase casing must be kept, got %q", q.ExactPhrases[0])
	}
	if !reflect.DeepEqual(q.IncludeTerms, []string{"golang"}) {
		t.Fatalf("includes: %v", q.IncludeTerms)
	}
	if !reflect.DeepEqual(q.ExcludeTerms, []string{"php"}) {
		t.Fatalf("excludes: %v", q.ExcludeTerms)
	}
}

func TestParseQuery_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		q := ParseQuery(in)
		if !q.IsEmpty() {
			t.Fatalf("ParseQuery(%q) = %+v, want empty", in, q)
		}
	}
}

func TestParseQuery_BareDashIsInclude(t *testing.T) {
	q := ParseQuery("c - go")
	if !reflect.DeepEqual(q.IncludeTerms, []string{"c", "-", "go"}) {
		t.Fatalf("includes: %v", q.IncludeTerms)
	}
	if len(q.ExcludeTerms) != 0 {
		t.Fatalf("excludes: %v", q.ExcludeTerms)
	}
}

func TestParseQuery_UnterminatedQuote(t *testing.T) {
	q := ParseQuery(`"full stack`)
	if len(q.ExactPhrases) != 0 {
		t.Fatalf("unterminated quote must not form a phrase: %v", q.ExactPhrases)
	}
	if !reflect.DeepEqual(q.IncludeTerms, []string{`"full`, "stack"}) {
		t.Fatalf("includes: %v", q.IncludeTerms)
	}
}

func TestParseQuery_MultiplePhrasesInOrder(t *testing.T) {
	q := ParseQuery(`"b two" x "a one" "  "`)
	if !reflect.DeepEqual(q.ExactPhrases, []string{"b two", "a one"}) {
		t.Fatalf("phrases: %v", q.ExactPhrases)
	}
	if !reflect.DeepEqual(q.IncludeTerms, []string{"x"}) {
		t.Fatalf("includes: %v", q.IncludeTerms)
	}
}
