package synccorpus

import (
	"testing"
)

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		in        string
		morphemes int
		lemma     string
		tags      []Tag
		queue     string
	}{
		{"house<n><pl>", 1, "house", []Tag{"n", "pl"}, ""},
		{"can<vaux><pres>+not<adv>", 2, "can", []Tag{"vaux", "pres"}, ""},
		{"take<vblex><inf># out", 1, "take", []Tag{"vblex", "inf"}, " out"},
		{`C\+\+<np><al>`, 1, "C++", []Tag{"np", "al"}, ""},
		{`a\/b<n>`, 1, "a/b", []Tag{"n"}, ""},
		{"<sent>", 1, "", []Tag{"sent"}, ""},
		{"bare", 1, "bare", nil, ""},
	}
	for _, tt := range tests {
		a, err := ParseAnalysis(tt.in)
		if err != nil {
			t.Errorf("ParseAnalysis(%q): %v", tt.in, err)
			continue
		}
		if len(a.Morphemes) != tt.morphemes {
			t.Errorf("ParseAnalysis(%q) has %d morphemes, want %d", tt.in, len(a.Morphemes), tt.morphemes)
			continue
		}
		m := a.Morphemes[0]
		if m.Lemma != tt.lemma {
			t.Errorf("ParseAnalysis(%q) lemma = %q, want %q", tt.in, m.Lemma, tt.lemma)
		}
		if !tagsEqual(m.Tags, tt.tags) {
			t.Errorf("ParseAnalysis(%q) tags = %v, want %v", tt.in, m.Tags, tt.tags)
		}
		if m.Queue != tt.queue {
			t.Errorf("ParseAnalysis(%q) queue = %q, want %q", tt.in, m.Queue, tt.queue)
		}
		if got := a.String(); got != tt.in {
			t.Errorf("ParseAnalysis(%q).String() = %q", tt.in, got)
		}
	}
}

func TestParseAnalysisErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"a<>",
		"a<n",
		"a<n>b",
		`a<n>\x`,
		`a\`,
	} {
		if a, err := ParseAnalysis(in); err == nil {
			t.Errorf("ParseAnalysis(%q) = %v, want error", in, a)
		}
	}
}

func TestAnalysisEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"dog<n><pl>", "dog<n><pl>", true},
		{"dog<n><pl>", "Dog<n><pl>", false},
		{"dog<n><pl>", "dog<pl><n>", false},
		{"dog<n><pl>", "dog<n>", false},
		{"a<n>+b<v>", "a<n>+b<v>", true},
		{"a<n>+b<v>", "a<n>", false},
		{"take<v># out", "take<v># in", false},
	}
	for _, tt := range tests {
		got := MustParseAnalysis(tt.a).Equal(MustParseAnalysis(tt.b))
		if got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSplitUnescaped(t *testing.T) {
	tests := []struct {
		in   string
		sep  rune
		want []string
	}{
		{"a/b/c", '/', []string{"a", "b", "c"}},
		{`a\/b/c`, '/', []string{`a\/b`, "c"}},
		{"a<x+y>+b", '+', []string{"a<x+y>", "b"}},
		{"", '/', []string{""}},
	}
	for _, tt := range tests {
		got := splitUnescaped(tt.in, tt.sep)
		if len(got) != len(tt.want) {
			t.Errorf("splitUnescaped(%q) = %q, want %q", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitUnescaped(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
