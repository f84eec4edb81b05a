package synccorpus

import (
	"errors"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) []Token {
	t.Helper()
	s := NewStream(strings.NewReader(input), "test")
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		toks = append(toks, tok)
		if tok.AtEnd() {
			return toks
		}
	}
}

func TestStreamNext(t *testing.T) {
	toks := readAll(t, "[<b>]^a/a<n>$ [x^y$] ^b\\/c/b\\/c<n>/b<v>$\n^d/*d$^e$\n")
	if len(toks) != 5 {
		t.Fatalf("got %d tokens, want 5", len(toks))
	}

	tests := []struct {
		blank    string
		surface  string
		analyses int
		unknown  bool
		line     int
	}{
		{"[<b>]", "a", 1, false, 1},
		{" [x^y$] ", "b/c", 2, false, 1},
		{"\n", "d", 0, true, 2},
		{"", "e", 0, false, 2},
	}
	for i, tt := range tests {
		tok := toks[i]
		if tok.Blank != tt.blank {
			t.Errorf("token %d blank = %q, want %q", i, tok.Blank, tt.blank)
		}
		if tok.Unit == nil {
			t.Fatalf("token %d has no unit", i)
		}
		if tok.Unit.Surface != tt.surface {
			t.Errorf("token %d surface = %q, want %q", i, tok.Unit.Surface, tt.surface)
		}
		if len(tok.Unit.Analyses) != tt.analyses {
			t.Errorf("token %d has %d analyses, want %d", i, len(tok.Unit.Analyses), tt.analyses)
		}
		if tok.Unit.Unknown != tt.unknown {
			t.Errorf("token %d unknown = %v, want %v", i, tok.Unit.Unknown, tt.unknown)
		}
		if tok.Line != tt.line {
			t.Errorf("token %d line = %d, want %d", i, tok.Line, tt.line)
		}
	}

	end := toks[4]
	if end.Blank != "\n" {
		t.Errorf("trailing blank = %q, want %q", end.Blank, "\n")
	}
	if got := toks[1].Unit.Analyses[0].Morphemes[0].Lemma; got != "b/c" {
		t.Errorf("escaped lemma = %q, want %q", got, "b/c")
	}
}

func TestStreamSelected(t *testing.T) {
	toks := readAll(t, "^dogs/dog<n><pl>/dog<vblex><pri><p3><sg>$")
	a, ok := toks[0].Unit.Selected()
	if !ok {
		t.Fatal("Selected() found nothing")
	}
	if got := a.String(); got != "dog<n><pl>" {
		t.Errorf("Selected() = %q, want %q", got, "dog<n><pl>")
	}
	if _, ok := toks[1].Unit.Selected(); ok {
		t.Error("end-of-stream sentinel has a selection")
	}
}

func TestStreamKeepsReturningSentinel(t *testing.T) {
	s := NewStream(strings.NewReader("^a/a<n>$ "), "test")
	for i := 0; i < 3; i++ {
		if _, err := s.Next(); err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
	}
	tok, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !tok.AtEnd() || tok.Blank != "" {
		t.Errorf("Next after end = %+v, want empty sentinel", tok)
	}
}

func TestStreamSyntaxErrors(t *testing.T) {
	tests := []struct {
		in   string
		line int
	}{
		{"foo$", 1},
		{"^a/a<n>", 1},
		{"^a/a<n>\n", 2},
		{"[abc", 1},
		{"^a/a<n>x$", 1},
		{"^a/a<n$", 1},
		{"^a^b$", 1},
		{"\n\n^a/$", 3},
		{`trailing\`, 1},
	}
	for _, tt := range tests {
		s := NewStream(strings.NewReader(tt.in), "corpus")
		var err error
		for err == nil {
			var tok Token
			tok, err = s.Next()
			if err == nil && tok.AtEnd() {
				break
			}
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: error = %v, want *SyntaxError", tt.in, err)
			continue
		}
		if se.Line != tt.line {
			t.Errorf("%q: error on line %d, want %d", tt.in, se.Line, tt.line)
		}
		if !strings.HasPrefix(se.Error(), "corpus:") {
			t.Errorf("%q: error %q does not name the stream", tt.in, se.Error())
		}
	}
}

func TestWriterWriteSelection(t *testing.T) {
	tests := []struct {
		sel  Selection
		want string
	}{
		{
			Selection{Unit: &LexicalUnit{Surface: "dogs"}, Analysis: MustParseAnalysis("dog<n><pl>")},
			"^dogs/dog<n><pl>$",
		},
		{
			Selection{Unit: &LexicalUnit{Surface: "a/b"}, Analysis: MustParseAnalysis(`a\/b<n>`)},
			`^a\/b/a\/b<n>$`,
		},
		{
			Selection{Unit: &LexicalUnit{Surface: "xyz", Unknown: true}},
			"^xyz/*xyz$",
		},
	}
	for _, tt := range tests {
		var b strings.Builder
		w := NewWriter(&b)
		if err := w.WriteSelection(tt.sel); err != nil {
			t.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		if b.String() != tt.want {
			t.Errorf("WriteSelection = %q, want %q", b.String(), tt.want)
		}
	}
}

func TestWriterKeepsSourceText(t *testing.T) {
	tests := []struct {
		in      string
		replace string
		want    string
	}{
		{`^\{/\{<lpar>$`, "", `^\{/\{<lpar>$`},
		{"^C#/C#<np>$", "", "^C#/C#<np>$"},
		{"^foo$", "", "^foo$"},
		{"^a/b<n>/c<vblex>$", "", "^a/b<n>$"},
		{`^\{/\{<lpar><sg>$`, `\{<lpar><pl>`, `^\{/\{<lpar><pl>$`},
	}
	for _, tt := range tests {
		tok, err := NewStream(strings.NewReader(tt.in), "test").Next()
		if err != nil {
			t.Fatalf("Next(%q): %v", tt.in, err)
		}
		sel := NewSelection(tok.Unit)
		if tt.replace != "" {
			sel.Analysis = MustParseAnalysis(tt.replace)
			sel.Replaced = true
		}
		var b strings.Builder
		w := NewWriter(&b)
		if err := w.WriteSelection(sel); err != nil {
			t.Fatal(err)
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		if b.String() != tt.want {
			t.Errorf("WriteSelection(%q) = %q, want %q", tt.in, b.String(), tt.want)
		}
	}
}

func TestWriterRoundTrip(t *testing.T) {
	in := "[<p>]^The/the<det><def><sp>$ ^take out/take<vblex><inf># out$ ^C++/C\\+\\+<np>$^./.<sent>$\n"
	s := NewStream(strings.NewReader(in), "test")
	var b strings.Builder
	w := NewWriter(&b)
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatal(err)
		}
		if err := w.WriteToken(tok); err != nil {
			t.Fatal(err)
		}
		if tok.AtEnd() {
			break
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if b.String() != in {
		t.Errorf("round trip =\n%q\nwant\n%q", b.String(), in)
	}
}
