package synccorpus

import (
	"strings"
)

// Tag is one grammatical category value, e.g. "n" or "sg".
// Tags are compared by string order.
type Tag string

// Morpheme is a lemma together with its tags.
type Morpheme struct {
	// Lemma is the lemma as written in the corpus (case preserved).
	Lemma string
	// Tags holds the tags in corpus order; Tags[0] is the primary category.
	Tags []Tag
	// Queue is the invariable part of a multiword, written after '#'.
	Queue string
}

// Equal reports whether m and o have the same lemma, tags and queue.
func (m Morpheme) Equal(o Morpheme) bool {
	return m.Lemma == o.Lemma && m.Queue == o.Queue && tagsEqual(m.Tags, o.Tags)
}

// PrimaryTag returns the first tag of m, or "" when m has no tags.
func (m Morpheme) PrimaryTag() (Tag, bool) {
	if len(m.Tags) == 0 {
		return "", false
	}
	return m.Tags[0], true
}

// String renders m in stream format, escaping reserved characters.
func (m Morpheme) String() string {
	var b strings.Builder
	m.writeTo(&b)
	return b.String()
}

func (m Morpheme) writeTo(b *strings.Builder) {
	b.WriteString(EscapeLemma(m.Lemma))
	for _, t := range m.Tags {
		b.WriteByte('<')
		b.WriteString(string(t))
		b.WriteByte('>')
	}
	if m.Queue != "" {
		b.WriteByte('#')
		b.WriteString(EscapeLemma(m.Queue))
	}
}

// Analysis is one candidate interpretation of a token: one or more
// morphemes joined with '+'.
type Analysis struct {
	Morphemes []Morpheme
	// raw is the text the analysis was parsed from, escapes included.
	raw string
}

// Equal reports exact structural equality: same number of morphemes,
// each with equal lemma and equal tag sequence.
func (a Analysis) Equal(o Analysis) bool {
	if len(a.Morphemes) != len(o.Morphemes) {
		return false
	}
	for i := range a.Morphemes {
		if !a.Morphemes[i].Equal(o.Morphemes[i]) {
			return false
		}
	}
	return true
}

// IsZero reports whether a has no morphemes.
func (a Analysis) IsZero() bool {
	return len(a.Morphemes) == 0
}

// source returns a as written in the corpus it was read from, falling
// back to String for analyses built in code.
func (a Analysis) source() string {
	if a.raw != "" {
		return a.raw
	}
	return a.String()
}

// String renders a in stream format.
func (a Analysis) String() string {
	var b strings.Builder
	for i, m := range a.Morphemes {
		if i > 0 {
			b.WriteByte('+')
		}
		m.writeTo(&b)
	}
	return b.String()
}

// LexicalUnit is a surface form with its candidate analyses.
type LexicalUnit struct {
	// src is the unit as read from a stream; nil for units built in code.
	src *unitSource

	// Surface is the unescaped surface form.
	Surface string
	// Analyses lists the candidates in corpus order. It is empty for
	// unknown words.
	Analyses []Analysis
	// Unknown is set when the unit was written as ^surface/*surface$.
	Unknown bool
}

// unitSource keeps a unit's text exactly as written, escapes included.
type unitSource struct {
	body    string
	surface string
}

// Selected returns the analysis previously chosen as correct in a tagged
// corpus, which is always the first candidate.
func (lu *LexicalUnit) Selected() (Analysis, bool) {
	if lu == nil || len(lu.Analyses) == 0 {
		return Analysis{}, false
	}
	return lu.Analyses[0], true
}

// Token is one positional unit read from a stream: the blank text that
// precedes it and the lexical unit itself. Unit is nil at end of stream,
// in which case Blank holds the trailing text.
type Token struct {
	Blank string
	Unit  *LexicalUnit
	// Line is the 1-based line on which the unit starts.
	Line int
}

// AtEnd reports whether t is the end-of-stream sentinel.
func (t Token) AtEnd() bool {
	return t.Unit == nil
}

// Selection is the analysis that will be written for a tagged unit.
type Selection struct {
	Unit     *LexicalUnit
	Analysis Analysis
	// Replaced is set when Analysis came from the untagged corpus instead
	// of the tagged one.
	Replaced bool
}

// NewSelection selects the first candidate of lu.
func NewSelection(lu *LexicalUnit) Selection {
	a, _ := lu.Selected()
	return Selection{Unit: lu, Analysis: a}
}

func tagsEqual(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
