package synccorpus

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// surfaceEscaper protects the characters that delimit units, analyses and
// tags inside a surface form.
var surfaceEscaper = strings.NewReplacer(
	`\`, `\\`,
	"^", `\^`,
	"$", `\$`,
	"/", `\/`,
	"<", `\<`,
	">", `\>`,
	"@", `\@`,
	"[", `\[`,
	"]", `\]`,
)

// lemmaEscaper additionally protects '+' (morpheme joiner) and '#' (queue
// marker).
var lemmaEscaper = strings.NewReplacer(
	`\`, `\\`,
	"^", `\^`,
	"$", `\$`,
	"/", `\/`,
	"<", `\<`,
	">", `\>`,
	"@", `\@`,
	"[", `\[`,
	"]", `\]`,
	"+", `\+`,
	"#", `\#`,
)

// EscapeSurface escapes the reserved characters of a surface form.
func EscapeSurface(s string) string {
	return surfaceEscaper.Replace(s)
}

// EscapeLemma escapes the reserved characters of a lemma or queue.
func EscapeLemma(s string) string {
	return lemmaEscaper.Replace(s)
}

// Unescape drops the backslash in front of every escaped character.
// A trailing lone backslash is kept.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	esc := false
	for _, r := range s {
		if esc {
			b.WriteRune(r)
			esc = false
			continue
		}
		if r == '\\' {
			esc = true
			continue
		}
		b.WriteRune(r)
	}
	if esc {
		b.WriteByte('\\')
	}
	return b.String()
}

// Folder lowercases lemmas for the case-insensitive matching stage.
// A Folder is not safe for concurrent use.
type Folder struct {
	caser cases.Caser
}

// NewFolder returns a Folder using the lowercasing rules of locale.
// An empty locale means language-neutral rules.
func NewFolder(locale string) (*Folder, error) {
	tag := language.Und
	if locale != "" {
		t, err := language.Parse(locale)
		if err != nil {
			return nil, err
		}
		tag = t
	}
	return &Folder{caser: cases.Lower(tag)}, nil
}

// Fold returns the lowercase form of s.
func (f *Folder) Fold(s string) string {
	if f == nil {
		return strings.ToLower(s)
	}
	return f.caser.String(s)
}
