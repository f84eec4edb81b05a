package synccorpus

import (
	"errors"
	"fmt"
	"strings"
)

// ParseAnalysis parses one analysis in stream format, e.g.
// "house<n><pl>" or "can<vaux><pres>+not<adv>". Escapes are honoured.
func ParseAnalysis(s string) (Analysis, error) {
	if s == "" {
		return Analysis{}, errors.New("empty analysis")
	}
	a := Analysis{raw: s}
	for _, raw := range splitUnescaped(s, '+') {
		m, err := parseMorpheme(raw)
		if err != nil {
			return Analysis{}, fmt.Errorf("analysis %q: %w", s, err)
		}
		a.Morphemes = append(a.Morphemes, m)
	}
	return a, nil
}

// MustParseAnalysis is like ParseAnalysis but panics on error.
// It is meant for fixtures and tests.
func MustParseAnalysis(s string) Analysis {
	a, err := ParseAnalysis(s)
	if err != nil {
		panic(err)
	}
	return a
}

const (
	inLemma = iota
	inTag
	afterTag
	inQueue
)

// parseMorpheme reads lemma<tag>...<tag>[#queue].
func parseMorpheme(raw string) (Morpheme, error) {
	var (
		m     Morpheme
		lemma strings.Builder
		tag   strings.Builder
		queue strings.Builder
		state = inLemma
		esc   bool
	)
	for _, r := range raw {
		if esc {
			switch state {
			case inLemma:
				lemma.WriteRune(r)
			case inQueue:
				queue.WriteRune(r)
			default:
				return Morpheme{}, fmt.Errorf("unexpected %q after tags", r)
			}
			esc = false
			continue
		}
		if r == '\\' && state != inTag {
			esc = true
			continue
		}
		switch state {
		case inLemma:
			if r == '<' {
				state = inTag
				continue
			}
			lemma.WriteRune(r)
		case inTag:
			if r == '>' {
				if tag.Len() == 0 {
					return Morpheme{}, errors.New("empty tag")
				}
				m.Tags = append(m.Tags, Tag(tag.String()))
				tag.Reset()
				state = afterTag
				continue
			}
			tag.WriteRune(r)
		case afterTag:
			switch r {
			case '<':
				state = inTag
			case '#':
				state = inQueue
			default:
				return Morpheme{}, fmt.Errorf("unexpected %q after tags", r)
			}
		case inQueue:
			queue.WriteRune(r)
		}
	}
	if esc {
		return Morpheme{}, errors.New("trailing backslash")
	}
	if state == inTag {
		return Morpheme{}, errors.New("unterminated tag")
	}
	m.Lemma = lemma.String()
	m.Queue = queue.String()
	return m, nil
}

// splitUnescaped splits s on every sep that is neither escaped nor inside
// a <tag>. Escapes are kept in the parts.
func splitUnescaped(s string, sep rune) []string {
	var (
		parts  []string
		start  int
		esc    bool
		inside bool
	)
	for i, r := range s {
		switch {
		case esc:
			esc = false
		case r == '\\' && !inside:
			esc = true
		case r == '<':
			inside = true
		case r == '>':
			inside = false
		case r == sep && !inside:
			parts = append(parts, s[start:i])
			start = i + len(string(sep))
		}
	}
	return append(parts, s[start:])
}
