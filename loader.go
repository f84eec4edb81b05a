package synccorpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupEncoding resolves an encoding label such as "utf-8" or
// "iso-8859-1". An empty label means UTF-8.
func LookupEncoding(label string) (encoding.Encoding, error) {
	if label == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return enc, nil
}

// Stream reads positional units from a corpus in stream format.
type Stream struct {
	name string
	r    *bufio.Reader
	line int
	done bool
}

// NewStream reads already-decoded UTF-8 text from r. name is used in
// error messages.
func NewStream(r io.Reader, name string) *Stream {
	return &Stream{name: name, r: bufio.NewReader(r), line: 1}
}

// NewEncodedStream decodes r with enc before reading.
func NewEncodedStream(r io.Reader, name string, enc encoding.Encoding) *Stream {
	return NewStream(transform.NewReader(r, enc.NewDecoder()), name)
}

// Name returns the name given at construction.
func (s *Stream) Name() string {
	return s.name
}

// Line returns the current 1-based line number.
func (s *Stream) Line() int {
	return s.line
}

// Next returns the next positional unit. At end of input it returns a
// Token whose Unit is nil, carrying any trailing blank; later calls keep
// returning an empty sentinel.
func (s *Stream) Next() (Token, error) {
	var blank strings.Builder
	if s.done {
		return Token{Line: s.line}, nil
	}
	for {
		r, err := s.readRune()
		if errors.Is(err, io.EOF) {
			s.done = true
			return Token{Blank: blank.String(), Line: s.line}, nil
		}
		if err != nil {
			return Token{}, err
		}
		switch r {
		case '\\':
			next, err := s.readRune()
			if err != nil {
				return Token{}, s.eofError(err, "trailing backslash")
			}
			blank.WriteRune(r)
			blank.WriteRune(next)
		case '[':
			blank.WriteRune(r)
			if err := s.readSuperblank(&blank); err != nil {
				return Token{}, err
			}
		case '^':
			line := s.line
			lu, err := s.readUnit()
			if err != nil {
				return Token{}, err
			}
			return Token{Blank: blank.String(), Unit: lu, Line: line}, nil
		case '$':
			return Token{}, s.syntaxError("unexpected '$' outside a lexical unit")
		default:
			blank.WriteRune(r)
		}
	}
}

// readSuperblank copies a [...] block verbatim, up to and including the
// closing bracket.
func (s *Stream) readSuperblank(b *strings.Builder) error {
	for {
		r, err := s.readRune()
		if err != nil {
			return s.eofError(err, "unterminated superblank")
		}
		b.WriteRune(r)
		switch r {
		case '\\':
			next, err := s.readRune()
			if err != nil {
				return s.eofError(err, "unterminated superblank")
			}
			b.WriteRune(next)
		case ']':
			return nil
		}
	}
}

// readUnit reads the body of ^...$ after the opening caret.
func (s *Stream) readUnit() (*LexicalUnit, error) {
	var body strings.Builder
	for {
		r, err := s.readRune()
		if err != nil {
			return nil, s.eofError(err, "unterminated lexical unit")
		}
		switch r {
		case '\\':
			next, err := s.readRune()
			if err != nil {
				return nil, s.eofError(err, "unterminated lexical unit")
			}
			body.WriteRune(r)
			body.WriteRune(next)
			continue
		case '^':
			return nil, s.syntaxError("unexpected '^' inside a lexical unit")
		case '$':
			lu, err := parseUnit(body.String())
			if err != nil {
				return nil, s.syntaxError(err.Error())
			}
			return lu, nil
		}
		body.WriteRune(r)
	}
}

// parseUnit parses "surface/analysis/analysis".
func parseUnit(body string) (*LexicalUnit, error) {
	fields := splitUnescaped(body, '/')
	lu := &LexicalUnit{
		src:     &unitSource{body: body, surface: fields[0]},
		Surface: Unescape(fields[0]),
	}
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "*") {
			lu.Unknown = true
			continue
		}
		a, err := ParseAnalysis(f)
		if err != nil {
			return nil, err
		}
		lu.Analyses = append(lu.Analyses, a)
	}
	return lu, nil
}

func (s *Stream) readRune() (rune, error) {
	r, _, err := s.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' {
		s.line++
	}
	return r, nil
}

func (s *Stream) syntaxError(msg string) error {
	return &SyntaxError{Name: s.name, Line: s.line, Msg: msg}
}

func (s *Stream) eofError(err error, msg string) error {
	if errors.Is(err, io.EOF) {
		return s.syntaxError(msg)
	}
	return err
}
