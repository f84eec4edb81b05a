// Package synccorpus resynchronizes a tagged (disambiguated) corpus with
// the untagged corpus produced from the same text by an updated
// dictionary. For every token the previously selected analysis is looked
// up among the new candidates and, when it is gone, replaced by the
// closest candidate that shares its part of speech.
package synccorpus

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Options configures a Syncer.
type Options struct {
	// Encoding is the character encoding of the corpora and of the
	// output, e.g. "utf-8" or "iso-8859-15". Empty means UTF-8.
	Encoding string
	// Locale selects the lowercasing rules used for case-insensitive
	// lemma comparison, e.g. "tr". Empty means language-neutral.
	Locale string
	// Reporter receives per-token diagnostics. Nil discards them.
	Reporter Reporter
}

// Syncer runs the synchronization of a tagged/untagged corpus pair.
// A Syncer runs one pair at a time.
type Syncer struct {
	enc      encoding.Encoding
	matcher  *Matcher
	reporter Reporter
}

// New validates opts and returns a ready-to-use Syncer.
func New(opts Options) (*Syncer, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	folder, err := NewFolder(opts.Locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", opts.Locale, err)
	}
	rep := opts.Reporter
	if rep == nil {
		rep = discardReporter{}
	}
	return &Syncer{enc: enc, matcher: NewMatcher(folder), reporter: rep}, nil
}

// SyncFiles opens both corpora and writes the resynchronized tagged
// corpus to w.
func (s *Syncer) SyncFiles(taggedPath, untaggedPath string, w io.Writer) (Stats, error) {
	tf, err := os.Open(taggedPath)
	if err != nil {
		return Stats{}, &OpenError{Role: "TAGGED_CORPUS", Path: taggedPath, Err: err}
	}
	defer tf.Close()
	uf, err := os.Open(untaggedPath)
	if err != nil {
		return Stats{}, &OpenError{Role: "UNTAGGED_CORPUS", Path: untaggedPath, Err: err}
	}
	defer uf.Close()

	tagged := NewEncodedStream(tf, taggedPath, s.enc)
	untagged := NewEncodedStream(uf, untaggedPath, s.enc)
	return s.syncEncoded(tagged, untagged, w)
}

// Sync reads both corpora from readers in the configured encoding.
func (s *Syncer) Sync(tagged, untagged io.Reader, w io.Writer) (Stats, error) {
	return s.syncEncoded(
		NewEncodedStream(tagged, "tagged", s.enc),
		NewEncodedStream(untagged, "untagged", s.enc),
		w,
	)
}

func (s *Syncer) syncEncoded(tagged, untagged *Stream, w io.Writer) (Stats, error) {
	ew := transform.NewWriter(w, s.enc.NewEncoder())
	stats, err := s.SyncStreams(tagged, untagged, NewWriter(ew))
	if cerr := ew.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return stats, err
}

// SyncStreams reads both streams in lock-step, one unit from each per
// position, and writes every tagged unit to out with its selection
// corrected where needed. It stops with an *AlignmentError if one stream
// ends before the other; what was already written is flushed.
func (s *Syncer) SyncStreams(tagged, untagged *Stream, out *Writer) (Stats, error) {
	var stats Stats
	for {
		tt, err := tagged.Next()
		if err != nil {
			return stats, flushed(out, err)
		}
		ut, err := untagged.Next()
		if err != nil {
			return stats, flushed(out, err)
		}
		if tt.AtEnd() || ut.AtEnd() {
			if !tt.AtEnd() {
				return stats, flushed(out, &AlignmentError{Ended: untagged.Name(), Line: tt.Line})
			}
			if !ut.AtEnd() {
				return stats, flushed(out, &AlignmentError{Ended: tagged.Name(), Line: tagged.Line()})
			}
			if err := out.WriteToken(tt); err != nil {
				return stats, err
			}
			return stats, out.Flush()
		}

		stats.Tokens++
		sel := NewSelection(tt.Unit)
		if sel.Analysis.IsZero() {
			if err := out.WriteToken(tt); err != nil {
				return stats, err
			}
			continue
		}
		s.synchronize(&sel, tt, ut.Unit, &stats)
		if err := out.WriteBlank(tt.Blank); err != nil {
			return stats, err
		}
		if err := out.WriteSelection(sel); err != nil {
			return stats, err
		}
	}
}

// synchronize decides the selection of one tagged unit and reports it.
func (s *Syncer) synchronize(sel *Selection, tt Token, src *LexicalUnit, stats *Stats) {
	ref := sel.Analysis
	outcome := s.matcher.Synchronize(ref, src.Analyses)
	stats.record(outcome.Kind)

	d := Diagnostic{Line: tt.Line, Surface: tt.Unit.Surface, Analysis: ref}
	report := func(k DiagnosticKind) {
		d.Kind = k
		s.reporter.Report(d)
	}
	switch outcome.Kind {
	case ExactMatch:
	case NoCandidates:
		d.Surface = src.Surface
		report(NoDictionaryAnalyses)
	case CaseInsensitiveMatch:
		report(NoExactMatch)
		report(CaseInsensitiveFound)
	case Replaced:
		report(NoExactMatch)
		d.Replacement, d.Shared = outcome.Analysis, outcome.Shared
		report(ReplacementFound)
		sel.Analysis = outcome.Analysis
		sel.Replaced = true
	case Unresolved:
		report(NoExactMatch)
		report(NoReplacement)
	}
}

func flushed(out *Writer, err error) error {
	out.Flush()
	return err
}
