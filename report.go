package synccorpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DiagnosticKind identifies a per-token message.
type DiagnosticKind int

const (
	NoExactMatch DiagnosticKind = iota
	CaseInsensitiveFound
	ReplacementFound
	NoReplacement
	NoDictionaryAnalyses
)

var diagnosticKindNames = [...]string{
	NoExactMatch:         "no-exact-match",
	CaseInsensitiveFound: "case-insensitive-match",
	ReplacementFound:     "replacement-found",
	NoReplacement:        "no-replacement",
	NoDictionaryAnalyses: "no-dictionary-analyses",
}

func (k DiagnosticKind) String() string {
	if k < 0 || int(k) >= len(diagnosticKindNames) {
		return "unknown"
	}
	return diagnosticKindNames[k]
}

// Diagnostic describes something noteworthy at one token position.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Surface string
	// Analysis is the tagged corpus's selected analysis.
	Analysis Analysis
	// Replacement is set for ReplacementFound.
	Replacement Analysis
	Shared      int
}

// Message renders d as a one-line human readable message.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case NoExactMatch:
		return fmt.Sprintf("No exact match found for %s on line %d.", d.Analysis, d.Line)
	case CaseInsensitiveFound:
		return "...but it's a case insensitive match."
	case ReplacementFound:
		return fmt.Sprintf("Replacement found: %s. (It shares %d tags.)", d.Replacement, d.Shared)
	case NoReplacement:
		return "No replacement found. (leaving as is)"
	case NoDictionaryAnalyses:
		return fmt.Sprintf("%s on line %d is tagged but has zero dictionary analyses (leaving as is).", d.Surface, d.Line)
	}
	return d.Kind.String()
}

// Reporter receives diagnostics in token order.
type Reporter interface {
	Report(Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

type discardReporter struct{}

func (discardReporter) Report(Diagnostic) {}

// LogReporter writes diagnostics to a structured logger.
type LogReporter struct {
	Log *slog.Logger
}

func (r LogReporter) Report(d Diagnostic) {
	level := slog.LevelWarn
	if d.Kind == CaseInsensitiveFound || d.Kind == ReplacementFound {
		level = slog.LevelInfo
	}
	attrs := []slog.Attr{
		slog.String("kind", d.Kind.String()),
		slog.Int("line", d.Line),
		slog.String("surface", d.Surface),
	}
	if !d.Analysis.IsZero() {
		attrs = append(attrs, slog.String("analysis", d.Analysis.String()))
	}
	if d.Kind == ReplacementFound {
		attrs = append(attrs,
			slog.String("replacement", d.Replacement.String()),
			slog.Int("shared_tags", d.Shared),
		)
	}
	r.Log.LogAttrs(context.Background(), level, d.Message(), attrs...)
}

// Stats counts outcomes over a whole run. Replaced and Unresolved are the
// two counters of the summary; the rest are informational.
type Stats struct {
	Tokens          int `json:"tokens"`
	Exact           int `json:"exact"`
	CaseInsensitive int `json:"case_insensitive"`
	Replaced        int `json:"replaced"`
	Unresolved      int `json:"unresolved"`
	NoDictionary    int `json:"no_dictionary"`
}

func (s *Stats) record(k MatchKind) {
	switch k {
	case ExactMatch:
		s.Exact++
	case CaseInsensitiveMatch:
		s.CaseInsensitive++
	case Replaced:
		s.Replaced++
	case Unresolved:
		s.Unresolved++
	case NoCandidates:
		s.NoDictionary++
	}
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Tokens += o.Tokens
	s.Exact += o.Exact
	s.CaseInsensitive += o.CaseInsensitive
	s.Replaced += o.Replaced
	s.Unresolved += o.Unresolved
	s.NoDictionary += o.NoDictionary
}

// WriteSummary prints the two-line end of run summary.
func (s Stats) WriteSummary(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d symbols replaced.\n%d problematic symbols left without replacement.\n",
		s.Replaced, s.Unresolved)
	return err
}
