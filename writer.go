package synccorpus

import (
	"bufio"
	"io"
)

// Writer emits tagged units back in stream format.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a Writer buffering output to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteBlank copies blank text verbatim.
func (w *Writer) WriteBlank(s string) error {
	_, err := w.w.WriteString(s)
	return err
}

// WriteSelection writes the unit of sel. A unit read from a stream is
// written back as it was read unless its analysis was replaced or it
// carries several candidates; then its source surface is joined with the
// selected analysis as written in its own corpus. Other units are written
// as ^surface/analysis$, or ^surface/*surface$ when there is no analysis.
func (w *Writer) WriteSelection(sel Selection) error {
	lu := sel.Unit
	if lu != nil && lu.src != nil && !sel.Replaced && len(lu.Analyses) <= 1 {
		w.w.WriteByte('^')
		w.w.WriteString(lu.src.body)
		return w.w.WriteByte('$')
	}
	surface := ""
	switch {
	case lu == nil:
	case lu.src != nil:
		surface = lu.src.surface
	default:
		surface = EscapeSurface(lu.Surface)
	}
	w.w.WriteByte('^')
	w.w.WriteString(surface)
	w.w.WriteByte('/')
	if sel.Analysis.IsZero() {
		w.w.WriteByte('*')
		w.w.WriteString(surface)
	} else {
		w.w.WriteString(sel.Analysis.source())
	}
	return w.w.WriteByte('$')
}

// WriteToken writes the blank of t followed by its unit unchanged. At
// end of stream only the trailing blank is written.
func (w *Writer) WriteToken(t Token) error {
	if err := w.WriteBlank(t.Blank); err != nil {
		return err
	}
	if t.Unit == nil {
		return nil
	}
	return w.WriteSelection(NewSelection(t.Unit))
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
