package synccorpus

import (
	"errors"
	"fmt"
)

// ErrUnalignedStreams is returned when one corpus ends before the other.
var ErrUnalignedStreams = errors.New("one stream has ended prematurely; check that the corpora are aligned")

// AlignmentError reports where the two corpora diverged.
type AlignmentError struct {
	// Ended names the stream that ran out first.
	Ended string
	// Line is the line reached in the tagged corpus.
	Line int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%s ended at tagged line %d: %v", e.Ended, e.Line, ErrUnalignedStreams)
}

func (e *AlignmentError) Unwrap() error {
	return ErrUnalignedStreams
}

// SyntaxError is a malformed stream.
type SyntaxError struct {
	Name string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
}

// OpenError wraps a failure to open one of the corpora.
type OpenError struct {
	// Role is TAGGED_CORPUS or UNTAGGED_CORPUS.
	Role string
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s %q: %v", e.Role, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
