package trace

import (
	"bufio"
	"io"
)

// Writer is a Sink that writes trace lines to an io.Writer.
//
// The first write error is kept and returned by Flush; later records are
// dropped.
type Writer struct {
	Count [3]int // Records emitted, by Kind.

	out *bufio.Writer
	err error
}

var _ Sink = (*Writer)(nil)

// NewWriter creates a trace Writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		out: bufio.NewWriter(w),
	}
}

// Emit writes one trace line.
func (tw *Writer) Emit(rec Record) {
	if tw.err != nil {
		return
	}

	if rec.Kind >= KIND_READ && rec.Kind <= KIND_EXEC {
		tw.Count[rec.Kind]++
	}

	_, err := tw.out.WriteString(rec.String() + "\n")
	if err != nil {
		tw.err = err
	}
}

// Flush writes any buffered lines, and returns the first error seen.
func (tw *Writer) Flush() (err error) {
	if tw.err != nil {
		return tw.err
	}

	tw.err = tw.out.Flush()

	return tw.err
}
