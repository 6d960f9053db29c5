package parsec

import (
	"fmt"
	"io"
)

// ----------------------------------------------------------------------------
// Text sink

// This section implements C2: formatted emission to whatever the caller
// hands us, with no buffering or seeking guarantees of its own (that's the
// underlying io.Writer's business, not ours — matching spec.md §6's "No
// binary output, no intermediate files").

// Sink is the append-only text destination the emitter writes through.
type Sink struct{ w io.Writer }

// NewSink wraps an io.Writer (a file, os.Stdout, a bytes.Buffer in tests).
func NewSink(w io.Writer) *Sink { return &Sink{w: w} }

// WriteString writes s verbatim.
func (s *Sink) WriteString(str string) {
	if _, err := io.WriteString(s.w, str); err != nil {
		panic(fmt.Sprintf("parsec: sink write failed: %v", err))
	}
}

// WriteLine writes s followed by a newline.
func (s *Sink) WriteLine(str string) { s.WriteString(str + "\n") }

// Writef writes a printf-style formatted record (the engine only ever uses
// %s, %d, %lf and %c placeholders per spec.md §4.2, but we delegate to
// fmt.Sprintf so any verb works).
func (s *Sink) Writef(format string, args ...any) {
	s.WriteString(fmt.Sprintf(format, args...))
}
