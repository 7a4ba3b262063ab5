// Package source provides the host-side view of a single source file that
// the binder needs but does not own: raw contents, byte spans, and
// span-to-line/column conversion.  The lexer/parser that actually produces
// these spans lives outside this package (pkg/syntax here, or any other
// parser a caller wires in); this package only has to agree with it on
// the Span shape.
package source

import "fmt"

// Span identifies a contiguous byte range within a source file's contents.
// Retaining physical indices (rather than a string slice) lets diagnostics
// and the line table recover enclosing lines cheaply.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, panicking if the range is malformed.
func NewSpan(start, end int) Span {
	if start > end {
		panic("invalid span: start after end")
	}

	return Span{start, end}
}

// Start returns the first byte index covered by this span.
func (s Span) Start() int { return s.start }

// End returns one past the last byte index covered by this span.
func (s Span) End() int { return s.end }

// Length returns the number of bytes covered by this span.
func (s Span) Length() int { return s.end - s.start }

// Range is the line/column rendering of a Span, counting lines and columns
// from 1 — the form a diagnostic renderer (out of scope for this module)
// would actually want to print.
type Range struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

// String renders a range as "line:col-line:col".
func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.StartLine, r.StartColumn, r.EndLine, r.EndColumn)
}
