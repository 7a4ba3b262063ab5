package syntax

import "github.com/haldis-lang/pyscope/pkg/util/source"

// ParseError is a single lexical or grammatical problem encountered while
// scanning or parsing a file. Like pkg/binder's Diagnostic, it is returned
// as a plain value rather than a Go error, so a caller can report every
// problem found in a file instead of stopping at the first one.
type ParseError struct {
	Span    source.Span
	Message string
}

func (e ParseError) Error() string { return e.Message }
