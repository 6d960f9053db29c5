package parsec

import "fmt"

// ----------------------------------------------------------------------------
// Fatal errors

// spec.md §7 distinguishes soft parse failure (a nil Node, no error: the
// enclosing Or/Opt just moves on) from the two kinds of fatal failure that
// actually abort the parse. Both are reported through the same (*Node, int,
// error) return convention every Combinator.Parse and LeafParser share: a
// non-nil error always means "stop, something is fatally wrong," regardless
// of which of the two concrete types below produced it.

// ExpectError is raised when an Expect combinator's child fails to match;
// it carries the human description configured on that Expect (spec.md §4.4).
type ExpectError struct {
	Description string
	Offset      int
}

func (e *ExpectError) Error() string {
	return fmt.Sprintf("parse error at byte %d: expected %s", e.Offset, e.Description)
}

// LexError is raised by a leaf parser on an unterminated string, an invalid
// byte inside a string, an unknown character-literal escape, or an
// identifier/integer/float/string exceeding the 1024-byte length cap
// (spec.md §7, kind 3: "fatal lexical failure").
type LexError struct {
	Reason string
	Offset int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at byte %d: %s", e.Offset, e.Reason)
}
