package parsec_test

import (
	"testing"

	"github.com/g3rrit/muon-lang/pkg/parsec"
)

func TestSourceNextPeekRewind(t *testing.T) {
	src := parsec.NewSource([]byte("ab"))

	if b, ok := src.Peek(); !ok || b != 'a' {
		t.Fatalf("peek: got (%q, %v), want ('a', true)", b, ok)
	}
	if b, ok := src.Next(); !ok || b != 'a' {
		t.Fatalf("next: got (%q, %v), want ('a', true)", b, ok)
	}
	if src.Pos() != 1 {
		t.Fatalf("pos after one Next: got %d, want 1", src.Pos())
	}

	src.Rewind(1)
	if src.Pos() != 0 {
		t.Fatalf("pos after rewind: got %d, want 0", src.Pos())
	}

	src.Next()
	src.Next()
	if _, ok := src.Next(); ok {
		t.Fatalf("expected Next to report end of input")
	}
	if !src.AtEOF() {
		t.Fatalf("expected AtEOF after consuming the whole buffer")
	}
}

func TestSourceRewindPastStartPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic rewinding past the start of input")
		}
	}()
	src := parsec.NewSource([]byte("a"))
	src.Rewind(1)
}

func TestSourceSkipWhitespaceAndComments(t *testing.T) {
	test := func(input string, wantSkipped int, wantNextByte byte) {
		src := parsec.NewSource([]byte(input))
		n := src.Skip()
		if n != wantSkipped {
			t.Errorf("%q: skipped %d bytes, want %d", input, n, wantSkipped)
		}
		if b, ok := src.Peek(); !ok || b != wantNextByte {
			t.Errorf("%q: next byte after skip is %q, want %q", input, b, wantNextByte)
		}
	}

	t.Run("spaces and tabs", func(t *testing.T) { test("  \t\tx", 4, 'x') })
	t.Run("line comment to end of line", func(t *testing.T) { test("// hi\nx", 6, 'x') })
	t.Run("block comment non-nesting", func(t *testing.T) { test("/* a /* b */x", 12, 'x') })
	t.Run("unterminated block comment is left in place", func(t *testing.T) { test("/* never closes", 0, '/') })
	t.Run("no leading whitespace", func(t *testing.T) { test("x", 0, 'x') })
}

func TestSourcePeekAt(t *testing.T) {
	src := parsec.NewSource([]byte("abc"))
	if b, ok := src.PeekAt(0); !ok || b != 'a' {
		t.Errorf("PeekAt(0): got (%q, %v), want ('a', true)", b, ok)
	}
	if b, ok := src.PeekAt(2); !ok || b != 'c' {
		t.Errorf("PeekAt(2): got (%q, %v), want ('c', true)", b, ok)
	}
	if _, ok := src.PeekAt(3); ok {
		t.Errorf("PeekAt(3): expected out-of-range miss")
	}
	if _, ok := src.PeekAt(-1); ok {
		t.Errorf("PeekAt(-1): expected out-of-range miss")
	}
}
