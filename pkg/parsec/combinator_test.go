package parsec_test

import (
	"testing"

	"github.com/g3rrit/muon-lang/pkg/parsec"
)

const (
	kindPlus  parsec.Kind = "PLUS"
	kindComma parsec.Kind = "COMMA"
	kindPair  parsec.Kind = "PAIR"
	kindList  parsec.Kind = "LIST"
)

func TestJust(t *testing.T) {
	just := parsec.NewJust("ident", parsec.Identifier())
	src := parsec.NewSource([]byte("foo"))
	node, n, err := just.Parse(src)
	if err != nil || node == nil {
		t.Fatalf("expected a match, got node=%v err=%v", node, err)
	}
	if n != 3 {
		t.Errorf("consumed: got %d, want 3", n)
	}
}

func TestOrCommitsToFirstMatch(t *testing.T) {
	// P4: for overlapping prefixes, the first listed alternative wins.
	float := parsec.NewJust("float", parsec.Float())
	integer := parsec.NewJust("integer", parsec.Integer())
	or := parsec.NewOr("number", float.Share(), integer.Share())

	src := parsec.NewSource([]byte("3.0"))
	node, n, err := or.Parse(src)
	if err != nil || node == nil {
		t.Fatalf("expected a match, got node=%v err=%v", node, err)
	}
	if node.Kind != parsec.KindFloat {
		t.Errorf("kind: got %s, want %s", node.Kind, parsec.KindFloat)
	}
	if n != 3 {
		t.Errorf("consumed: got %d, want 3", n)
	}

	or.Release()
}

func TestOrRestoresCursorOnTotalFailure(t *testing.T) {
	// P1: every soft failure restores the cursor to entry.
	a := parsec.NewJust("a", parsec.Fixed("a", "A", true))
	b := parsec.NewJust("b", parsec.Fixed("b", "B", true))
	or := parsec.NewOr("ab", a.Share(), b.Share())

	src := parsec.NewSource([]byte("zzz"))
	node, _, err := or.Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node != nil {
		t.Fatalf("expected no match, got %v", node)
	}
	if src.Pos() != 0 {
		t.Errorf("cursor not restored: got %d, want 0", src.Pos())
	}

	or.Release()
}

func TestAndCommitsOrRewindsFully(t *testing.T) {
	lhs := parsec.NewJust("ident", parsec.Identifier())
	plus := parsec.NewJust("plus", parsec.Fixed("+", kindPlus, true))
	rhs := parsec.NewJust("ident2", parsec.Identifier())
	and := parsec.NewAnd("sum", kindPair, lhs.Share(), plus.Share(), rhs.Share())

	t.Run("full match produces a composite of all children in order", func(t *testing.T) {
		src := parsec.NewSource([]byte("a+b"))
		node, n, err := and.Parse(src)
		if err != nil || node == nil {
			t.Fatalf("expected a match, got node=%v err=%v", node, err)
		}
		if node.Kind != kindPair {
			t.Errorf("kind: got %s, want %s", node.Kind, kindPair)
		}
		children := node.Children()
		if len(children) != 3 {
			t.Fatalf("children: got %d, want 3", len(children))
		}
		if children[0].Text() != "a" || children[2].Text() != "b" {
			t.Errorf("unexpected children: %q, %q", children[0].Text(), children[2].Text())
		}
		if n != 3 {
			t.Errorf("consumed: got %d, want 3", n)
		}
	})

	t.Run("partial match rewinds everything this And consumed", func(t *testing.T) {
		// P2: "a+" with no trailing identifier must leave the cursor at 0,
		// not at 2 (where the failing rhs attempt started).
		src := parsec.NewSource([]byte("a+"))
		node, n, err := and.Parse(src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node != nil {
			t.Fatalf("expected no match, got %v", node)
		}
		if n != 0 {
			t.Errorf("reported consumed on failure: got %d, want 0", n)
		}
		if src.Pos() != 0 {
			t.Errorf("cursor not restored: got %d, want 0", src.Pos())
		}
	})

	and.Release()
}

func TestOptShapes(t *testing.T) {
	ident := parsec.NewJust("ident", parsec.Identifier())
	comma := parsec.NewJust("comma", parsec.Fixed(",", kindComma, true))

	t.Run("no trailing separator: elem (sep elem)*, empty is valid", func(t *testing.T) {
		opt := parsec.NewOpt("list", kindList, ident.Share(), comma.Share(), false)

		src := parsec.NewSource([]byte("a,b,c"))
		node, n, err := opt.Parse(src)
		if err != nil || node == nil {
			t.Fatalf("expected a match, got node=%v err=%v", node, err)
		}
		children := node.Children()
		// P3: alternates elem, sep, elem, sep, elem -> 5 entries, no trailing sep.
		if len(children) != 5 {
			t.Fatalf("children: got %d, want 5", len(children))
		}
		if children[0].Text() != "a" || children[2].Text() != "b" || children[4].Text() != "c" {
			t.Errorf("unexpected element order: %v", children)
		}
		if n != 5 {
			t.Errorf("consumed: got %d, want 5", n)
		}

		empty := parsec.NewSource([]byte(""))
		node, _, err = opt.Parse(empty)
		if err != nil || node == nil {
			t.Fatalf("expected an empty match, got node=%v err=%v", node, err)
		}
		if len(node.Children()) != 0 {
			t.Errorf("expected zero children, got %d", len(node.Children()))
		}

		opt.Release()
	})

	t.Run("no trailing separator: a dangling separator aborts the whole Opt", func(t *testing.T) {
		opt := parsec.NewOpt("list", kindList, ident.Share(), comma.Share(), false)

		src := parsec.NewSource([]byte("a,b,"))
		_, n, err := opt.Parse(src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// "a,b," trailing with no final element is a hard abort of this whole
		// invocation in trailing-not-required mode (mid-sequence separator
		// followed by a missing element always aborts).
		if n != 0 || src.Pos() != 0 {
			t.Errorf("expected the whole Opt to abort and rewind: n=%d pos=%d", n, src.Pos())
		}

		opt.Release()
	})

	t.Run("trailing separator required: every element must be followed by sep", func(t *testing.T) {
		opt := parsec.NewOpt("list", kindList, ident.Share(), comma.Share(), true)

		src := parsec.NewSource([]byte("a,b,c,"))
		node, n, err := opt.Parse(src)
		if err != nil || node == nil {
			t.Fatalf("expected a match, got node=%v err=%v", node, err)
		}
		children := node.Children()
		if len(children) != 6 {
			t.Fatalf("children: got %d, want 6 (3 elements + 3 separators)", len(children))
		}
		if n != 6 {
			t.Errorf("consumed: got %d, want 6", n)
		}

		opt.Release()
	})

	t.Run("trailing separator required: a missing final separator aborts the whole Opt", func(t *testing.T) {
		// spec.md §4.4: "if the separator is missing after a successful
		// element, the entire Opt aborts and rewinds" — not just the last
		// incomplete pair; everything this Opt matched unwinds to entry.
		opt := parsec.NewOpt("list", kindList, ident.Share(), comma.Share(), true)

		src := parsec.NewSource([]byte("a,b,c"))
		node, n, err := opt.Parse(src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if node != nil {
			t.Fatalf("expected the whole Opt to fail, got %v", node)
		}
		if n != 0 || src.Pos() != 0 {
			t.Errorf("expected a full rewind to entry: n=%d pos=%d", n, src.Pos())
		}

		opt.Release()
	})
}

func TestExpectConvertsFailureToFatalError(t *testing.T) {
	ident := parsec.NewJust("ident", parsec.Identifier())
	expect := parsec.NewExpect("an identifier", ident.Share())

	t.Run("success passes through unchanged", func(t *testing.T) {
		src := parsec.NewSource([]byte("foo"))
		node, _, err := expect.Parse(src)
		if err != nil || node == nil {
			t.Fatalf("expected a match, got node=%v err=%v", node, err)
		}
	})

	t.Run("failure becomes a fatal ExpectError", func(t *testing.T) {
		src := parsec.NewSource([]byte("123"))
		node, _, err := expect.Parse(src)
		if node != nil {
			t.Fatalf("expected no node on fatal failure, got %v", node)
		}
		var expectErr *parsec.ExpectError
		if !asExpectError(err, &expectErr) {
			t.Fatalf("expected an *ExpectError, got %v (%T)", err, err)
		}
		if expectErr.Description != "an identifier" {
			t.Errorf("description: got %q, want %q", expectErr.Description, "an identifier")
		}
	})

	expect.Release()
}

func asExpectError(err error, target **parsec.ExpectError) bool {
	e, ok := err.(*parsec.ExpectError)
	if ok {
		*target = e
	}
	return ok
}

func TestRefcountDiscipline(t *testing.T) {
	// P6: a shared combinator's Refcount reflects exactly how many parents
	// hold a reference; it only reaches zero once every parent has released.
	leaf := parsec.NewJust("ident", parsec.Identifier())
	if leaf.Refcount() != 1 {
		t.Fatalf("fresh combinator refcount: got %d, want 1", leaf.Refcount())
	}

	first := parsec.NewAnd("first", kindPair, leaf.Share())
	second := parsec.NewAnd("second", kindPair, leaf.Share())
	if leaf.Refcount() != 3 {
		t.Fatalf("after two Share() calls: got %d, want 3", leaf.Refcount())
	}

	first.Release()
	if leaf.Refcount() != 2 {
		t.Fatalf("after releasing one parent: got %d, want 2", leaf.Refcount())
	}

	second.Release()
	if leaf.Refcount() != 1 {
		t.Fatalf("after releasing both parents: got %d, want 1", leaf.Refcount())
	}

	leaf.Release()
	if leaf.Refcount() != 0 {
		t.Fatalf("after releasing the original holder: got %d, want 0", leaf.Refcount())
	}
}

func TestReleasePastZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic releasing an already-zero combinator")
		}
	}()
	leaf := parsec.NewJust("ident", parsec.Identifier())
	leaf.Release()
	leaf.Release()
}
