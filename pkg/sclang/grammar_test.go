package sclang_test

import (
	"testing"

	"github.com/g3rrit/muon-lang/pkg/parsec"
	"github.com/g3rrit/muon-lang/pkg/sclang"
)

// parseOne runs the grammar's Root combinator once over input and fails the
// test if it does not match exactly the expected Kind.
func parseOne(t *testing.T, input string, want parsec.Kind) *parsec.Node {
	t.Helper()
	g := sclang.NewGrammar()
	defer g.Root.Release()

	src := parsec.NewSource([]byte(input))
	node, _, err := g.Root.Parse(src)
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", input, err)
	}
	if node == nil {
		t.Fatalf("expected a match for %q, got none", input)
	}
	if node.Kind != want {
		t.Fatalf("kind: got %s, want %s (input %q)", node.Kind, want, input)
	}
	return node
}

func TestRootAlternatives(t *testing.T) {
	t.Run("struct forward declaration", func(t *testing.T) {
		parseOne(t, "Point ;", sclang.KindStructDeclaration)
	})

	t.Run("struct definition", func(t *testing.T) {
		node := parseOne(t, "Point { x : i32 ; y : i32 ; }", sclang.KindStruct)
		if node.Children()[0].Text() != "Point" {
			t.Errorf("struct name: got %q, want %q", node.Children()[0].Text(), "Point")
		}
	})

	t.Run("variable declaration", func(t *testing.T) {
		parseOne(t, "extern x : i32 ;", sclang.KindVariableDeclaration)
	})

	t.Run("variable definition", func(t *testing.T) {
		parseOne(t, "x : i32 = 5 ;", sclang.KindVariableDefinition)
	})

	t.Run("function declaration", func(t *testing.T) {
		parseOne(t, "add ( i32 , i32 ) -> i32 ;", sclang.KindFunctionDeclaration)
	})

	t.Run("function definition", func(t *testing.T) {
		parseOne(t, "add ( a : i32 , b : i32 ) -> i32 { ret a ; }", sclang.KindFunction)
	})

	t.Run("end of input", func(t *testing.T) {
		parseOne(t, "", parsec.KindEOF)
	})
}

func TestTypeTieBreakOrder(t *testing.T) {
	// spec.md §4.4: array before function before pointer before identifier.
	g := sclang.NewGrammar()
	defer g.Root.Release()

	test := func(input string, want parsec.Kind) {
		src := parsec.NewSource([]byte(input))
		node, _, err := g.Type.Parse(src)
		if err != nil || node == nil {
			t.Fatalf("%q: expected a match, got node=%v err=%v", input, node, err)
		}
		if node.Kind != want {
			t.Errorf("%q: kind: got %s, want %s", input, node.Kind, want)
		}
	}

	test("i32", sclang.KindIdType)
	test("*i32", sclang.KindPointerType)
	test("(i32) -> i32", sclang.KindFunctionType)
	test("[i32; 10]", sclang.KindArrayType)
}

func TestConditionalJumpBeforeJump(t *testing.T) {
	// Both statement forms start with 'jmp'; only the conditional one has an
	// expression between the keyword and the label.
	g := sclang.NewGrammar()
	defer g.Root.Release()

	test := func(input string, want parsec.Kind) {
		src := parsec.NewSource([]byte(input))
		node, _, err := g.Statement.Parse(src)
		if err != nil || node == nil {
			t.Fatalf("%q: expected a match, got node=%v err=%v", input, node, err)
		}
		if node.Kind != want {
			t.Errorf("%q: kind: got %s, want %s", input, node.Kind, want)
		}
	}

	test("jmp x start ;", sclang.KindConditionalJumpStatement)
	test("jmp start ;", sclang.KindJumpStatement)
}

func TestExpressionGrammarSupplementedForms(t *testing.T) {
	g := sclang.NewGrammar()
	defer g.Root.Release()

	test := func(input string, want parsec.Kind) {
		src := parsec.NewSource([]byte(input))
		node, _, err := g.Expression.Parse(src)
		if err != nil || node == nil {
			t.Fatalf("%q: expected a match, got node=%v err=%v", input, node, err)
		}
		if node.Kind != want {
			t.Errorf("%q: kind: got %s, want %s", input, node.Kind, want)
		}
	}

	test("42", parsec.KindInt)
	test("4.2", parsec.KindFloat)
	test(`"hi"`, parsec.KindString)
	test("x", sclang.KindIdentifierExpression)
	test("f(1 2)", sclang.KindCallExpression)
	test("(x)", sclang.KindBracketExpression)
	test("(i32)(x)", sclang.KindCastExpression)
	test("sizeof(i32)", sclang.KindSizeofExpression)
	test("arr[0]", sclang.KindArrayIndexExpression)
	test("p.field", sclang.KindMemberExpression)
	test("p->field", sclang.KindMemberExpression)
	test("a ? b : c", sclang.KindTernaryExpression)
	test("!x", sclang.KindUnaryExpression)
	test("a + b", sclang.KindBinaryExpression)
}

func TestGrammarTeardownDrainsToZero(t *testing.T) {
	// spec.md §8 P6: releasing the root once after a clean run must leave
	// every shared combinator at refcount zero, not just Root itself.
	g := sclang.NewGrammar()

	if g.Type.Refcount() == 0 || g.Expression.Refcount() == 0 || g.Statement.Refcount() == 0 {
		t.Fatalf("expected positive refcounts before teardown: type=%d expression=%d statement=%d",
			g.Type.Refcount(), g.Expression.Refcount(), g.Statement.Refcount())
	}

	g.Root.Release()

	if got := g.Type.Refcount(); got != 0 {
		t.Errorf("g.Type.Refcount() after Root.Release(): got %d, want 0", got)
	}
	if got := g.Expression.Refcount(); got != 0 {
		t.Errorf("g.Expression.Refcount() after Root.Release(): got %d, want 0", got)
	}
	if got := g.Statement.Refcount(); got != 0 {
		t.Errorf("g.Statement.Refcount() after Root.Release(): got %d, want 0", got)
	}
	if got := g.Root.Refcount(); got != 0 {
		t.Errorf("g.Root.Refcount() after Root.Release(): got %d, want 0", got)
	}
}

func TestMissingTrailingSeparatorIsFatal(t *testing.T) {
	// Scenario 6: a struct body without every member's trailing ';' is a
	// fatal parse error (via the Expect wrapping grammar.go's struct member list),
	// not a silent fall-through to another Root alternative.
	g := sclang.NewGrammar()
	defer g.Root.Release()

	src := parsec.NewSource([]byte("S { a : i32 b : i32 }"))
	node, _, err := g.Root.Parse(src)
	if node != nil {
		t.Fatalf("expected no root alternative to match, got %v", node)
	}
	var expectErr *parsec.ExpectError
	if e, ok := err.(*parsec.ExpectError); ok {
		expectErr = e
	}
	if expectErr == nil {
		t.Fatalf("expected a fatal *parsec.ExpectError, got %v (%T)", err, err)
	}
}
