package sclang

import "github.com/g3rrit/muon-lang/pkg/parsec"

// ----------------------------------------------------------------------------
// Expression climbing
//
// spec.md's combinator vocabulary (Just/Or/And/Opt/Expect) has no notion of
// "zero or more differently-shaped suffixes folded left-associatively into a
// growing result," which is what call/array-index/member-access and binary
// operator chaining need (grounded on original_source/lang/leg.c's
// parse_pexp/parse_cexp split: parse one primary, then a loop that keeps
// re-wrapping it). The three types below are small bespoke Combinators built
// out of the same primitives rather than a sixth engine-level combinator
// kind, the same way the grammar-wiring layer is expected to add glue code
// around C4 rather than extend it (spec.md §2, C6's "Grammar wiring").
//
// Each type owns its own refcount following the exact incr/decr/panic
// discipline every other Combinator in this module uses (see
// pkg/parsec/combinator.go); Share is only ever actually exercised if a
// caller wires one of these into a second parent, which this grammar never
// does, but the contract still has to hold.

type chainRefs struct{ count int32 }

func newChainRefs() chainRefs { return chainRefs{count: 1} }
func (c *chainRefs) incr()    { c.count++ }
func (c *chainRefs) decr() bool {
	c.count--
	if c.count < 0 {
		panic("sclang: combinator released more times than shared")
	}
	return c.count == 0
}
func (c *chainRefs) Refcount() int32 { return c.count }

// ---- postfix: primary ( "(" args ")" | "[" index "]" | ("." | "->") id )* --

type postfixChain struct {
	chainRefs
	ruleName       string
	primary        parsec.Combinator
	expressionList parsec.Combinator // Opt(expression, none, false); patched in after construction

	lparen, rparen, lbracket, rbracket *parsec.Just
	dotOp, arrowOp                     *parsec.Just
	ident                              *parsec.Just

	// indexExpr is the full expression tier (ternary/binary/postfix), used
	// for an array index; patched in after construction by NewGrammar to
	// avoid a forward reference to a value this chain itself sits beneath.
	indexExpr parsec.Combinator
}

func newPostfixChain(name string, primary parsec.Combinator) *postfixChain {
	return &postfixChain{
		chainRefs: newChainRefs(),
		ruleName:  name,
		primary:   primary,
		lparen:    marker("(", KindLParen),
		rparen:    marker(")", KindRParen),
		lbracket:  marker("[", KindLBracket),
		rbracket:  marker("]", KindRBracket),
		dotOp:     marker(".", KindDot),
		arrowOp:   marker("->", KindArrow),
		ident:     parsec.NewJust("ident", parsec.Identifier()),
	}
}

func (p *postfixChain) Parse(src *parsec.Source) (*parsec.Node, int, error) {
	node, total, err := p.primary.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	if node == nil {
		return nil, 0, nil
	}

	for {
		if lp, lpN, err := p.lparen.Parse(src); err != nil {
			return nil, 0, err
		} else if lp != nil {
			args, argsN, err := p.expressionList.Parse(src)
			if err != nil {
				return nil, 0, err
			}
			rp, rpN, err := p.rparen.Parse(src)
			if err != nil {
				return nil, 0, err
			}
			if rp == nil {
				src.Rewind(lpN + argsN)
				break
			}
			node = parsec.NewComposite(KindCallExpression, node, lp, args, rp)
			total += lpN + argsN + rpN
			continue
		}

		if lb, lbN, err := p.lbracket.Parse(src); err != nil {
			return nil, 0, err
		} else if lb != nil {
			idx, idxN, err := p.ternaryOf(src)
			if err != nil {
				return nil, 0, err
			}
			if idx == nil {
				src.Rewind(lbN)
				break
			}
			rb, rbN, err := p.rbracket.Parse(src)
			if err != nil {
				return nil, 0, err
			}
			if rb == nil {
				src.Rewind(lbN + idxN)
				break
			}
			node = parsec.NewComposite(KindArrayIndexExpression, node, lb, idx, rb)
			total += lbN + idxN + rbN
			continue
		}

		if op, opN, err := p.memberOp(src); err != nil {
			return nil, 0, err
		} else if op != nil {
			id, idN, err := p.ident.Parse(src)
			if err != nil {
				return nil, 0, err
			}
			if id == nil {
				src.Rewind(opN)
				break
			}
			node = parsec.NewComposite(KindMemberExpression, node, op, id)
			total += opN + idN
			continue
		}

		break
	}

	return node, total, nil
}

func (p *postfixChain) memberOp(src *parsec.Source) (*parsec.Node, int, error) {
	if n, c, err := p.dotOp.Parse(src); n != nil || err != nil {
		return n, c, err
	}
	return p.arrowOp.Parse(src)
}

// ternaryOf lets an array index accept a full expression (the index grammar
// position needs the whole chain, not just a primary); it is patched in by
// NewGrammar once the ternary tier exists, avoiding a forward reference to
// an as-yet-unconstructed value at postfixChain construction time.
func (p *postfixChain) ternaryOf(src *parsec.Source) (*parsec.Node, int, error) {
	if p.indexExpr == nil {
		return nil, 0, nil
	}
	return p.indexExpr.Parse(src)
}

func (p *postfixChain) Share() parsec.Combinator { p.incr(); return p }
func (p *postfixChain) Release() {
	if p.decr() {
		p.primary.Release()
		if p.expressionList != nil {
			p.expressionList.Release()
		}
		p.lparen.Release()
		p.rparen.Release()
		p.lbracket.Release()
		p.rbracket.Release()
		p.dotOp.Release()
		p.arrowOp.Release()
		p.ident.Release()
	}
}

func (p *postfixChain) name() string { return p.ruleName }

// ---- binary: postfix (op postfix)*, left-associative --------------------

type binaryOp struct {
	just *parsec.Just
	kind parsec.Kind
}

type binaryChain struct {
	chainRefs
	ruleName string
	operand  parsec.Combinator
	ops      []binaryOp
}

// Operators ordered longest-literal-first so overlapping prefixes (e.g. "<",
// "<=", "<<", "<<=") are tried from most to least specific; Fixed() matches
// exact text with no lookahead of its own, so ordering here is load-bearing.
// The comma operator from leg.c's BEXP_LIST is deliberately omitted: this
// grammar uses "," as a hard list separator (parameter/type lists),
// and admitting it as a binary operator here would let an expression being
// parsed inside such a list swallow the separator before the enclosing Opt
// ever sees it.
func newBinaryChain(name string, operand parsec.Combinator) *binaryChain {
	lits := []struct {
		lit  string
		kind parsec.Kind
	}{
		{"<<=", KindShlAssign}, {">>=", KindShrAssign},
		{"+=", KindAddAssign}, {"-=", KindSubAssign}, {"*=", KindMulAssign},
		{"/=", KindDivAssign}, {"%=", KindModAssign}, {"&=", KindAndAssign},
		{"^=", KindXorAssign}, {"|=", KindOrAssign},
		{"<<", KindShl}, {">>", KindShr},
		{"<=", KindLe}, {">=", KindGe}, {"==", KindEq}, {"!=", KindNe},
		{"&&", KindAndAnd}, {"||", KindOrOr},
		{"<", KindLess}, {">", KindGreater},
		{"+", KindPlus}, {"-", KindMinus}, {"*", KindStar}, {"/", KindSlash},
		{"%", KindPercent}, {"&", KindAmp}, {"^", KindCaret}, {"|", KindPipe},
		{"=", KindEquals},
	}
	ops := make([]binaryOp, 0, len(lits))
	for _, l := range lits {
		ops = append(ops, binaryOp{just: marker(l.lit, l.kind), kind: l.kind})
	}
	return &binaryChain{chainRefs: newChainRefs(), ruleName: name, operand: operand, ops: ops}
}

func (b *binaryChain) Parse(src *parsec.Source) (*parsec.Node, int, error) {
	lhs, total, err := b.operand.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	if lhs == nil {
		return nil, 0, nil
	}

	for {
		opNode, opN, matched := (*parsec.Node)(nil), 0, false
		for _, op := range b.ops {
			n, c, err := op.just.Parse(src)
			if err != nil {
				return nil, 0, err
			}
			if n != nil {
				opNode, opN, matched = n, c, true
				break
			}
		}
		if !matched {
			break
		}

		rhs, rhsN, err := b.operand.Parse(src)
		if err != nil {
			return nil, 0, err
		}
		if rhs == nil {
			src.Rewind(opN)
			break
		}

		lhs = parsec.NewComposite(KindBinaryExpression, lhs, opNode, rhs)
		total += opN + rhsN
	}

	return lhs, total, nil
}

func (b *binaryChain) name() string { return b.ruleName }

func (b *binaryChain) Share() parsec.Combinator { b.incr(); return b }
func (b *binaryChain) Release() {
	if b.decr() {
		b.operand.Release()
		for _, op := range b.ops {
			op.just.Release()
		}
	}
}

// ---- ternary: binary ( "?" binary ":" binary )? --------------------------

type ternaryTail struct {
	chainRefs
	ruleName  string
	condition parsec.Combinator
	question  *parsec.Just
	colon     *parsec.Just
}

func newTernaryTail(name string, condition parsec.Combinator) *ternaryTail {
	return &ternaryTail{
		chainRefs: newChainRefs(),
		ruleName:  name,
		condition: condition,
		question:  marker("?", KindQuestion),
		colon:     marker(":", KindColon),
	}
}

func (t *ternaryTail) Parse(src *parsec.Source) (*parsec.Node, int, error) {
	cond, total, err := t.condition.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	if cond == nil {
		return nil, 0, nil
	}

	q, qN, err := t.question.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	if q == nil {
		return cond, total, nil
	}

	then, thenN, err := t.condition.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	if then == nil {
		src.Rewind(qN)
		return cond, total, nil
	}

	c, cN, err := t.colon.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	if c == nil {
		src.Rewind(qN + thenN)
		return cond, total, nil
	}

	els, elsN, err := t.condition.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	if els == nil {
		src.Rewind(qN + thenN + cN)
		return cond, total, nil
	}

	return parsec.NewComposite(KindTernaryExpression, cond, q, then, c, els), total + qN + thenN + cN + elsN, nil
}

func (t *ternaryTail) name() string { return t.ruleName }

func (t *ternaryTail) Share() parsec.Combinator { t.incr(); return t }
func (t *ternaryTail) Release() {
	if t.decr() {
		t.condition.Release()
		t.question.Release()
		t.colon.Release()
	}
}
