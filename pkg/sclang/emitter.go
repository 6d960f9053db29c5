package sclang

import "github.com/g3rrit/muon-lang/pkg/parsec"

// ----------------------------------------------------------------------------
// Emitter (C7)

// Emitter is the tag-dispatched recursive tree walk that turns a parsed
// top-level declaration into target-language text. Every composite's child
// order is fixed by grammar.go (see the per-Kind comments in kind.go), so
// every method here indexes into Children() by position rather than
// searching — the same contract goparsec's Queryable tree gives its own
// walkers, just expressed over this package's own uniform Node instead.
type Emitter struct {
	sink *parsec.Sink
}

// NewEmitter wraps a Sink; the caller is responsible for writing the macro
// prelude before the first call to EmitDeclaration (spec.md §4.7 "Prefix").
func NewEmitter(sink *parsec.Sink) *Emitter {
	return &Emitter{sink: sink}
}

// EmitPrelude writes the caller-supplied macro prelude verbatim, once,
// before any declaration.
func (e *Emitter) EmitPrelude(prelude string) {
	e.sink.WriteString(prelude)
}

// EmitDeclaration dispatches a top-level node (anything the root combinator
// can produce besides end-of-input) to its emit routine.
func (e *Emitter) EmitDeclaration(n *parsec.Node) {
	switch n.Kind {
	case KindStructDeclaration:
		e.emitStructDeclaration(n)
	case KindStruct:
		e.emitStruct(n)
	case KindVariableDeclaration:
		e.emitVariableDeclaration(n)
	case KindVariableDefinition:
		e.emitVariableDefinition(n)
	case KindFunctionDeclaration:
		e.emitFunctionDeclaration(n)
	case KindFunction:
		e.emitFunction(n)
	default:
		panic("sclang: emitter received an unexpected top-level tag " + string(n.Kind))
	}
}

// ---- Types: head/tail declarator split -------------------------------

// emitTypeHead writes the part of a type that goes before the declared
// identifier; emitTypeTail writes the part that goes after. Splitting into
// two passes is what lets a single type value reproduce the target
// language's pointer/array/function declarator syntax (spec.md §9 "Two-pass
// type emission"), grounded on leg.c's type_emit_head/type_emit_tail split.
func (e *Emitter) emitTypeHead(n *parsec.Node) {
	children := n.Children()
	switch n.Kind {
	case KindIdType:
		e.sink.Writef("%s", children[0].Text())
	case KindPointerType:
		e.emitTypeHead(children[1])
		e.sink.WriteString(" *")
	case KindArrayType:
		e.emitTypeHead(children[1])
	case KindFunctionType:
		e.emitTypeHead(children[4])
		e.sink.WriteString("(*")
	default:
		panic("sclang: emitTypeHead on a non-type node " + string(n.Kind))
	}
}

func (e *Emitter) emitTypeTail(n *parsec.Node) {
	children := n.Children()
	switch n.Kind {
	case KindIdType:
		// nothing
	case KindPointerType:
		e.emitTypeTail(children[1])
	case KindArrayType:
		e.emitTypeTail(children[1])
		e.sink.WriteString("[")
		e.emitExpression(children[3])
		e.sink.WriteString("]")
	case KindFunctionType:
		e.sink.WriteString(")(")
		e.emitTypeListCommaSeparated(children[1])
		e.sink.WriteString(")")
		e.emitTypeTail(children[4])
	default:
		panic("sclang: emitTypeTail on a non-type node " + string(n.Kind))
	}
}

func (e *Emitter) emitType(n *parsec.Node) {
	e.emitTypeHead(n)
	e.emitTypeTail(n)
}

// emitTypeListCommaSeparated emits a TYPE_LIST's own types (skipping the
// retained comma markers) comma-separated.
func (e *Emitter) emitTypeListCommaSeparated(typeList *parsec.Node) {
	first := true
	for _, c := range typeList.Children() {
		if c.Kind == KindComma {
			continue
		}
		if !first {
			e.sink.WriteString(", ")
		}
		first = false
		e.emitType(c)
	}
}

// ---- Variable ---------------------------------------------------------

// emitVariable writes head(type), space, id, space, tail(type) (spec.md
// §4.7 "Variable").
func (e *Emitter) emitVariable(n *parsec.Node) {
	children := n.Children() // [id, :, type]
	typ := children[2]
	e.emitTypeHead(typ)
	e.sink.WriteString(" ")
	e.sink.WriteString(children[0].Text())
	e.sink.WriteString(" ")
	e.emitTypeTail(typ)
}

// ---- Structure ----------------------------------------------------------

func (e *Emitter) emitStructDeclaration(n *parsec.Node) {
	children := n.Children() // [id, ;]
	id := children[0].Text()
	e.sink.Writef("typedef struct %s %s;\n", id, id)
}

func (e *Emitter) emitStruct(n *parsec.Node) {
	children := n.Children() // [id, {, variable-list, }]
	id := children[0].Text()
	e.sink.Writef("typedef struct %s %s;\n", id, id)
	e.sink.Writef("typedef struct %s {\n", id)
	for _, member := range children[2].Children() {
		if member.Kind == KindSemi {
			continue
		}
		e.emitVariable(member)
		e.sink.WriteLine(";")
	}
	e.sink.Writef("} %s;\n", id)
}

// ---- Declarations / definitions -----------------------------------------

func (e *Emitter) emitVariableDeclaration(n *parsec.Node) {
	children := n.Children() // [extern, variable, ;]
	e.emitVariable(children[1])
	e.sink.WriteLine(";")
}

func (e *Emitter) emitVariableDefinition(n *parsec.Node) {
	children := n.Children() // [variable, =, expression, ;]
	e.emitVariable(children[0])
	e.sink.WriteString("= ")
	e.emitExpression(children[2])
	e.sink.WriteLine(" ;")
}

func (e *Emitter) emitFunctionDeclaration(n *parsec.Node) {
	children := n.Children() // [id, function-type, ;]
	funcType := children[1]
	ftChildren := funcType.Children() // [(, type-list, ), ->, type]
	e.emitTypeHead(ftChildren[4])
	e.sink.Writef(" %s(", children[0].Text())
	e.emitTypeListCommaSeparated(ftChildren[1])
	e.sink.WriteString(")")
	e.emitTypeTail(ftChildren[4])
	e.sink.WriteLine(";")
}

func (e *Emitter) emitFunction(n *parsec.Node) {
	// [id, (, parameter-list, ), ->, type, variable-definition-list, {, statement-list, }]
	children := n.Children()
	returnType := children[5]
	e.emitTypeHead(returnType)
	e.sink.Writef(" %s(", children[0].Text())
	first := true
	for _, param := range children[2].Children() {
		if param.Kind == KindComma {
			continue
		}
		if !first {
			e.sink.WriteString(", ")
		}
		first = false
		e.emitVariable(param)
	}
	e.sink.WriteString(")")
	e.emitTypeTail(returnType)
	e.sink.WriteLine(" {")
	for _, localDef := range children[6].Children() {
		e.emitVariableDefinition(localDef)
	}
	for _, stmt := range children[8].Children() {
		e.emitStatement(stmt)
	}
	e.sink.WriteLine("}")
}

// ---- Statements -----------------------------------------------------------

func (e *Emitter) emitStatement(n *parsec.Node) {
	switch n.Kind {
	case KindEmptyStatement:
		// emits nothing
	case KindExpressionStatement:
		children := n.Children() // [expression, ;]
		e.emitExpression(children[0])
		e.sink.WriteLine(" ;")
	case KindLabelStatement:
		children := n.Children() // [id, :]
		e.sink.Writef("%s :\n", children[0].Text())
	case KindJumpStatement:
		children := n.Children() // [jmp, id, ;]
		e.sink.Writef("goto %s;\n", children[1].Text())
	case KindConditionalJumpStatement:
		children := n.Children() // [jmp, expression, id, ;]
		e.sink.WriteString("if (")
		e.emitExpression(children[1])
		e.sink.Writef(") goto %s;\n", children[2].Text())
	case KindReturnStatement:
		children := n.Children() // [ret, expression, ;]
		e.sink.WriteString("return ")
		e.emitExpression(children[1])
		e.sink.WriteLine(" ;")
	default:
		panic("sclang: emitStatement on a non-statement node " + string(n.Kind))
	}
}

// ---- Expressions ------------------------------------------------------

// emitExpression covers both the reachable literal/call forms spec.md §4.7
// documents verbatim and the supplemented forms from DESIGN.md's resolution
// of Open Question (a). climb.go's binary/unary/ternary chains carry no
// precedence of their own (a single flat left-associative tier; see
// newBinaryChain's comment), so those three forms each wrap their own output
// in one layer of parentheses on emission — leg.c's exp_emit takes the same
// approach, forcing evaluation order explicitly rather than encoding
// precedence in either the grammar or the emitter.
func (e *Emitter) emitExpression(n *parsec.Node) {
	switch n.Kind {
	case parsec.KindInt:
		e.sink.Writef("%d", n.Int())
	case parsec.KindFloat:
		e.sink.Writef("%g", n.Float())
	case parsec.KindString:
		e.sink.Writef("%q", n.Text())
	case KindIdentifierExpression:
		e.sink.WriteString(n.Children()[0].Text())
	case KindCallExpression:
		e.emitCallExpression(n)
	case KindBracketExpression:
		e.sink.WriteString("(")
		e.emitExpression(n.Children()[1])
		e.sink.WriteString(")")
	case KindCastExpression:
		children := n.Children() // [(, type, ), expression]
		e.sink.WriteString("(")
		e.emitType(children[1])
		e.sink.WriteString(")")
		e.emitExpression(children[3])
	case KindSizeofExpression:
		children := n.Children() // [sizeof, (, type, )]
		e.sink.WriteString("sizeof(")
		e.emitType(children[2])
		e.sink.WriteString(")")
	case KindArrayIndexExpression:
		children := n.Children() // [expression, [, expression, ]]
		e.emitExpression(children[0])
		e.sink.WriteString("[")
		e.emitExpression(children[2])
		e.sink.WriteString("]")
	case KindMemberExpression:
		children := n.Children() // [expression, (. | ->), id]
		e.emitExpression(children[0])
		e.sink.WriteString(markerText(children[1].Kind))
		e.sink.WriteString(children[2].Text())
	case KindTernaryExpression:
		children := n.Children() // [cond, ?, then, :, else]
		e.sink.WriteString("(")
		e.emitExpression(children[0])
		e.sink.WriteString(" ? ")
		e.emitExpression(children[2])
		e.sink.WriteString(" : ")
		e.emitExpression(children[4])
		e.sink.WriteString(")")
	case KindUnaryExpression:
		children := n.Children() // [op, expression]
		e.sink.WriteString("(")
		e.sink.WriteString(markerText(children[0].Kind))
		e.emitExpression(children[1])
		e.sink.WriteString(")")
	case KindBinaryExpression:
		children := n.Children() // [lhs, op, rhs]
		e.sink.WriteString("(")
		e.emitExpression(children[0])
		e.sink.Writef(" %s ", markerText(children[1].Kind))
		e.emitExpression(children[2])
		e.sink.WriteString(")")
	default:
		panic("sclang: emitExpression on a non-expression node " + string(n.Kind))
	}
}

func (e *Emitter) emitCallExpression(n *parsec.Node) {
	children := n.Children() // [callee, (, expression-list, )]
	e.emitExpression(children[0])
	e.sink.WriteString("(")
	first := true
	for _, arg := range children[2].Children() {
		if !first {
			e.sink.WriteString(", ")
		}
		first = false
		e.emitExpression(arg)
	}
	e.sink.WriteString(")")
}

// markerText returns the literal punctuation/operator text for a marker
// Kind, used when an operator itself must be re-emitted (binary/unary/member
// expressions carry the operator as a Kind-tagged marker node, not a text
// leaf, so there is nothing to call .Text() on).
func markerText(k parsec.Kind) string { return string(k) }
