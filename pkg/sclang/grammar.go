package sclang

import (
	"github.com/g3rrit/muon-lang/pkg/parsec"
)

// ----------------------------------------------------------------------------
// Grammar wiring (C6)

// Grammar owns the combinator graph built once at startup and shared for the
// lifetime of a Driver (driver.go). Type and Expression are mutually
// recursive (array-type's size is an expression, cast/sizeof-expression
// reference a type), so both are declared as Or shells before anything that
// references them is constructed, then patched with their real Children once
// every dependent rule exists. This mirrors how the teacher's own recursive
// rules (e.g. pkg/jack's expression/term cycle) are wired: declare the
// recursive point first, build around it, close the loop last.
type Grammar struct {
	Type       *parsec.Or
	Expression *parsec.Or
	Statement  *parsec.Or
	Root       *parsec.Or
}

func marker(s string, kind parsec.Kind) *parsec.Just {
	return parsec.NewJust(string(kind), parsec.Fixed(s, kind, true))
}

func keyword(s string, kind parsec.Kind) *parsec.Just {
	return parsec.NewJust(string(kind), parsec.Fixed(s, kind, false))
}

// NewGrammar builds the full combinator graph for a source file (spec.md
// §4.6, extended per DESIGN.md's resolution of Open Question (a): the
// expression grammar is extended rather than the AST tag set restricted, so
// binary, unary, ternary, cast, sizeof, bracket, member, and array-index
// expressions — present in original_source/lang/leg.c's TEXP/SEXP/UEXP/BEXP
// lists but unreachable in the literal spec text — are wired in here.
func NewGrammar() *Grammar {
	g := &Grammar{
		Type:       parsec.NewOr("type"),
		Expression: parsec.NewOr("expression"),
	}

	ident := parsec.NewJust("ident", parsec.Identifier())

	// ---- Type ----------------------------------------------------------

	idType := parsec.NewAnd("id-type", KindIdType, ident.Share())

	pointerType := parsec.NewAnd("pointer-type", KindPointerType,
		marker("*", KindStar), g.Type.Share())

	typeList := parsec.NewOpt("type-list", KindTypeList,
		g.Type.Share(), marker(",", KindComma), false)

	// Once '(' is consumed no other Type alternative can also start there,
	// so everything after it is past the point of no return (spec.md §4.4
	// "Expect ... once the parser is past the point of no return").
	functionType := parsec.NewAnd("function-type", KindFunctionType,
		marker("(", KindLParen), typeList,
		parsec.NewExpect("')' to close a function type's parameter types", marker(")", KindRParen)),
		parsec.NewExpect("'->' before a function type's return type", marker("->", KindArrow)),
		parsec.NewExpect("a return type", g.Type.Share()))

	arrayType := parsec.NewAnd("array-type", KindArrayType,
		marker("[", KindLBracket), g.Type.Share(),
		parsec.NewExpect("';' between an array type's element type and its size", marker(";", KindSemi)),
		parsec.NewExpect("an array size expression", g.Expression.Share()),
		parsec.NewExpect("']' to close an array type", marker("]", KindRBracket)))

	// Tie-break order per spec.md §4.4: array before function before
	// pointer before identifier.
	g.Type.Children = []parsec.Combinator{arrayType, functionType, pointerType, idType}

	// ---- Expression ------------------------------------------------------
	//
	// The reachable literal/call forms from spec.md §4.6 sit at the same
	// "primary" tier as the supplemented bracket/cast/sizeof/unary-prefix
	// forms; call, array-index, and member access are postfix suffixes
	// applied to a primary (grounded on leg.c's parse_pexp/parse_cexp split);
	// binary and ternary operators chain postfix results left-associatively.
	// Call-expression is extended to carry its callee (spec.md §4.7 requires
	// a "head expression" that the literal §4.6 shape `[(, expression-list,
	// )]` omits; leg.c's CALL_EXP is `exp (exp, ...)`) — see DESIGN.md.

	floatExpr := parsec.NewJust("float", parsec.Float())
	integerExpr := parsec.NewJust("integer", parsec.Integer())
	stringExpr := parsec.NewJust("string", parsec.StringLiteral())
	identifierExpr := parsec.NewAnd("identifier-expression", KindIdentifierExpression, ident.Share())

	sizeofExpr := parsec.NewAnd("sizeof-expression", KindSizeofExpression,
		keyword("sizeof", KindSizeof), marker("(", KindLParen), g.Type.Share(), marker(")", KindRParen))

	bracketExpr := parsec.NewAnd("bracket-expression", KindBracketExpression,
		marker("(", KindLParen), g.Expression.Share(), marker(")", KindRParen))

	castExpr := parsec.NewAnd("cast-expression", KindCastExpression,
		marker("(", KindLParen), g.Type.Share(), marker(")", KindRParen), g.Expression.Share())

	unaryOps := []struct {
		lit  string
		kind parsec.Kind
	}{
		{"++", KindIncOp}, {"--", KindDecOp}, {"!", KindBang}, {"~", KindTilde},
		{"&", KindAmp}, {"*", KindStar}, {"+", KindPlus}, {"-", KindMinus},
	}
	unaryAlts := make([]parsec.Combinator, 0, len(unaryOps))
	for _, op := range unaryOps {
		unaryAlts = append(unaryAlts, parsec.NewAnd("unary-expression:"+op.lit, KindUnaryExpression,
			marker(op.lit, op.kind), g.Expression.Share()))
	}
	unaryExpr := parsec.NewOr("unary-expression", unaryAlts...)

	// primary: most specific first. sizeofExpr/castExpr/bracketExpr must be
	// tried before a bare identifier could ever claim "sizeof", and before
	// the unary '*'/'&' forms are tried as a cast's leading '(' would already
	// have been consumed by bracket/cast.
	primary := parsec.NewOr("primary-expression",
		sizeofExpr, castExpr, bracketExpr, unaryExpr,
		floatExpr, integerExpr, stringExpr, identifierExpr)

	postfix := newPostfixChain("postfix-expression", primary)
	binary := newBinaryChain("binary-expression", postfix)
	ternary := newTernaryTail("ternary-expression", binary)
	postfix.indexExpr = ternary // array-index accepts a full expression, not just a primary

	g.Expression.Children = []parsec.Combinator{ternary}

	// ---- Variable / list wrappers --------------------------------------

	variable := parsec.NewAnd("variable", KindVariable,
		ident.Share(), marker(":", KindColon), g.Type.Share())

	variableList := parsec.NewOpt("variable-list", KindVariableList,
		variable.Share(), marker(";", KindSemi), true)

	parameterList := parsec.NewOpt("parameter-list", KindParameterList,
		variable.Share(), marker(",", KindComma), false)

	variableDeclaration := parsec.NewAnd("variable-declaration", KindVariableDeclaration,
		keyword("extern", KindExtern), variable.Share(), marker(";", KindSemi))

	variableDefinition := parsec.NewAnd("variable-definition", KindVariableDefinition,
		variable.Share(), marker("=", KindEquals), g.Expression.Share(), marker(";", KindSemi))

	variableDefinitionList := parsec.NewOpt("variable-definition-list", KindVariableDefinitionList,
		variableDefinition.Share(), nil, false)

	// ---- Structure -------------------------------------------------------

	structDecl := parsec.NewAnd("struct-declaration", KindStructDeclaration,
		ident.Share(), marker(";", KindSemi))

	// Once "id {" is matched no other Root alternative can also produce that
	// prefix, so the member list and closing brace are expected, not merely
	// attempted: a dangling member missing its ';' (scenario 6) is a fatal
	// parse error here rather than a silent fall-through to another
	// alternative.
	structDef := parsec.NewAnd("struct", KindStruct,
		ident.Share(), marker("{", KindLBrace),
		parsec.NewExpect("a ';'-terminated list of struct members", variableList),
		parsec.NewExpect("'}' to close a struct body", marker("}", KindRBrace)))

	// ---- Statement ------------------------------------------------------

	g.Statement = parsec.NewOr("statement")

	emptyStatement := parsec.NewAnd("empty-statement", KindEmptyStatement, marker(";", KindSemi))

	expressionStatement := parsec.NewAnd("expression-statement", KindExpressionStatement,
		g.Expression.Share(), marker(";", KindSemi))

	labelStatement := parsec.NewAnd("label-statement", KindLabelStatement,
		ident.Share(), marker(":", KindColon))

	conditionalJumpStatement := parsec.NewAnd("conditional-jump-statement", KindConditionalJumpStatement,
		keyword("jmp", KindJmp), g.Expression.Share(), ident.Share(), marker(";", KindSemi))

	jumpStatement := parsec.NewAnd("jump-statement", KindJumpStatement,
		keyword("jmp", KindJmp), ident.Share(), marker(";", KindSemi))

	returnStatement := parsec.NewAnd("return-statement", KindReturnStatement,
		keyword("ret", KindRet), g.Expression.Share(), marker(";", KindSemi))

	// conditionalJumpStatement must be tried before jumpStatement: both start
	// with 'jmp', and only the conditional form has an expression between the
	// keyword and the label identifier.
	g.Statement.Children = []parsec.Combinator{
		emptyStatement, conditionalJumpStatement, jumpStatement, returnStatement,
		labelStatement, expressionStatement,
	}

	statementList := parsec.NewOpt("statement-list", KindStatementList, g.Statement.Share(), nil, false)

	// ---- Call-expression argument list (closes the Expression cycle) ----

	expressionList := parsec.NewOpt("expression-list", KindExpressionList, g.Expression.Share(), nil, false)
	postfix.expressionList = expressionList

	// ---- Function ---------------------------------------------------------

	funcDecl := parsec.NewAnd("function-declaration", KindFunctionDeclaration,
		ident.Share(), functionTypeSuffix(g), marker(";", KindSemi))

	function := parsec.NewAnd("function", KindFunction,
		ident.Share(), marker("(", KindLParen), parameterList,
		parsec.NewExpect("')' to close a function's parameter list", marker(")", KindRParen)),
		parsec.NewExpect("'->' before a function's return type", marker("->", KindArrow)),
		parsec.NewExpect("a return type", g.Type.Share()),
		variableDefinitionList, marker("{", KindLBrace), statementList,
		parsec.NewExpect("'}' to close a function body", marker("}", KindRBrace)))

	// ---- Root -------------------------------------------------------------

	g.Root = parsec.NewOr("root",
		structDecl, structDef, variableDefinition, variableDeclaration,
		funcDecl, function, parsec.NewJust("eof", parsec.EndOfInput()))

	// ident, variable, g.Type, g.Expression, and g.Statement are each wired
	// into every one of their parents above via Share(), including what
	// amounts to their first use — so the reference NewJust/NewAnd/NewOr
	// handed back at construction (refcounted.count starting at 1) was
	// never itself passed to a parent and would otherwise never be
	// released. Releasing that local hold once here, now that every real
	// parent already holds its own Share()'d reference, brings each one's
	// count down to exactly its number of parents, so Root's teardown
	// cascade drains all five to zero instead of stranding them at 1
	// (spec.md §8 P6).
	ident.Release()
	variable.Release()
	g.Type.Release()
	g.Expression.Release()
	g.Statement.Release()

	return g
}

// functionTypeSuffix builds the `function-type` shape reused by a bare
// function-declaration (spec.md's Function-declaration is `[id,
// function-type, ;]`, i.e. the same "(type-list) -> type" tail as
// Function-type, not a distinct parameter-list).
func functionTypeSuffix(g *Grammar) parsec.Combinator {
	typeList := parsec.NewOpt("function-declaration:type-list", KindTypeList,
		g.Type.Share(), marker(",", KindComma), false)
	return parsec.NewAnd("function-declaration:function-type", KindFunctionType,
		marker("(", KindLParen), typeList, marker(")", KindRParen),
		marker("->", KindArrow), g.Type.Share())
}
