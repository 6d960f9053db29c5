package sclang

import "github.com/g3rrit/muon-lang/pkg/parsec"

// ----------------------------------------------------------------------------
// Composite and marker kinds

// Every tag this grammar mints, minted as parsec.Kind values so they share
// one tag space with the leaf kinds parsec itself owns (parsec.KindIdent and
// friends). See grammar.go for how each of these is produced and emitter.go
// for how each is consumed; the child-index comments here and there must
// stay in lockstep.

const (
	// Markers: punctuation and keywords, retained as positional children.
	KindLBrace   parsec.Kind = "{"
	KindRBrace   parsec.Kind = "}"
	KindLParen   parsec.Kind = "("
	KindRParen   parsec.Kind = ")"
	KindLBracket parsec.Kind = "["
	KindRBracket parsec.Kind = "]"
	KindArrow    parsec.Kind = "->"
	KindColon    parsec.Kind = ":"
	KindSemi     parsec.Kind = ";"
	KindComma    parsec.Kind = ","
	KindEquals   parsec.Kind = "="
	KindStar     parsec.Kind = "*"
	KindExtern   parsec.Kind = "extern"
	KindJmp      parsec.Kind = "jmp"
	KindRet      parsec.Kind = "ret"
	KindDot      parsec.Kind = "."
	KindQuestion parsec.Kind = "?"
	KindSizeof   parsec.Kind = "sizeof"
	KindAmp      parsec.Kind = "&"
	KindBang     parsec.Kind = "!"
	KindTilde    parsec.Kind = "~"
	KindPlus     parsec.Kind = "+"
	KindMinus    parsec.Kind = "-"
	KindSlash    parsec.Kind = "/"
	KindPercent  parsec.Kind = "%"
	KindLess     parsec.Kind = "<"
	KindGreater  parsec.Kind = ">"
	KindLe       parsec.Kind = "<="
	KindGe       parsec.Kind = ">="
	KindEq       parsec.Kind = "=="
	KindNe       parsec.Kind = "!="
	KindAndAnd   parsec.Kind = "&&"
	KindOrOr     parsec.Kind = "||"
	KindPipe     parsec.Kind = "|"
	KindCaret    parsec.Kind = "^"
	KindShl      parsec.Kind = "<<"
	KindShr      parsec.Kind = ">>"
	KindIncOp    parsec.Kind = "++"
	KindDecOp    parsec.Kind = "--"
	KindAddAssign parsec.Kind = "+="
	KindSubAssign parsec.Kind = "-="
	KindMulAssign parsec.Kind = "*="
	KindDivAssign parsec.Kind = "/="
	KindModAssign parsec.Kind = "%="
	KindShlAssign parsec.Kind = "<<="
	KindShrAssign parsec.Kind = ">>="
	KindAndAssign parsec.Kind = "&="
	KindXorAssign parsec.Kind = "^="
	KindOrAssign  parsec.Kind = "|="

	// Types.
	KindIdType     parsec.Kind = "ID_TYPE"     // [id]
	KindPointerType parsec.Kind = "POINTER_TYPE" // [*, type]
	KindFunctionType parsec.Kind = "FUNCTION_TYPE" // [(, type-list, ), ->, type]
	KindArrayType  parsec.Kind = "ARRAY_TYPE"  // [[, type, ;, expression, ]]
	KindTypeList   parsec.Kind = "TYPE_LIST"   // Opt(type, ',', trailing=false)

	// Declarations.
	KindVariable              parsec.Kind = "VARIABLE"               // [id, :, type]
	KindVariableList          parsec.Kind = "VARIABLE_LIST"          // Opt(variable, ';', trailing=true)
	KindVariableDeclaration   parsec.Kind = "VARIABLE_DECLARATION"   // [extern, variable, ;]
	KindVariableDefinition    parsec.Kind = "VARIABLE_DEFINITION"    // [variable, =, expression, ;]
	KindVariableDefinitionList parsec.Kind = "VARIABLE_DEFINITION_LIST" // Opt(variable-definition, none, trailing=false)
	KindParameterList         parsec.Kind = "PARAMETER_LIST"         // Opt(variable, ',', trailing=false)
	KindStructDeclaration     parsec.Kind = "STRUCT_DECLARATION"     // [id, ;]
	KindStruct                parsec.Kind = "STRUCT"                 // [id, {, variable-list, }]
	KindFunctionDeclaration   parsec.Kind = "FUNCTION_DECLARATION"   // [id, function-type, ;]
	KindFunction              parsec.Kind = "FUNCTION"               // [id, (, parameter-list, ), ->, type, variable-definition-list, {, statement-list, }]

	// Statements.
	KindEmptyStatement            parsec.Kind = "EMPTY_STATEMENT"             // [;]
	KindStatementList             parsec.Kind = "STATEMENT_LIST"              // Opt(statement, none, trailing=false)
	KindExpressionStatement       parsec.Kind = "EXPRESSION_STATEMENT"        // [expression, ;]
	KindLabelStatement            parsec.Kind = "LABEL_STATEMENT"             // [id, :]
	KindJumpStatement             parsec.Kind = "JUMP_STATEMENT"              // [jmp, id, ;]
	KindConditionalJumpStatement  parsec.Kind = "CONDITIONAL_JUMP_STATEMENT"  // [jmp, expression, id, ;]
	KindReturnStatement           parsec.Kind = "RETURN_STATEMENT"            // [ret, expression, ;]

	// Expressions — reachable subset (spec.md §4.6).
	KindIntegerExpression    parsec.Kind = "INTEGER_EXPRESSION"
	KindIdentifierExpression parsec.Kind = "IDENTIFIER_EXPRESSION"
	KindStringExpression     parsec.Kind = "STRING_EXPRESSION"
	KindFloatExpression      parsec.Kind = "FLOAT_EXPRESSION"
	KindCallExpression       parsec.Kind = "CALL_EXPRESSION" // [callee, (, expression-list, )]
	KindExpressionList       parsec.Kind = "EXPRESSION_LIST" // Opt(expression, none, trailing=false)

	// Expressions — supplemented from original_source/lang/leg.c's
	// TEXP/SEXP/UEXP/BEXP lists (see DESIGN.md, Open Question (a)).
	KindBracketExpression parsec.Kind = "BRACKET_EXPRESSION" // [(, expression, )]
	KindCastExpression    parsec.Kind = "CAST_EXPRESSION"    // [(, type, ), expression]
	KindSizeofExpression  parsec.Kind = "SIZEOF_EXPRESSION"  // [sizeof, (, type, )]
	KindArrayIndexExpression parsec.Kind = "ARRAY_INDEX_EXPRESSION" // [expression, [, expression, ]]
	KindMemberExpression  parsec.Kind = "MEMBER_EXPRESSION"  // [expression, (. | ->), id]
	KindTernaryExpression parsec.Kind = "TERNARY_EXPRESSION" // [expression, ?, expression, :, expression]
	KindUnaryExpression   parsec.Kind = "UNARY_EXPRESSION"   // [op, expression]
	KindBinaryExpression  parsec.Kind = "BINARY_EXPRESSION"  // [expression, op, expression]
)
