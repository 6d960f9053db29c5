package parsec

import (
	"strconv"
	"strings"
)

// ----------------------------------------------------------------------------
// Leaf parsers

// This section implements C3. Every leaf parser has the signature spec.md
// §4.3 describes, realized in Go as a LeafParser closure: given a Source it
// returns either (node, bytesConsumed, nil) on success, (nil, 0, nil) on an
// ordinary non-match (cursor already restored), or (nil, 0, err) on a fatal
// lexical failure. "Environment" parameterization (spec.md §3's "Just{leaf-
// parser, optional environment}") is just the closure's captured variables
// here — Fixed's literal/tag/isOperator arguments below are the environment,
// the same way goparsec's pc.Atom("class", "CLASS") bakes its two arguments
// into the returned matcher instead of threading an extra environment value.
//
// Every leaf parser calls src.Skip() first and folds those bytes into its
// own consumed count on success; on failure it rewinds the skip too, so the
// cursor is exactly where the caller found it (spec.md §8 P1).

// MaxLexemeLen is the longest identifier, integer, float, or string literal
// the lexer accepts before raising a fatal LexError (spec.md §4.3, §7).
const MaxLexemeLen = 1024

// LeafParser matches (or fails to match) at the current Source position.
type LeafParser func(src *Source) (*Node, int, error)

func isIdentStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_'
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Identifier matches [A-Za-z_][A-Za-z0-9_]*.
func Identifier() LeafParser {
	return func(src *Source) (*Node, int, error) {
		mark := src.Pos()
		src.Skip()

		b, ok := src.Peek()
		if !ok || !isIdentStart(b) {
			src.Rewind(src.Pos() - mark)
			return nil, 0, nil
		}

		var sb strings.Builder
		for {
			b, ok := src.Peek()
			if !ok || !isIdentCont(b) {
				break
			}
			sb.WriteByte(b)
			src.Next()
		}

		if sb.Len() > MaxLexemeLen {
			return nil, 0, &LexError{Reason: "identifier exceeds 1024 bytes", Offset: mark}
		}

		return NewLeafText(KindIdent, sb.String()), src.Pos() - mark, nil
	}
}

// Integer matches a non-empty run of [0-9] that is not immediately followed
// by '.' or 'f' (those belong to Float instead).
func Integer() LeafParser {
	return func(src *Source) (*Node, int, error) {
		mark := src.Pos()
		src.Skip()

		digitsStart := src.Pos()
		for {
			b, ok := src.Peek()
			if !ok || !isDigit(b) {
				break
			}
			src.Next()
		}
		if src.Pos() == digitsStart {
			src.Rewind(src.Pos() - mark)
			return nil, 0, nil
		}

		if b, ok := src.Peek(); ok && (b == '.' || b == 'f') {
			src.Rewind(src.Pos() - mark)
			return nil, 0, nil
		}
		if src.Pos()-digitsStart > MaxLexemeLen {
			return nil, 0, &LexError{Reason: "integer literal exceeds 1024 bytes", Offset: mark}
		}

		text := string(sliceBetween(src, digitsStart, src.Pos()))
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			src.Rewind(src.Pos() - mark)
			return nil, 0, nil
		}
		return NewLeafInt(KindInt, v), src.Pos() - mark, nil
	}
}

// Float matches [0-9]+f or [0-9]+.[0-9]+.
func Float() LeafParser {
	return func(src *Source) (*Node, int, error) {
		mark := src.Pos()
		src.Skip()

		digitsStart := src.Pos()
		for {
			b, ok := src.Peek()
			if !ok || !isDigit(b) {
				break
			}
			src.Next()
		}
		if src.Pos() == digitsStart {
			src.Rewind(src.Pos() - mark)
			return nil, 0, nil
		}

		if b, ok := src.Peek(); ok && b == 'f' {
			text := string(sliceBetween(src, digitsStart, src.Pos()))
			if len(text) > MaxLexemeLen {
				return nil, 0, &LexError{Reason: "float literal exceeds 1024 bytes", Offset: mark}
			}
			src.Next() // consume the 'f' suffix
			v, _ := strconv.ParseFloat(text, 64)
			return NewLeafFloat(KindFloat, v), src.Pos() - mark, nil
		}

		if b, ok := src.Peek(); ok && b == '.' {
			src.Next()
			fracStart := src.Pos()
			for {
				b, ok := src.Peek()
				if !ok || !isDigit(b) {
					break
				}
				src.Next()
			}
			if src.Pos() == fracStart {
				src.Rewind(src.Pos() - mark)
				return nil, 0, nil
			}
			text := string(sliceBetween(src, digitsStart, src.Pos()))
			if len(text) > MaxLexemeLen {
				return nil, 0, &LexError{Reason: "float literal exceeds 1024 bytes", Offset: mark}
			}
			v, _ := strconv.ParseFloat(text, 64)
			return NewLeafFloat(KindFloat, v), src.Pos() - mark, nil
		}

		src.Rewind(src.Pos() - mark)
		return nil, 0, nil
	}
}

var charEscapes = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', '\'': '\'', '\\': '\\',
}

// CharLiteral matches 'x' or '\e' where e is one of n t r ' \.
func CharLiteral() LeafParser {
	return func(src *Source) (*Node, int, error) {
		mark := src.Pos()
		src.Skip()

		open, ok := src.Peek()
		if !ok || open != '\'' {
			src.Rewind(src.Pos() - mark)
			return nil, 0, nil
		}
		src.Next()

		b, ok := src.Next()
		if !ok {
			return nil, 0, &LexError{Reason: "unterminated character literal", Offset: mark}
		}

		var value byte
		if b == '\\' {
			esc, ok := src.Next()
			if !ok {
				return nil, 0, &LexError{Reason: "unterminated character literal", Offset: mark}
			}
			decoded, known := charEscapes[esc]
			if !known {
				return nil, 0, &LexError{Reason: "unknown character escape", Offset: mark}
			}
			value = decoded
		} else {
			value = b
		}

		closeB, ok := src.Next()
		if !ok || closeB != '\'' {
			return nil, 0, &LexError{Reason: "unterminated character literal", Offset: mark}
		}

		return NewLeafByte(KindChar, value), src.Pos() - mark, nil
	}
}

// StringLiteral matches "..." where bytes are in [32,126] and '\"' does not
// terminate the string.
func StringLiteral() LeafParser {
	return func(src *Source) (*Node, int, error) {
		mark := src.Pos()
		src.Skip()

		open, ok := src.Peek()
		if !ok || open != '"' {
			src.Rewind(src.Pos() - mark)
			return nil, 0, nil
		}
		src.Next()

		var sb strings.Builder
		for {
			b, ok := src.Next()
			if !ok {
				return nil, 0, &LexError{Reason: "unterminated string literal", Offset: mark}
			}
			if b == '"' {
				break
			}
			if b == '\\' {
				esc, ok := src.Next()
				if !ok {
					return nil, 0, &LexError{Reason: "unterminated string literal", Offset: mark}
				}
				if esc != '"' {
					return nil, 0, &LexError{Reason: "unknown string escape", Offset: mark}
				}
				sb.WriteByte('"')
				continue
			}
			if b < 32 || b > 126 {
				return nil, 0, &LexError{Reason: "invalid byte inside string literal", Offset: mark}
			}
			sb.WriteByte(b)
			if sb.Len() > MaxLexemeLen {
				return nil, 0, &LexError{Reason: "string literal exceeds 1024 bytes", Offset: mark}
			}
		}

		return NewLeafText(KindString, sb.String()), src.Pos() - mark, nil
	}
}

// Fixed matches the literal text s, producing a payload-less marker node
// tagged kind. When isOperator is false (s is a keyword, not punctuation)
// the byte immediately following s must not be an identifier-continuation
// character, so "ret" doesn't match the start of "return_value".
func Fixed(s string, kind Kind, isOperator bool) LeafParser {
	return func(src *Source) (*Node, int, error) {
		mark := src.Pos()
		src.Skip()

		for i := 0; i < len(s); i++ {
			b, ok := src.Next()
			if !ok || b != s[i] {
				src.Rewind(src.Pos() - mark)
				return nil, 0, nil
			}
		}

		if !isOperator {
			if next, ok := src.Peek(); ok && isIdentCont(next) {
				src.Rewind(src.Pos() - mark)
				return nil, 0, nil
			}
		}

		return NewMarker(kind), src.Pos() - mark, nil
	}
}

// EndOfInput succeeds only once Next would yield the end-of-input sentinel.
func EndOfInput() LeafParser {
	return func(src *Source) (*Node, int, error) {
		mark := src.Pos()
		src.Skip()
		if !src.AtEOF() {
			src.Rewind(src.Pos() - mark)
			return nil, 0, nil
		}
		return NewMarker(KindEOF), src.Pos() - mark, nil
	}
}

// sliceBetween re-reads already-consumed bytes out of the source for
// numeric-literal parsing; both endpoints lie behind the current cursor.
func sliceBetween(src *Source, from, to int) []byte {
	out := make([]byte, 0, to-from)
	for i := from; i < to; i++ {
		b, _ := src.PeekAt(i - src.Pos())
		out = append(out, b)
	}
	return out
}
