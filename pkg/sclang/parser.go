package sclang

import (
	"fmt"
	"io"

	"github.com/g3rrit/muon-lang/pkg/parsec"
)

// ----------------------------------------------------------------------------
// Parser entry point

// Parser is this package's public entry point, following the same
// Parser{reader io.Reader} / NewParser / Parse(...) shape as the teacher's
// pkg/asm, pkg/vm, and pkg/jack parsers. Those three languages split parsing
// from a separate lowering pass (FromSource then FromAST); this language's
// tagged-variant AST is already in the target shape the emitter consumes, so
// there is nothing to lower and Translate drives source straight to sink.
type Parser struct{ reader io.Reader }

// NewParser builds a Parser around any io.Reader (a file, a bytes.Reader in
// tests, anything else that can hand back raw source bytes).
func NewParser(r io.Reader) Parser {
	return Parser{reader: r}
}

// Translate reads the whole program, writes prelude once, then emits one
// translated declaration at a time until end-of-input. prelude is supplied
// by the caller (spec.md §6 treats the macro prelude's literal text, and
// command-line/file handling, as external collaborators this package does
// not own).
func (p *Parser) Translate(sink *parsec.Sink, prelude string) error {
	content, err := io.ReadAll(p.reader)
	if err != nil {
		return fmt.Errorf("cannot read from 'io.Reader': %s", err)
	}

	driver := NewDriver(sink)
	defer driver.Release()

	driver.EmitPrelude(prelude)
	return driver.Run(parsec.NewSource(content))
}
