package sclang

import (
	"fmt"
	"os"

	"github.com/g3rrit/muon-lang/pkg/parsec"
)

// ----------------------------------------------------------------------------
// Driver (C8)

// Driver ties the grammar (C6) and the emitter (C7) together into the
// parse-dispatch-emit loop: repeatedly parse one top-level declaration out
// of Root, dispatch it to the emitter, and keep going until Root reports
// end-of-input. This mirrors the teacher's own two-phase pipeline (parse to
// an AST, then walk it) collapsed into one pass, since this language's AST
// needs no further lowering before its own textual form is produced.
type Driver struct {
	grammar *Grammar
	emitter *Emitter
}

// NewDriver builds a fresh combinator graph and wires it to an emitter
// writing through sink.
func NewDriver(sink *parsec.Sink) *Driver {
	return &Driver{grammar: NewGrammar(), emitter: NewEmitter(sink)}
}

// Run drives a single source buffer to completion. It returns the first
// fatal error encountered (spec.md §7 kinds 2 and 3, surfaced here as
// *parsec.ExpectError / *parsec.LexError wrapped for context); a soft
// failure where neither a declaration nor end-of-input matches at the
// current position is reported as a plain error, since nothing else in the
// pipeline can explain why Root gave up.
//
// Setting SCLANG_PRINT_AST prints each top-level node (before emission) to
// stderr, the same debug affordance the teacher's goparsec-based parsers
// offer through PRINT_AST.
func (d *Driver) Run(src *parsec.Source) error {
	printAST := os.Getenv("SCLANG_PRINT_AST") != ""
	debugSink := parsec.NewSink(os.Stderr)

	for {
		node, _, err := d.grammar.Root.Parse(src)
		if err != nil {
			return fmt.Errorf("sclang: %w", err)
		}
		if node == nil {
			return fmt.Errorf("sclang: parse error at byte %d: no declaration, function, or end-of-input matched", src.Pos())
		}

		if printAST {
			parsec.PrettyPrint(node, debugSink)
		}

		if node.Kind == parsec.KindEOF {
			return nil
		}

		d.emitter.EmitDeclaration(node)
	}
}

// EmitPrelude forwards to the underlying emitter; Parser.Translate calls
// this before the first Run so the prelude always precedes every
// declaration (spec.md §4.7 "Prefix").
func (d *Driver) EmitPrelude(prelude string) {
	d.emitter.EmitPrelude(prelude)
}

// Release drops the driver's own hold on the combinator graph. Call once
// after Run returns, success or failure, so a clean run leaves every
// combinator's Refcount at zero (spec.md §8 P6).
func (d *Driver) Release() {
	d.grammar.Root.Release()
}
