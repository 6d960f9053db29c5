package parsec

import (
	"fmt"
	"os"
)

// ----------------------------------------------------------------------------
// Debug feature flags

// Mirrors the teacher's environment-variable debug switches (PARSEC_DEBUG,
// EXPORT_AST, PRINT_AST in the teacher's pkg/jack and pkg/asm parsing.go),
// renamed to this engine's own domain. There is no logging library anywhere
// in the teacher repo; diagnostics are plain fmt.Fprintf to stderr/stdout
// gated by an env var inspected once, and we keep that convention.

var traceEnabled = os.Getenv("SCLANG_TRACE") != ""

// SetTrace overrides the SCLANG_TRACE env var programmatically, used by
// tests that want to exercise the trace path without touching the process
// environment.
func SetTrace(enabled bool) { traceEnabled = enabled }

func traceEnter(name string, pos int) {
	if !traceEnabled || name == "" {
		return
	}
	fmt.Fprintf(os.Stderr, "parsec: -> %s @%d\n", name, pos)
}

func traceExit(name string, matched bool, err error) {
	if !traceEnabled || name == "" {
		return
	}
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "parsec: <- %s FATAL: %v\n", name, err)
	case matched:
		fmt.Fprintf(os.Stderr, "parsec: <- %s matched\n", name)
	default:
		fmt.Fprintf(os.Stderr, "parsec: <- %s failed\n", name)
	}
}

// PrettyPrint writes an indented textual dump of a parsed node tree, the
// same role as the teacher's ast.Prettyprint gated by PRINT_AST.
func PrettyPrint(n *Node, w *Sink) {
	prettyPrint(n, w, 0)
}

func prettyPrint(n *Node, w *Sink, depth int) {
	if n == nil {
		return
	}
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	switch {
	case n.IsComposite():
		w.Writef("%s%s\n", indent, n.Kind)
		for _, c := range n.Children() {
			prettyPrint(c, w, depth+1)
		}
	case n.payload == payloadText:
		w.Writef("%s%s(%q)\n", indent, n.Kind, n.text)
	case n.payload == payloadInt:
		w.Writef("%s%s(%d)\n", indent, n.Kind, n.intVal)
	case n.payload == payloadFloat:
		w.Writef("%s%s(%g)\n", indent, n.Kind, n.floatVal)
	case n.payload == payloadByte:
		w.Writef("%s%s(%q)\n", indent, n.Kind, n.byteVal)
	default:
		w.Writef("%s%s\n", indent, n.Kind)
	}
}
