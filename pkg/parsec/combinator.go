package parsec

import (
	"fmt"
	"strings"
)

// ----------------------------------------------------------------------------
// Combinator engine

// This section implements C4: single-threaded recursive evaluation over the
// combinator graph, with exact backtracking. Every Combinator.Parse shares
// the one return convention used throughout this package: (node, consumed,
// err). node != nil means success; node == nil && err == nil means an
// ordinary soft failure with the Source already restored to call entry
// (spec.md §8 P1); err != nil means a fatal failure that must propagate all
// the way out to the driver (C8) without further backtracking.
//
// The grammar in package sclang is a graph, not a tree (the expression rule
// recurses into itself, and the type and expression rules reference each
// other). Combinators are therefore
// shared by reference, the way goparsec's package-level 'var' combinators
// are referenced from multiple And/OrdChoice calls. spec.md §3 invariant 3
// and §8 P6 ask for that sharing to be modeled explicitly with reference
// counts rather than left entirely to the Go garbage collector, so every
// combinator embeds a tiny manual refcount: Share() registers one more
// parent link (call it every time the same combinator value is wired into
// a second parent), and Release() unwinds it, freeing the combinator's own
// hold on its children once nothing references it anymore. The driver
// releases the root once after the final EOF so a clean run always leaves
// every node at a zero count (P6); see sclang/driver.go.

// Combinator is one node of the parser-combinator graph.
type Combinator interface {
	// Parse attempts a match at the Source's current position.
	Parse(src *Source) (*Node, int, error)
	// Share adds one more parent reference to this combinator and returns
	// it, so it can be wired into more than one parent without duplicating
	// the graph.
	Share() Combinator
	// Release drops one parent reference. At zero it releases this
	// combinator's own references to its children in turn.
	Release()
	// Refcount exposes the live count for testing (P6). It is
	// part of the exported interface (rather than package-private) so that
	// grammar-wiring code outside this package can build its own Combinator
	// implementations, the way sclang's expression-climbing helpers do (see
	// sclang/climb.go).
	Refcount() int32
}

type refCounted struct{ count int32 }

func newRefCounted() refCounted { return refCounted{count: 1} }

func (r *refCounted) incr() { r.count++ }

// decr drops one reference and reports whether it just reached zero.
func (r *refCounted) decr() bool {
	r.count--
	if r.count < 0 {
		panic("parsec: combinator released more times than shared")
	}
	return r.count == 0
}

func (r *refCounted) Refcount() int32 { return r.count }

// ----------------------------------------------------------------------------
// Just

// Just wraps a single leaf parser (spec.md §4.4).
type Just struct {
	refCounted
	Name string
	Leaf LeafParser
}

// NewJust builds a Just combinator around a leaf parser. name is used for
// tracing (see trace.go) and in the alternative list of an ExpectError.
func NewJust(name string, leaf LeafParser) *Just {
	return &Just{refCounted: newRefCounted(), Name: name, Leaf: leaf}
}

func (j *Just) Parse(src *Source) (*Node, int, error) {
	traceEnter(j.Name, src.Pos())
	node, n, err := j.Leaf(src)
	traceExit(j.Name, node != nil, err)
	return node, n, err
}

func (j *Just) Share() Combinator { j.incr(); return j }
func (j *Just) Release() {
	j.decr() // no children to cascade into
}

func (j *Just) name() string { return j.Name }

// ----------------------------------------------------------------------------
// Or

// Or tries its children in declared order and commits to the first match
// (spec.md §4.4: "Or commits to the first matching alternative"). It does
// not produce a node of its own; it simply forwards the winning child's
// result. If every child fails without a fatal error, Or reports the
// attempted alternative names so an enclosing Expect can produce a useful
// diagnostic.
type Or struct {
	refCounted
	Name     string
	Children []Combinator
}

// NewOr builds an Or combinator over children tried in order.
func NewOr(name string, children ...Combinator) *Or {
	return &Or{refCounted: newRefCounted(), Name: name, Children: children}
}

func (o *Or) Parse(src *Source) (*Node, int, error) {
	traceEnter(o.Name, src.Pos())
	for _, child := range o.Children {
		node, n, err := child.Parse(src)
		if err != nil {
			traceExit(o.Name, false, err)
			return nil, 0, err
		}
		if node != nil {
			traceExit(o.Name, true, nil)
			return node, n, nil
		}
	}
	traceExit(o.Name, false, nil)
	return nil, 0, nil
}

func (o *Or) Share() Combinator { o.incr(); return o }
func (o *Or) Release() {
	if o.decr() {
		for _, c := range o.Children {
			c.Release()
		}
	}
}

// alternatives returns the tracing names of this Or's children, in
// declared order, used to build a richer ExpectError description when
// every alternative failed.
func (o *Or) alternatives() string {
	var labels []string
	for _, c := range o.Children {
		if named, ok := c.(interface{ name() string }); ok {
			labels = append(labels, named.name())
		}
	}
	return strings.Join(labels, " | ")
}

func (o *Or) name() string { return o.Name }

// ----------------------------------------------------------------------------
// And

// And tries every child in order; any child failure rewinds everything this
// And consumed so far and fails the whole And (spec.md §4.4, §8 P2). On full
// success it produces one composite node tagged Tag whose children are the
// successes in order.
type And struct {
	refCounted
	Name     string
	Tag      Kind
	Children []Combinator
}

// NewAnd builds an And combinator that commits all children or none.
func NewAnd(name string, tag Kind, children ...Combinator) *And {
	return &And{refCounted: newRefCounted(), Name: name, Tag: tag, Children: children}
}

func (a *And) Parse(src *Source) (*Node, int, error) {
	traceEnter(a.Name, src.Pos())
	collected := make([]*Node, 0, len(a.Children))
	total := 0

	for _, child := range a.Children {
		node, n, err := child.Parse(src)
		if err != nil {
			traceExit(a.Name, false, err)
			return nil, 0, err
		}
		if node == nil {
			src.Rewind(total)
			traceExit(a.Name, false, nil)
			return nil, 0, nil
		}
		collected = append(collected, node)
		total += n
	}

	traceExit(a.Name, true, nil)
	return NewComposite(a.Tag, collected...), total, nil
}

func (a *And) Share() Combinator { a.incr(); return a }
func (a *And) Release() {
	if a.decr() {
		for _, c := range a.Children {
			c.Release()
		}
	}
}

func (a *And) name() string { return a.Name }

// ----------------------------------------------------------------------------
// Opt

// Opt repeatedly parses Element, optionally interleaved with Separator, and
// always produces a composite tagged Tag (spec.md §4.4, §8 P3). See
// combinator_test.go's TestOptShapes for cases covering the two
// TrailingRequired modes; in short:
//   - TrailingRequired == false: "elem (sep elem)*", no trailing separator
//     ever survives — consuming a separator commits this invocation to one
//     more element, and failing to find one aborts (rewinds) the whole Opt.
//   - TrailingRequired == true: "(elem sep)*" — every matched element must
//     immediately be followed by a separator, missing one aborts the whole
//     Opt; but failing to match the next element (the normal way to end the
//     sequence) is always a clean, successful stop.
// In both modes the empty sequence is a valid, non-aborting result.
type Opt struct {
	refCounted
	Name             string
	Tag              Kind
	Element          Combinator
	Separator        Combinator // nil: no separator management at all (plain Kleene star)
	TrailingRequired bool
}

// NewOpt builds an Opt combinator. Pass a nil separator for a bare
// zero-or-more repetition of Element with no interleaved token.
func NewOpt(name string, tag Kind, element Combinator, separator Combinator, trailingRequired bool) *Opt {
	return &Opt{
		refCounted:       newRefCounted(),
		Name:             name,
		Tag:              tag,
		Element:          element,
		Separator:        separator,
		TrailingRequired: trailingRequired,
	}
}

func (o *Opt) Parse(src *Source) (*Node, int, error) {
	traceEnter(o.Name, src.Pos())
	var children []*Node
	total := 0
	mustMatchElement := false

	for {
		node, n, err := o.Element.Parse(src)
		if err != nil {
			traceExit(o.Name, false, err)
			return nil, 0, err
		}
		if node == nil {
			if mustMatchElement {
				src.Rewind(total)
				traceExit(o.Name, false, nil)
				return nil, 0, nil
			}
			break
		}
		children = append(children, node)
		total += n
		mustMatchElement = false

		if o.Separator == nil {
			continue
		}

		sepNode, sepN, sepErr := o.Separator.Parse(src)
		if sepErr != nil {
			traceExit(o.Name, false, sepErr)
			return nil, 0, sepErr
		}
		if sepNode == nil {
			if o.TrailingRequired {
				src.Rewind(total)
				traceExit(o.Name, false, nil)
				return nil, 0, nil
			}
			break
		}
		children = append(children, sepNode)
		total += sepN
		mustMatchElement = !o.TrailingRequired
	}

	traceExit(o.Name, true, nil)
	return NewComposite(o.Tag, children...), total, nil
}

func (o *Opt) Share() Combinator { o.incr(); return o }
func (o *Opt) Release() {
	if o.decr() {
		o.Element.Release()
		if o.Separator != nil {
			o.Separator.Release()
		}
	}
}

func (o *Opt) name() string { return o.Name }

// ----------------------------------------------------------------------------
// Expect

// Expect converts a soft failure past the point of no return into a fatal
// ExpectError (spec.md §4.4, §7 kind 2).
type Expect struct {
	refCounted
	Description string
	Child       Combinator
}

// NewExpect builds an Expect combinator; description is surfaced in the
// resulting ExpectError, followed by the names of the tried alternatives
// when the child is an Or.
func NewExpect(description string, child Combinator) *Expect {
	return &Expect{refCounted: newRefCounted(), Description: description, Child: child}
}

func (e *Expect) Parse(src *Source) (*Node, int, error) {
	node, n, err := e.Child.Parse(src)
	if err != nil {
		return nil, 0, err
	}
	if node == nil {
		detail := e.Description
		if or, ok := e.Child.(*Or); ok {
			if alts := or.alternatives(); alts != "" {
				detail = fmt.Sprintf("%s (tried: %s)", detail, alts)
			}
		}
		return nil, 0, &ExpectError{Description: detail, Offset: src.Pos()}
	}
	return node, n, nil
}

func (e *Expect) Share() Combinator { e.incr(); return e }
func (e *Expect) Release() {
	if e.decr() {
		e.Child.Release()
	}
}

func (e *Expect) name() string { return "expect:" + e.Description }
