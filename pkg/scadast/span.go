package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// spanOf converts a scadcst.Node's CST coordinates into a Span, the single
// conversion point between 0-based tree-sitter points/offsets and the
// 1-based line/column positions exposed on every AST node (spec §3
// "Source Location"). Grounded on the teacher's DSLNode.extractPositions
// (pkg/uast/parser_dsl.go), which performs the identical +1 translation.
func spanOf(n scadcst.Node) Span {
	start := n.StartPoint()
	end := n.EndPoint()

	return Span{
		Start: Position{Line: start.Row + 1, Column: start.Column + 1, Byte: n.StartByte()},
		End:   Position{Line: end.Row + 1, Column: end.Column + 1, Byte: n.EndByte()},
	}
}

// spanBounds accumulates the bounding span across a set of children when no
// single CST node covers them directly (e.g. synthesizing a parent span
// from a statement list). Grounded on the teacher's positionBounds struct
// (pkg/uast/parser_dsl.go: computeChildrenSpan).
type spanBounds struct {
	found bool
	min   Position
	max   Position
}

func (b *spanBounds) update(s Span) {
	if !b.found {
		b.min, b.max, b.found = s.Start, s.End, true
		return
	}

	if before(s.Start, b.min) {
		b.min = s.Start
	}

	if before(b.max, s.End) {
		b.max = s.End
	}
}

func (b *spanBounds) toSpan() Span {
	if !b.found {
		return Span{}
	}

	return Span{Start: b.min, End: b.max}
}

func before(a, b Position) bool {
	if a.Byte != b.Byte {
		return a.Byte < b.Byte
	}

	return false
}

// navigator is the Node Navigator (spec §4.2): a thin walk/lookup layer
// over scadcst.Node that drills through anonymous wrapper nodes (the
// single-named-child passthrough productions a grammar emits for things
// like `expression -> primary_expression -> ...`), so every other
// component only ever sees semantically meaningful node kinds.
type navigator struct {
	source []byte
}

// unwrap follows a chain of single-named-child wrapper nodes down to the
// first node that either has zero or more than one named child, or whose
// kind is in stopKinds. This generalizes the teacher's single-child unwrap
// pattern in parser_dsl.go's rule resolution (spec §9 "wrapper-node
// drilling").
func (nv *navigator) unwrap(n scadcst.Node, stopKinds map[string]bool) scadcst.Node {
	for {
		if n == nil || n.IsNull() {
			return n
		}

		if stopKinds[n.Kind()] {
			return n
		}

		if n.NamedChildCount() != 1 {
			return n
		}

		child := n.NamedChild(0)
		if child == nil || child.IsNull() {
			return n
		}

		n = child
	}
}

// namedChildren returns every named child of n, in order.
func (nv *navigator) namedChildren(n scadcst.Node) []scadcst.Node {
	count := n.NamedChildCount()
	out := make([]scadcst.Node, 0, count)

	for i := uint(0); i < count; i++ {
		out = append(out, n.NamedChild(i))
	}

	return out
}

// text returns n's source text.
func (nv *navigator) text(n scadcst.Node) string {
	return n.Text(nv.source)
}
