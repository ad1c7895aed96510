package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// fakeNode is a hand-built CST node used to exercise the compiler without
// linking the real OpenSCAD tree-sitter grammar, mirroring the teacher's
// own preference for constructing node.Node trees by hand in
// pkg/uast/pkg/node/node_test.go rather than parsing real source in unit
// tests of the tree layer itself.
type fakeNode struct {
	kind     string
	text     string
	fields   map[string]*fakeNode
	named    []*fakeNode
	startRow uint
	startCol uint
	endRow   uint
	endCol   uint
	startB   uint
	endB     uint
}

func leaf(kind, text string) *fakeNode {
	return &fakeNode{kind: kind, text: text, endB: uint(len(text))}
}

func (f *fakeNode) Kind() string  { return f.kind }
func (f *fakeNode) IsNull() bool  { return f == nil }
func (f *fakeNode) StartByte() uint { return f.startB }
func (f *fakeNode) EndByte() uint   { return f.endB }

func (f *fakeNode) StartPoint() scadcst.Point { return scadcst.Point{Row: f.startRow, Column: f.startCol} }
func (f *fakeNode) EndPoint() scadcst.Point   { return scadcst.Point{Row: f.endRow, Column: f.endCol} }

func (f *fakeNode) ChildCount() uint      { return uint(len(f.named)) }
func (f *fakeNode) NamedChildCount() uint { return uint(len(f.named)) }

func (f *fakeNode) Child(i uint) scadcst.Node { return f.named[i] }

func (f *fakeNode) NamedChild(i uint) scadcst.Node { return f.named[i] }

func (f *fakeNode) ChildByFieldName(name string) (scadcst.Node, bool) {
	child, ok := f.fields[name]
	if !ok || child == nil {
		return nil, false
	}

	return child, true
}

func (f *fakeNode) Parent() (scadcst.Node, bool) { return nil, false }

func (f *fakeNode) Text(_ []byte) string { return f.text }

func withField(n *fakeNode, name string, child *fakeNode) *fakeNode {
	if n.fields == nil {
		n.fields = make(map[string]*fakeNode)
	}

	n.fields[name] = child

	return n
}

func withNamed(n *fakeNode, children ...*fakeNode) *fakeNode {
	n.named = append(n.named, children...)
	return n
}

// fakeParser implements scadcst.Parser by returning a pre-built tree,
// ignoring the source bytes entirely — the fakeNode tree already carries
// its own text.
type fakeParser struct {
	root *fakeNode
}

func (p *fakeParser) Parse(_ []byte) (scadcst.Tree, error) {
	return &fakeTree{root: p.root}, nil
}

func (p *fakeParser) Close() {}

type fakeTree struct{ root *fakeNode }

func (t *fakeTree) RootNode() scadcst.Node { return t.root }
func (t *fakeTree) Close()                 {}

// number builds a `number` literal leaf node.
func number(text string) *fakeNode { return leaf("number", text) }

// namedArg builds `name = value` named-argument node.
func namedArg(name string, value *fakeNode) *fakeNode {
	n := &fakeNode{kind: "named_argument"}
	withField(n, "name", leaf("identifier", name))
	withField(n, "value", value)

	return n
}

// moduleCall builds a `name(args...) body?` module_instantiation node.
func moduleCall(name string, args *fakeNode, body *fakeNode) *fakeNode {
	n := &fakeNode{kind: "module_instantiation"}
	withField(n, "name", leaf("identifier", name))

	if args != nil {
		withField(n, "arguments", args)
	}

	if body != nil {
		withField(n, "body", body)
	}

	return n
}

// arguments builds an `arguments` node wrapping the given children.
func arguments(children ...*fakeNode) *fakeNode {
	n := &fakeNode{kind: "arguments"}
	return withNamed(n, children...)
}

// sourceFile builds a `source_file` root wrapping top-level statements.
func sourceFile(children ...*fakeNode) *fakeNode {
	n := &fakeNode{kind: "source_file"}
	return withNamed(n, children...)
}

// block builds a `{ ... }` block node.
func block(children ...*fakeNode) *fakeNode {
	n := &fakeNode{kind: "block"}
	return withNamed(n, children...)
}

// vectorExpr builds a `[a, b, c]` vector_expression node.
func vectorExpr(elems ...*fakeNode) *fakeNode {
	n := &fakeNode{kind: "vector_expression"}
	return withNamed(n, elems...)
}
