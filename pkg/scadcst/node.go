// Package scadcst adapts a concrete tree-sitter CST into the minimal Node
// interface the scadast compiler front-end navigates. It is the single
// import boundary between the OpenSCAD grammar (an external collaborator)
// and the rest of the module.
package scadcst

// Point is a zero-based row/column location inside a source file, matching
// the tree-sitter convention exactly so no translation is needed when
// wrapping sitter.Point values.
type Point struct {
	Row    uint
	Column uint
}

// Node is the read-only view of a CST node the compiler front-end needs.
// It is deliberately narrow: only what the Source Span Mapper, Node
// Navigator, and the extractors use. Keeping it narrow lets tests build
// fake trees without a real grammar.
type Node interface {
	Kind() string
	IsNull() bool
	StartByte() uint
	EndByte() uint
	StartPoint() Point
	EndPoint() Point
	ChildCount() uint
	NamedChildCount() uint
	Child(i uint) Node
	NamedChild(i uint) Node
	ChildByFieldName(name string) (Node, bool)
	Parent() (Node, bool)
	Text(source []byte) string
}

// Tree is the root handle returned by a Parser.Parse call.
type Tree interface {
	RootNode() Node
	Close()
}

// Parser produces a Tree from source bytes. The default implementation
// (NewSitterParser) binds go-tree-sitter-bare against the grammar resolved
// by go-sitter-forest; tests may supply a fake.
type Parser interface {
	Parse(source []byte) (Tree, error)
	Close()
}
