package scadcst

import (
	"context"
	"fmt"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	forest "github.com/alexaandru/go-sitter-forest"
	_ "github.com/alexaandru/go-sitter-forest/openscad" // registers the "openscad" grammar with forest
)

// languageID is the go-sitter-forest registration key for the OpenSCAD
// grammar, mirroring how the teacher resolves a language by name in
// DSLParser.initializeLanguage (pkg/uast/parser_dsl.go).
const languageID = "openscad"

// SitterParser wraps a pooled tree-sitter parser bound to the OpenSCAD
// grammar. It is the default Parser implementation; every exported
// constructor in package scadast takes a scadcst.Parser so tests can
// substitute a fake instead of linking the real grammar.
type SitterParser struct {
	lang   sitter.Language
	parser sitter.Parser
}

// NewSitterParser resolves the OpenSCAD grammar via go-sitter-forest and
// prepares a tree-sitter parser for it. It panics-recovers around grammar
// resolution exactly like the teacher does, turning a missing/incompatible
// grammar into a plain error rather than a process crash.
func NewSitterParser() (p *SitterParser, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("resolve grammar %q: %v", languageID, r)
		}
	}()

	lang := forest.GetLanguage(languageID)

	parser := sitter.NewParser()
	if ok := parser.SetLanguage(lang); !ok {
		return nil, fmt.Errorf("set language %q: incompatible ABI", languageID)
	}

	return &SitterParser{lang: lang, parser: parser}, nil
}

// Parse implements Parser.
func (p *SitterParser) Parse(source []byte) (Tree, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	return &sitterTree{tree: tree, source: source}, nil
}

// Close implements Parser.
func (p *SitterParser) Close() {
	p.parser.Close()
}

type sitterTree struct {
	tree   sitter.Tree
	source []byte
}

func (t *sitterTree) RootNode() Node {
	return &sitterNode{node: t.tree.RootNode(), source: t.source}
}

func (t *sitterTree) Close() {
	t.tree.Close()
}

// sitterNode adapts sitter.Node to the scadcst.Node interface. It carries
// the source bytes alongside the node so Text() can slice directly, the
// same pattern as the teacher's DSLNode.extractNodeText.
type sitterNode struct {
	node   sitter.Node
	source []byte
}

func (n *sitterNode) Kind() string { return n.node.Type() }

func (n *sitterNode) IsNull() bool { return n.node.IsNull() }

func (n *sitterNode) StartByte() uint { return n.node.StartByte() }

func (n *sitterNode) EndByte() uint { return n.node.EndByte() }

func (n *sitterNode) StartPoint() Point {
	pt := n.node.StartPoint()
	return Point{Row: pt.Row, Column: pt.Column}
}

func (n *sitterNode) EndPoint() Point {
	pt := n.node.EndPoint()
	return Point{Row: pt.Row, Column: pt.Column}
}

func (n *sitterNode) ChildCount() uint { return n.node.ChildCount() }

func (n *sitterNode) NamedChildCount() uint { return n.node.NamedChildCount() }

func (n *sitterNode) Child(i uint) Node {
	return &sitterNode{node: n.node.Child(i), source: n.source}
}

func (n *sitterNode) NamedChild(i uint) Node {
	return &sitterNode{node: n.node.NamedChild(i), source: n.source}
}

func (n *sitterNode) ChildByFieldName(name string) (Node, bool) {
	child := n.node.ChildByFieldName(name)
	if child.IsNull() {
		return nil, false
	}

	return &sitterNode{node: child, source: n.source}, true
}

func (n *sitterNode) Parent() (Node, bool) {
	parent := n.node.Parent()
	if parent.IsNull() {
		return nil, false
	}

	return &sitterNode{node: parent, source: n.source}, true
}

// Text extracts the node's source slice. The caller-supplied source is
// accepted for interface symmetry with fakes that don't carry their own
// bytes; the sitter-backed node ignores it in favor of the bytes it was
// built from, since a sitter.Node's byte offsets are only valid against
// the exact buffer it was parsed from.
func (n *sitterNode) Text(_ []byte) string {
	start, end := n.node.StartByte(), n.node.EndByte()
	if end > uint(len(n.source)) || start > end {
		return ""
	}

	return string(n.source[start:end])
}
