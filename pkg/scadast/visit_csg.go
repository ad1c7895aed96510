package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// csgNames is the closed set of boolean/combinator operations over a set
// of sibling child statements (spec §4.8 "CSG Visitor").
var csgNames = map[string]bool{
	"union": true, "difference": true, "intersection": true,
	"hull": true, "minkowski": true,
}

type csgVisitor struct{}

func (csgVisitor) accept(n scadcst.Node, name string) bool {
	return n.Kind() == "module_instantiation" && csgNames[name]
}

func (csgVisitor) visit(n scadcst.Node, name string, c *compiler) Statement {
	return Statement{
		Kind:     StmtCSG,
		Span:     spanOf(n),
		Name:     name,
		Args:     c.compileArguments(n),
		Children: c.compileChildren(n),
	}
}
