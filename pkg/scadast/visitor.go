package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// statementVisitor is implemented by each specialized visitor in the
// Visitor Framework (spec §4.8). accept reports whether this visitor
// claims the given CST node (by module_instantiation name or statement
// kind); visit performs the translation. The Composite Orchestrator tries
// each visitor in a fixed priority order and takes the first that accepts:
// [Primitive, Transform, CSG, ControlStructure, ModuleFunction,
// EchoAssignment]. A node no visitor accepts goes to directiveOrError.
type statementVisitor interface {
	accept(n scadcst.Node, name string) bool
	visit(n scadcst.Node, name string, c *compiler) Statement
}

// compiler is the Composite Orchestrator (spec §4.9): it owns the shared
// navigator/extractor/evaluator/binder instances and the fixed-priority
// visitor chain, and is the single place that turns a CST statement node
// into an AST Statement. One compiler instance per parse; never reused
// across concurrent parses (spec §5).
type compiler struct {
	nv       *navigator
	ex       *extractor
	ev       *evaluator
	bd       *binder
	ds       *Diagnostics
	visitors []statementVisitor
}

func newCompiler(source []byte) *compiler {
	nv := &navigator{source: source}
	ds := &Diagnostics{}
	ex := &extractor{nv: nv}
	ev := &evaluator{nv: nv, ex: ex, ds: ds}
	bd := &binder{ds: ds}

	c := &compiler{nv: nv, ex: ex, ev: ev, bd: bd, ds: ds}
	c.visitors = []statementVisitor{
		primitiveVisitor{},
		transformVisitor{},
		csgVisitor{},
		controlVisitor{},
		moduleFunctionVisitor{},
		echoAssignVisitor{},
	}

	return c
}

// statementWrapperKinds are the CST kinds at which the navigator stops
// drilling before dispatch: a bare `statement` production typically wraps
// exactly one of the concrete statement kinds below.
var statementWrapperKinds = map[string]bool{
	"module_instantiation": true, "if_statement": true, "for_statement": true,
	"intersection_for_statement": true, "module_definition": true,
	"function_definition": true, "assignment": true, "echo_statement": true,
	"assert_statement": true, "use_statement": true, "include_statement": true,
	"block": true, "source_file": true,
}

// compileStatement dispatches a single CST statement node through the
// fixed-priority visitor chain, falling back to a directive/error node for
// anything unrecognized (spec §7: a single malformed statement becomes an
// ErrorNode rather than aborting the parse).
func (c *compiler) compileStatement(n scadcst.Node) Statement {
	n = c.nv.unwrap(n, statementWrapperKinds)
	name := c.callName(n)

	for _, v := range c.visitors {
		if v.accept(n, name) {
			return v.visit(n, name, c)
		}
	}

	return c.directiveOrError(n)
}

// callName extracts the called identifier from a module_instantiation node,
// or the empty string for non-call statement kinds.
func (c *compiler) callName(n scadcst.Node) string {
	if n.Kind() != "module_instantiation" {
		return ""
	}

	nameNode, ok := n.ChildByFieldName("name")
	if !ok {
		return ""
	}

	return c.nv.text(nameNode)
}

// compileStatements compiles every named child of a block/source_file node
// into a Statement slice, in source order.
func (c *compiler) compileStatements(n scadcst.Node) []Statement {
	children := c.nv.namedChildren(n)
	out := make([]Statement, 0, len(children))

	for _, child := range children {
		out = append(out, c.compileStatement(child))
	}

	return out
}

// compileArguments evaluates a module_instantiation's `arguments` field, or
// returns nil if absent (a bare `cube;` is malformed OpenSCAD but should
// still parse to an empty argument list rather than erroring).
func (c *compiler) compileArguments(n scadcst.Node) []Argument {
	argsNode, ok := n.ChildByFieldName("arguments")
	if !ok {
		return nil
	}

	return c.ex.extractArguments(argsNode, c.ev)
}

// compileChildren compiles a module_instantiation's trailing body: either a
// `{ ... }` block, a single statement, or absent (a bare `;`).
func (c *compiler) compileChildren(n scadcst.Node) []Statement {
	body, ok := n.ChildByFieldName("body")
	if !ok {
		return nil
	}

	if body.Kind() == "block" {
		return c.compileStatements(body)
	}

	return []Statement{c.compileStatement(body)}
}

func (c *compiler) directiveOrError(n scadcst.Node) Statement {
	span := spanOf(n)

	switch n.Kind() {
	case "use_statement", "include_statement":
		pathNode, ok := n.ChildByFieldName("path")
		path := ""

		if ok {
			path = unquote(c.nv.text(pathNode))
		}

		kind := "use"
		if n.Kind() == "include_statement" {
			kind = "include"
		}

		return Statement{Kind: StmtDirective, Span: span, DirectiveKind: kind, Path: path}
	default:
		c.ds.add(DiagError, "E-STMT-UNKNOWN", "unrecognized statement syntax", span)

		return Statement{
			Kind:      StmtError,
			Span:      span,
			ErrorCode: "E-STMT-UNKNOWN",
			Excerpt:   truncateExcerpt(c.nv.text(n)),
		}
	}
}
