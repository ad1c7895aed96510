package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// controlVisitor handles if/else, for, and intersection_for — the control
// structures of spec §4.8 that are distinct grammar productions, not
// module calls, so they dispatch on CST kind rather than callee name.
type controlVisitor struct{}

func (controlVisitor) accept(n scadcst.Node, _ string) bool {
	switch n.Kind() {
	case "if_statement", "for_statement", "intersection_for_statement":
		return true
	default:
		return false
	}
}

func (v controlVisitor) visit(n scadcst.Node, _ string, c *compiler) Statement {
	switch n.Kind() {
	case "if_statement":
		return v.visitIf(n, c)
	case "for_statement":
		return v.visitFor(n, c, StmtForLoop)
	default:
		return v.visitFor(n, c, StmtIntersect)
	}
}

func (controlVisitor) visitIf(n scadcst.Node, c *compiler) Statement {
	condNode, _ := n.ChildByFieldName("condition")
	cond := c.ev.evaluate(condNode)

	stmt := Statement{
		Kind:      StmtIf,
		Span:      spanOf(n),
		Condition: &cond,
	}

	if thenNode, ok := n.ChildByFieldName("consequence"); ok {
		stmt.Then = bodyStatements(thenNode, c)
	}

	if elseNode, ok := n.ChildByFieldName("alternative"); ok {
		stmt.Else = bodyStatements(elseNode, c)
	}

	return stmt
}

func (controlVisitor) visitFor(n scadcst.Node, c *compiler, kind StatementKind) Statement {
	genNode, hasGen := n.ChildByFieldName("generators")

	stmt := Statement{Kind: kind, Span: spanOf(n)}
	if hasGen {
		stmt.Generators = c.ev.evaluateForClauses(genNode)
	}

	if bodyNode, ok := n.ChildByFieldName("body"); ok {
		stmt.Body = bodyStatements(bodyNode, c)
	}

	return stmt
}

// bodyStatements compiles a control-structure body that may be a `{ ... }`
// block or a single bare statement.
func bodyStatements(n scadcst.Node, c *compiler) []Statement {
	if n.Kind() == "block" {
		return c.compileStatements(n)
	}

	return []Statement{c.compileStatement(n)}
}
