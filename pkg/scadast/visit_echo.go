package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// echoAssignVisitor handles echo, assert, and top-level variable
// assignment statements (spec §4.8 "Echo/Assignment Visitor", supplemented
// per SPEC_FULL §12 with assert).
type echoAssignVisitor struct{}

func (echoAssignVisitor) accept(n scadcst.Node, _ string) bool {
	switch n.Kind() {
	case "echo_statement", "assert_statement", "assignment":
		return true
	default:
		return false
	}
}

func (v echoAssignVisitor) visit(n scadcst.Node, _ string, c *compiler) Statement {
	switch n.Kind() {
	case "echo_statement":
		return v.visitEcho(n, c)
	case "assert_statement":
		return v.visitAssert(n, c)
	default:
		return v.visitAssignment(n, c)
	}
}

func (echoAssignVisitor) visitEcho(n scadcst.Node, c *compiler) Statement {
	var args []Argument

	if argsNode, ok := n.ChildByFieldName("arguments"); ok {
		args = c.ex.extractArguments(argsNode, c.ev)
	}

	return Statement{Kind: StmtEcho, Span: spanOf(n), EchoArgs: args}
}

func (echoAssignVisitor) visitAssert(n scadcst.Node, c *compiler) Statement {
	stmt := Statement{Kind: StmtAssert, Span: spanOf(n)}

	if condNode, ok := n.ChildByFieldName("condition"); ok {
		cond := c.ev.evaluate(condNode)
		stmt.AssertCondition = &cond
	}

	if msgNode, ok := n.ChildByFieldName("message"); ok {
		msg := c.ev.evaluate(msgNode)
		stmt.AssertMessage = &msg
	}

	if bodyNode, ok := n.ChildByFieldName("body"); ok {
		stmt.Children = bodyStatements(bodyNode, c)
	}

	return stmt
}

func (echoAssignVisitor) visitAssignment(n scadcst.Node, c *compiler) Statement {
	nameNode, _ := n.ChildByFieldName("name")
	valueNode, _ := n.ChildByFieldName("value")

	value := c.ev.evaluate(valueNode)
	binding := Binding{Name: c.nv.text(nameNode), Value: value}

	return Statement{Kind: StmtAssignment, Span: spanOf(n), Binding: &binding}
}
