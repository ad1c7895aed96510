package scadast

import (
	"github.com/openscad-lang/scadast/pkg/scadcst"
)

// wrapperKinds are CST node kinds the navigator should never unwrap past —
// every other single-named-child node is treated as a transparent grammar
// wrapper and drilled through.
var wrapperKinds = map[string]bool{
	"number": true, "string": true, "true": true, "false": true, "undef": true,
	"identifier": true, "special_variable": true,
	"unary_expression": true, "binary_expression": true, "ternary_expression": true,
	"index_expression": true, "call_expression": true, "let_expression": true,
	"each_expression": true, "list_comprehension": true,
	"vector_expression": true, "range_expression": true,
	"assignment": true, "named_argument": true,
}

// evaluator implements the Expression Evaluator (spec §4.6): converts an
// expression-shaped CST subtree into an ExpressionNode tree. It never
// executes OpenSCAD semantics — variables are never resolved, functions
// are never called — it only classifies and structures syntax, folding a
// literal node directly into ExprLiteral when the Value Extractor
// recognizes it.
type evaluator struct {
	nv  *navigator
	ex  *extractor
	ds  *Diagnostics
}

// evaluate dispatches on the (unwrapped) CST node kind and returns the
// corresponding ExpressionNode. Unrecognized kinds become ExprError nodes
// carrying a stable code and a bounded source excerpt (spec §7), so a
// single malformed expression never aborts the surrounding parse.
func (ev *evaluator) evaluate(n scadcst.Node) ExpressionNode {
	n = ev.nv.unwrap(n, wrapperKinds)
	span := spanOf(n)

	if v, ok := ev.ex.extractValue(n); ok {
		return ExpressionNode{Kind: ExprLiteral, Span: span, Literal: v}
	}

	switch n.Kind() {
	case "identifier", "special_variable":
		return ExpressionNode{Kind: ExprIdentifier, Span: span, Name: ev.nv.text(n)}

	case "vector_expression":
		if v, ok := ev.ex.extractVector(n); ok {
			return ExpressionNode{Kind: ExprLiteral, Span: span, Literal: v}
		}

		children := ev.nv.namedChildren(n)
		elems := make([]ExpressionNode, 0, len(children))

		for _, c := range children {
			elems = append(elems, ev.evaluate(c))
		}

		return ExpressionNode{Kind: ExprVector, Span: span, Elements: elems}

	case "range_expression":
		return ev.evaluateRange(n, span)

	case "unary_expression":
		opNode, _ := n.ChildByFieldName("operator")
		operandNode, _ := n.ChildByFieldName("operand")
		operand := ev.evaluate(operandNode)

		return ExpressionNode{Kind: ExprUnary, Span: span, Op: ev.nv.text(opNode), Operand: &operand}

	case "binary_expression":
		opNode, _ := n.ChildByFieldName("operator")
		leftNode, _ := n.ChildByFieldName("left")
		rightNode, _ := n.ChildByFieldName("right")
		left := ev.evaluate(leftNode)
		right := ev.evaluate(rightNode)

		return ExpressionNode{Kind: ExprBinary, Span: span, Op: ev.nv.text(opNode), Left: &left, Right: &right}

	case "ternary_expression":
		condNode, _ := n.ChildByFieldName("condition")
		thenNode, _ := n.ChildByFieldName("consequence")
		elseNode, _ := n.ChildByFieldName("alternative")
		cond := ev.evaluate(condNode)
		then := ev.evaluate(thenNode)
		els := ev.evaluate(elseNode)

		return ExpressionNode{Kind: ExprTernary, Span: span, Condition: &cond, Then: &then, Else: &els}

	case "index_expression":
		targetNode, _ := n.ChildByFieldName("target")
		indexNode, _ := n.ChildByFieldName("index")
		target := ev.evaluate(targetNode)
		index := ev.evaluate(indexNode)

		return ExpressionNode{Kind: ExprIndex, Span: span, Target: &target, Index: &index}

	case "call_expression":
		nameNode, _ := n.ChildByFieldName("name")
		argsNode, hasArgs := n.ChildByFieldName("arguments")

		var args []Argument
		if hasArgs {
			args = ev.ex.extractArguments(argsNode, ev)
		}

		return ExpressionNode{Kind: ExprCall, Span: span, Callee: ev.nv.text(nameNode), Arguments: args}

	case "let_expression":
		return ev.evaluateLet(n, span)

	case "each_expression":
		valNode, _ := n.ChildByFieldName("value")
		val := ev.evaluate(valNode)

		return ExpressionNode{Kind: ExprEach, Span: span, EachValue: &val}

	case "list_comprehension":
		return ev.evaluateListComprehension(n, span)

	default:
		ev.ds.add(DiagWarning, "E-EXPR-UNKNOWN", "unrecognized expression syntax", span)

		return ExpressionNode{
			Kind:         ExprError,
			Span:         span,
			ErrorCode:    "E-EXPR-UNKNOWN",
			ErrorExcerpt: truncateExcerpt(ev.nv.text(n)),
		}
	}
}

func (ev *evaluator) evaluateRange(n scadcst.Node, span Span) ExpressionNode {
	fromNode, _ := n.ChildByFieldName("from")
	stepNode, hasStep := n.ChildByFieldName("step")
	toNode, _ := n.ChildByFieldName("to")

	from := ev.evaluate(fromNode)
	to := ev.evaluate(toNode)
	out := ExpressionNode{Kind: ExprRange, Span: span, RangeFrom: &from, RangeTo: &to}

	if hasStep {
		step := ev.evaluate(stepNode)
		out.RangeStep = &step
	}

	return out
}

func (ev *evaluator) evaluateLet(n scadcst.Node, span Span) ExpressionNode {
	bindingsNode, hasBindings := n.ChildByFieldName("bindings")
	bodyNode, _ := n.ChildByFieldName("body")

	var bindings []Binding
	if hasBindings {
		bindings = ev.evaluateBindings(bindingsNode)
	}

	body := ev.evaluate(bodyNode)

	return ExpressionNode{Kind: ExprLet, Span: span, LetBindings: bindings, LetBody: &body}
}

func (ev *evaluator) evaluateBindings(n scadcst.Node) []Binding {
	children := ev.nv.namedChildren(n)
	out := make([]Binding, 0, len(children))

	for _, c := range children {
		nameNode, _ := c.ChildByFieldName("name")
		valueNode, _ := c.ChildByFieldName("value")
		out = append(out, Binding{Name: ev.nv.text(nameNode), Value: ev.evaluate(valueNode)})
	}

	return out
}

func (ev *evaluator) evaluateListComprehension(n scadcst.Node, span Span) ExpressionNode {
	genNode, hasGen := n.ChildByFieldName("generators")
	condNode, hasCond := n.ChildByFieldName("condition")
	bodyNode, _ := n.ChildByFieldName("body")

	out := ExpressionNode{Kind: ExprListComp, Span: span}

	if hasGen {
		out.Generators = ev.evaluateForClauses(genNode)
	}

	if hasCond {
		c := ev.evaluate(condNode)
		out.ListCond = &c
	}

	body := ev.evaluate(bodyNode)
	out.ListBody = &body

	return out
}

func (ev *evaluator) evaluateForClauses(n scadcst.Node) []ForClause {
	children := ev.nv.namedChildren(n)
	out := make([]ForClause, 0, len(children))

	for _, c := range children {
		nameNode, _ := c.ChildByFieldName("name")
		rangeNode, _ := c.ChildByFieldName("range")
		out = append(out, ForClause{Name: ev.nv.text(nameNode), Range: ev.evaluate(rangeNode)})
	}

	return out
}
