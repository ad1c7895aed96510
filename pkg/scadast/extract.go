package scadast

import (
	"strconv"
	"strings"

	"github.com/openscad-lang/scadast/pkg/scadcst"
)

// extractor builds typed literal values and expression trees directly out
// of a CST subtree, grounded on the teacher's text-extraction idioms in
// DSLNode.extractTokenText/extractNodeText (pkg/uast/parser_dsl.go): pull
// the raw source slice, then interpret it according to the CST node kind.
type extractor struct {
	nv *navigator
}

// extractValue implements the Value Extractor (spec §4.3): turns a literal
// CST node (number, string, bool, undef) into a ParameterValue. Non-literal
// nodes return ParamUndef with ok=false so callers can fall back to
// building an ExpressionNode instead.
func (ex *extractor) extractValue(n scadcst.Node) (ParameterValue, bool) {
	switch n.Kind() {
	case "number":
		f, err := strconv.ParseFloat(ex.nv.text(n), 64)
		if err != nil {
			return Undef, false
		}

		return NumberValue(f), true
	case "string":
		return StringValue(unquote(ex.nv.text(n))), true
	case "true":
		return BoolValue(true), true
	case "false":
		return BoolValue(false), true
	case "undef":
		return Undef, true
	default:
		return Undef, false
	}
}

// unquote strips the surrounding double quotes from a string-literal
// token. Escape sequences pass through uninterpreted (spec §9 Open
// Questions: "string escape sequences are not decoded").
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}

	return s
}

// extractVector implements the Vector Extractor (spec §4.4): builds a
// ParamVector from a `vector_expression`-shaped CST node whose elements
// are all themselves literals; returns ok=false if any element is not a
// literal, so the caller falls back to an ExprVector expression node
// instead of a flattened value.
func (ex *extractor) extractVector(n scadcst.Node) (ParameterValue, bool) {
	children := ex.nv.namedChildren(n)
	elems := make([]ParameterValue, 0, len(children))

	for _, c := range children {
		v, ok := ex.extractValue(c)
		if !ok {
			return Undef, false
		}

		elems = append(elems, v)
	}

	return VectorValue(elems), true
}

// extractArguments implements the Argument Extractor (spec §4.5): walks an
// `arguments` CST node's children, each either a bare expression
// (positional) or a `name = expression` pair (named), preserving source
// order in both cases — binding order is resolved later by the Parameter
// Binder, not here.
func (ex *extractor) extractArguments(n scadcst.Node, ev *evaluator) []Argument {
	if n == nil || n.IsNull() {
		return nil
	}

	children := ex.nv.namedChildren(n)
	out := make([]Argument, 0, len(children))

	for _, c := range children {
		if c.Kind() == "assignment" || c.Kind() == "named_argument" {
			nameNode, hasName := c.ChildByFieldName("name")
			valueNode, hasValue := c.ChildByFieldName("value")

			if hasName && hasValue {
				out = append(out, Argument{
					Name:  ex.nv.text(nameNode),
					Value: ev.evaluate(valueNode),
				})

				continue
			}
		}

		out = append(out, Argument{Value: ev.evaluate(c)})
	}

	return out
}
