package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// transformNames is the closed set of built-in modules that wrap a child
// block and apply a single geometric transform to it. translate, rotate,
// scale, mirror, resize, color and multmatrix expose their vector-or-scalar
// operand through one canonical field "v" (spec §9 Open Questions: "no
// vector/scalar alias split"); offset, linear_extrude and rotate_extrude
// use their own named slots (r, height, angle) and have no "v".
var transformNames = map[string][]paramSlot{
	"translate":       {{name: "v", def: VectorValue([]ParameterValue{NumberValue(0), NumberValue(0), NumberValue(0)})}},
	"rotate":          {{name: "v", def: NumberValue(0)}, {name: "axis", def: Undef}},
	"scale":           {{name: "v", def: VectorValue([]ParameterValue{NumberValue(1), NumberValue(1), NumberValue(1)})}},
	"mirror":          {{name: "v", def: Undef}},
	"resize":          {{name: "v", def: Undef}, {name: "auto", def: BoolValue(false)}},
	"color":           {{name: "v", def: Undef}, {name: "alpha", def: NumberValue(1)}},
	"multmatrix":      {{name: "v", def: Undef}},
	"offset":          {{name: "r", aliases: []string{"delta"}, def: NumberValue(0)}, {name: "chamfer", def: BoolValue(false)}},
	"linear_extrude":  {{name: "height", aliases: []string{"h"}, def: NumberValue(1)}, {name: "center", def: BoolValue(false)}, {name: "twist", def: NumberValue(0)}},
	"rotate_extrude":  {{name: "angle", def: NumberValue(360)}},
}

type transformVisitor struct{}

func (transformVisitor) accept(n scadcst.Node, name string) bool {
	if n.Kind() != "module_instantiation" {
		return false
	}

	_, ok := transformNames[name]

	return ok
}

func (transformVisitor) visit(n scadcst.Node, name string, c *compiler) Statement {
	args := c.compileArguments(n)
	params := c.bd.bind(transformNames[name], args)

	return Statement{
		Kind:     StmtTransform,
		Span:     spanOf(n),
		Name:     name,
		Params:   params,
		Args:     args,
		Children: c.compileChildren(n),
	}
}
