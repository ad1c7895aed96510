package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// primitiveNames is the closed set of built-in geometry-producing module
// calls that never take a child block — spec §4.8 "Primitive Visitor".
var primitiveNames = map[string][]paramSlot{
	"cube": {
		{name: "size", def: NumberValue(1)},
		{name: "center", def: BoolValue(false)},
	},
	"sphere": {
		{name: "radius", aliases: []string{"r"}, def: NumberValue(1)},
		{name: "diameter", aliases: []string{"d"}, def: Undef},
		{name: "$fn", def: NumberValue(0)},
		{name: "$fa", def: NumberValue(12)},
		{name: "$fs", def: NumberValue(2)},
	},
	"cylinder": {
		{name: "height", aliases: []string{"h"}, def: NumberValue(1)},
		{name: "radius", aliases: []string{"r"}, def: NumberValue(1)},
		{name: "radius1", aliases: []string{"r1"}, def: Undef},
		{name: "radius2", aliases: []string{"r2"}, def: Undef},
		{name: "diameter", aliases: []string{"d"}, def: Undef},
		{name: "diameter1", aliases: []string{"d1"}, def: Undef},
		{name: "diameter2", aliases: []string{"d2"}, def: Undef},
		{name: "center", def: BoolValue(false)},
	},
	"circle": {
		{name: "radius", aliases: []string{"r"}, def: NumberValue(1)},
		{name: "diameter", aliases: []string{"d"}, def: Undef},
	},
	"square": {
		{name: "size", def: NumberValue(1)},
		{name: "center", def: BoolValue(false)},
	},
	"polygon": {
		{name: "points", def: Undef},
		{name: "paths", def: Undef},
	},
	"polyhedron": {
		{name: "points", def: Undef},
		{name: "faces", def: Undef},
	},
	"text": {
		{name: "text", def: StringValue("")},
		{name: "size", def: NumberValue(10)},
		{name: "font", def: StringValue("")},
	},
}

type primitiveVisitor struct{}

func (primitiveVisitor) accept(n scadcst.Node, name string) bool {
	if n.Kind() != "module_instantiation" {
		return false
	}

	_, ok := primitiveNames[name]

	return ok
}

func (primitiveVisitor) visit(n scadcst.Node, name string, c *compiler) Statement {
	args := c.compileArguments(n)
	schema := primitiveNames[name]
	params := c.bd.bind(schema, args)

	names := argNameSet(args)
	switch name {
	case "sphere":
		applyDiameterAlias(params, "radius", "diameter", names)
	case "cylinder":
		applyDiameterAlias(params, "radius", "diameter", names)
		applyDiameterAlias(params, "radius1", "diameter1", names)
		applyDiameterAlias(params, "radius2", "diameter2", names)
	case "circle":
		applyDiameterAlias(params, "radius", "diameter", names)
	}

	return Statement{
		Kind:   StmtPrimitive,
		Span:   spanOf(n),
		Name:   name,
		Params: params,
		Args:   args,
	}
}
