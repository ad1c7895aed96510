package scadast

import "github.com/openscad-lang/scadast/pkg/scadcst"

// moduleFunctionVisitor handles module/function definitions and — as the
// catch-all fallback for any module_instantiation not claimed by a more
// specific visitor — user-defined module calls (spec §4.8 "Module/
// Function Visitor"). It sits after Primitive/Transform/CSG/Control in
// the fixed dispatch order so built-ins are never shadowed by a
// user-defined module of the same name.
type moduleFunctionVisitor struct{}

func (moduleFunctionVisitor) accept(n scadcst.Node, _ string) bool {
	switch n.Kind() {
	case "module_definition", "function_definition", "module_instantiation":
		return true
	default:
		return false
	}
}

func (v moduleFunctionVisitor) visit(n scadcst.Node, name string, c *compiler) Statement {
	switch n.Kind() {
	case "module_definition":
		return v.visitModuleDef(n, c)
	case "function_definition":
		return v.visitFunctionDef(n, c)
	default:
		return Statement{
			Kind:     StmtModuleCall,
			Span:     spanOf(n),
			Name:     name,
			Args:     c.compileArguments(n),
			Children: c.compileChildren(n),
		}
	}
}

func (moduleFunctionVisitor) visitModuleDef(n scadcst.Node, c *compiler) Statement {
	nameNode, _ := n.ChildByFieldName("name")

	stmt := Statement{Kind: StmtModuleDef, Span: spanOf(n), Name: c.nv.text(nameNode)}

	if paramsNode, ok := n.ChildByFieldName("parameters"); ok {
		stmt.Parameters = compileParameterDecls(paramsNode, c)
	}

	if bodyNode, ok := n.ChildByFieldName("body"); ok {
		stmt.Body = bodyStatements(bodyNode, c)
	}

	return stmt
}

func (moduleFunctionVisitor) visitFunctionDef(n scadcst.Node, c *compiler) Statement {
	nameNode, _ := n.ChildByFieldName("name")

	stmt := Statement{Kind: StmtFunctionDef, Span: spanOf(n), Name: c.nv.text(nameNode)}

	if paramsNode, ok := n.ChildByFieldName("parameters"); ok {
		stmt.Parameters = compileParameterDecls(paramsNode, c)
	}

	if bodyNode, ok := n.ChildByFieldName("body"); ok {
		expr := c.ev.evaluate(bodyNode)
		stmt.Expr = &expr
	}

	return stmt
}

// compileParameterDecls reads a module/function's declared parameter list,
// each either a bare identifier or an `identifier = default_expression`
// pair.
func compileParameterDecls(n scadcst.Node, c *compiler) []ParameterDecl {
	children := c.nv.namedChildren(n)
	out := make([]ParameterDecl, 0, len(children))

	for _, child := range children {
		if child.Kind() == "assignment" || child.Kind() == "parameter_default" {
			nameNode, _ := child.ChildByFieldName("name")
			valueNode, hasValue := child.ChildByFieldName("value")

			decl := ParameterDecl{Name: c.nv.text(nameNode)}
			if hasValue {
				expr := c.ev.evaluate(valueNode)
				decl.Default = &expr
			}

			out = append(out, decl)

			continue
		}

		out = append(out, ParameterDecl{Name: c.nv.text(child)})
	}

	return out
}
