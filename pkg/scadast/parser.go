package scadast

import (
	"fmt"

	"github.com/openscad-lang/scadast/pkg/scadcst"
)

// Parser is the single entry point described in spec §6: Parse compiles a
// full OpenSCAD source unit; ParseExpression compiles a single standalone
// expression (used by LSP hover/evaluate-style requests). A Parser is not
// safe for concurrent use — each concurrent parse must use its own
// instance (spec §5), since each call owns exactly one compiler bound to
// that call's source bytes.
type Parser struct {
	cst scadcst.Parser
}

// NewParser builds a Parser bound to the real OpenSCAD tree-sitter
// grammar. Callers that need to parse without linking the grammar (tests,
// or environments where it's unavailable) should use NewParserWithCST.
func NewParser() (*Parser, error) {
	sp, err := scadcst.NewSitterParser()
	if err != nil {
		return nil, fmt.Errorf("build scadast parser: %w", err)
	}

	return &Parser{cst: sp}, nil
}

// NewParserWithCST builds a Parser over a caller-supplied scadcst.Parser,
// letting tests substitute a fake CST without touching the real grammar.
func NewParserWithCST(cst scadcst.Parser) *Parser {
	return &Parser{cst: cst}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p.cst != nil {
		p.cst.Close()
	}
}

// Parse compiles a full OpenSCAD source unit into a File: a statement list
// plus every diagnostic collected along the way. It never returns an
// error for malformed OpenSCAD — malformed input becomes ErrorNode
// statements and Diagnostic entries (spec §7); the returned error is
// reserved for the CST collaborator itself failing (e.g. a parser-internal
// panic recovered elsewhere, or I/O if a caller routes one in).
func (p *Parser) Parse(source []byte) (*File, error) {
	tree, err := p.cst.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	defer tree.Close()

	c := newCompiler(source)
	root := tree.RootNode()

	statements := c.compileStatements(root)

	return &File{Statements: statements, Diagnostics: c.ds.Items()}, nil
}

// ParseExpression compiles a single standalone expression, as used by
// editor hover/evaluate requests rather than a full document parse
// (spec §6). The source must contain exactly one expression; if the CST
// root does not reduce to one, the first statement-shaped child is used
// and the rest are reported as a diagnostic.
func (p *Parser) ParseExpression(source []byte) (*ExpressionNode, []Diagnostic, error) {
	tree, err := p.cst.Parse(source)
	if err != nil {
		return nil, nil, fmt.Errorf("parse expression: %w", err)
	}
	defer tree.Close()

	c := newCompiler(source)
	root := tree.RootNode()

	target := root
	if root.NamedChildCount() > 0 {
		target = root.NamedChild(0)

		if root.NamedChildCount() > 1 {
			c.ds.add(DiagWarning, "E-EXPR-TRAILING", "extra content after expression ignored", spanOf(root))
		}
	}

	expr := c.ev.evaluate(target)

	return &expr, c.ds.Items(), nil
}
