// Package scadast implements the OpenSCAD CST-to-AST compiler front-end:
// a pure, synchronous, allocation-light translation from a tree-sitter CST
// into a typed AST plus a sequence of recoverable diagnostics. No component
// in this package executes OpenSCAD semantics, generates geometry, or
// performs file I/O.
package scadast

import "fmt"

// Position is a single point in source text. Line and Column are 1-based;
// Byte is the 0-based byte offset, matching the teacher's node.Positions
// convention (pkg/uast/pkg/node/node.go NewPositions).
type Position struct {
	Line   uint `json:"line"`
	Column uint `json:"column"`
	Byte   uint `json:"byte"`
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// ParameterValueKind tags the closed union of literal argument values a
// Value Extractor can produce.
type ParameterValueKind int

const (
	ParamUndef ParameterValueKind = iota
	ParamBool
	ParamNumber
	ParamString
	ParamVector
	ParamRange
)

// ParameterValue is the tagged union described in spec §3 "Parameter
// Value": at most one of the typed fields is meaningful, selected by Kind.
type ParameterValue struct {
	Kind   ParameterValueKind `json:"kind"`
	Bool   bool               `json:"bool,omitempty"`
	Number float64            `json:"number,omitempty"`
	String string             `json:"string,omitempty"`
	Vector []ParameterValue   `json:"vector,omitempty"`
	Range  *RangeValue        `json:"range,omitempty"`
}

// RangeValue is OpenSCAD's `[from:to]` / `[from:step:to]` literal.
type RangeValue struct {
	From float64  `json:"from"`
	Step *float64 `json:"step,omitempty"`
	To   float64  `json:"to"`
}

// Undef is the canonical undef value.
var Undef = ParameterValue{Kind: ParamUndef}

// NumberValue constructs a ParamNumber value.
func NumberValue(n float64) ParameterValue { return ParameterValue{Kind: ParamNumber, Number: n} }

// BoolValue constructs a ParamBool value.
func BoolValue(b bool) ParameterValue { return ParameterValue{Kind: ParamBool, Bool: b} }

// StringValue constructs a ParamString value.
func StringValue(s string) ParameterValue { return ParameterValue{Kind: ParamString, String: s} }

// VectorValue constructs a ParamVector value.
func VectorValue(v []ParameterValue) ParameterValue {
	return ParameterValue{Kind: ParamVector, Vector: v}
}

// ExpressionKind tags the closed union of expression AST node kinds.
type ExpressionKind string

const (
	ExprLiteral         ExpressionKind = "Literal"
	ExprIdentifier      ExpressionKind = "Identifier"
	ExprVector          ExpressionKind = "Vector"
	ExprRange           ExpressionKind = "Range"
	ExprUnary           ExpressionKind = "Unary"
	ExprBinary          ExpressionKind = "Binary"
	ExprTernary         ExpressionKind = "Ternary"
	ExprIndex           ExpressionKind = "Index"
	ExprCall            ExpressionKind = "Call"
	ExprLet             ExpressionKind = "Let"
	ExprEach            ExpressionKind = "Each"
	ExprListComp        ExpressionKind = "ListComprehension"
	ExprError           ExpressionKind = "ExpressionError"
)

// ExpressionNode is the closed tagged union from spec §3 "Expression Node".
// Only the fields relevant to Kind are populated; zero-value fields for
// other kinds are ignored by consumers (spec §3 invariant: "a node's
// irrelevant fields are always zero-valued, never used as a secondary
// signal").
type ExpressionNode struct {
	Kind ExpressionKind `json:"kind"`
	Span Span           `json:"span"`

	// ExprLiteral
	Literal ParameterValue `json:"literal,omitempty"`

	// ExprIdentifier
	Name string `json:"name,omitempty"`

	// ExprVector
	Elements []ExpressionNode `json:"elements,omitempty"`

	// ExprRange
	RangeFrom *ExpressionNode `json:"rangeFrom,omitempty"`
	RangeStep *ExpressionNode `json:"rangeStep,omitempty"`
	RangeTo   *ExpressionNode `json:"rangeTo,omitempty"`

	// ExprUnary
	Op       string          `json:"op,omitempty"`
	Operand  *ExpressionNode `json:"operand,omitempty"`

	// ExprBinary
	Left  *ExpressionNode `json:"left,omitempty"`
	Right *ExpressionNode `json:"right,omitempty"`

	// ExprTernary
	Condition *ExpressionNode `json:"condition,omitempty"`
	Then      *ExpressionNode `json:"then,omitempty"`
	Else      *ExpressionNode `json:"else,omitempty"`

	// ExprIndex
	Target *ExpressionNode `json:"target,omitempty"`
	Index  *ExpressionNode `json:"index,omitempty"`

	// ExprCall
	Callee    string           `json:"callee,omitempty"`
	Arguments []Argument       `json:"arguments,omitempty"`

	// ExprLet
	LetBindings []Binding       `json:"letBindings,omitempty"`
	LetBody     *ExpressionNode `json:"letBody,omitempty"`

	// ExprEach
	EachValue *ExpressionNode `json:"eachValue,omitempty"`

	// ExprListComp
	Generators []ForClause     `json:"generators,omitempty"`
	ListCond   *ExpressionNode `json:"listCond,omitempty"`
	ListBody   *ExpressionNode `json:"listBody,omitempty"`

	// ExprError
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorExcerpt string `json:"errorExcerpt,omitempty"`
}

// Argument is a single call argument: either positional (Name == "") or
// named. Built by the Argument Extractor (spec §4.5).
type Argument struct {
	Name  string         `json:"name,omitempty"`
	Value ExpressionNode `json:"value"`
}

// Binding is a single `name = expr` pair, shared by let-expressions,
// assignment statements, and for-clause variable bindings.
type Binding struct {
	Name  string         `json:"name"`
	Value ExpressionNode `json:"value"`
}

// ForClause is one `var = range-or-list` generator clause of a for-loop
// statement or a list comprehension.
type ForClause struct {
	Name  string         `json:"name"`
	Range ExpressionNode `json:"range"`
}

// StatementKind tags the closed union of AST statement node kinds.
type StatementKind string

const (
	StmtPrimitive   StatementKind = "Primitive"
	StmtTransform   StatementKind = "Transform"
	StmtCSG         StatementKind = "CSG"
	StmtIf          StatementKind = "If"
	StmtForLoop     StatementKind = "ForLoop"
	StmtIntersect   StatementKind = "IntersectionForLoop"
	StmtModuleDef   StatementKind = "ModuleDefinition"
	StmtFunctionDef StatementKind = "FunctionDefinition"
	StmtModuleCall  StatementKind = "ModuleCall"
	StmtAssignment  StatementKind = "Assignment"
	StmtEcho        StatementKind = "Echo"
	StmtAssert      StatementKind = "Assert"
	StmtDirective   StatementKind = "Directive"
	StmtError       StatementKind = "ErrorNode"
)

// maxErrorExcerpt bounds ErrorNode.Excerpt per spec §7.
const maxErrorExcerpt = 80

// Statement is the closed tagged union from spec §3 "AST Statement Node",
// supplemented with Assert and Directive (SPEC_FULL §12).
type Statement struct {
	Kind StatementKind `json:"kind"`
	Span Span          `json:"span"`

	// StmtPrimitive: Name is one of cube/sphere/cylinder/polygon/polyhedron/...
	// StmtTransform: Name is one of translate/rotate/scale/mirror/color/...
	// StmtCSG: Name is one of union/difference/intersection/hull/minkowski
	// StmtModuleCall: Name is the called module's identifier.
	Name string `json:"name,omitempty"`

	// Params holds the bound, typed parameter values (spec §4.7 output),
	// keyed by the primitive/transform/module's declared parameter names.
	Params map[string]ParameterValue `json:"params,omitempty"`

	// Args holds the raw, unbound call arguments — always populated,
	// independent of whether binding succeeded.
	Args []Argument `json:"args,omitempty"`

	// Children holds nested statements: transform/CSG operands, module
	// call children blocks, loop/if bodies.
	Children []Statement `json:"children,omitempty"`

	// StmtIf
	Condition *ExpressionNode `json:"condition,omitempty"`
	Then      []Statement     `json:"then,omitempty"`
	Else      []Statement     `json:"else,omitempty"`

	// StmtForLoop / StmtIntersect
	Generators []ForClause `json:"generators,omitempty"`

	// StmtModuleDef / StmtFunctionDef
	Parameters []ParameterDecl `json:"parameters,omitempty"`
	Body       []Statement     `json:"body,omitempty"`
	Expr       *ExpressionNode `json:"expr,omitempty"` // function body expression

	// StmtAssignment
	Binding *Binding `json:"binding,omitempty"`

	// StmtEcho
	EchoArgs []Argument `json:"echoArgs,omitempty"`

	// StmtAssert
	AssertCondition *ExpressionNode `json:"assertCondition,omitempty"`
	AssertMessage   *ExpressionNode `json:"assertMessage,omitempty"`

	// StmtDirective
	DirectiveKind string `json:"directiveKind,omitempty"` // "use" | "include"
	Path          string `json:"path,omitempty"`

	// StmtError
	ErrorCode string `json:"errorCode,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
}

// truncateExcerpt clips s to maxErrorExcerpt runes for ErrorNode.Excerpt,
// per spec §7.
func truncateExcerpt(s string) string {
	r := []rune(s)
	if len(r) <= maxErrorExcerpt {
		return s
	}

	return string(r[:maxErrorExcerpt])
}

// ParameterDecl is one declared module/function parameter, with an
// optional default expression (unevaluated — evaluation only happens
// against the caller's actual arguments at bind time).
type ParameterDecl struct {
	Name    string          `json:"name"`
	Default *ExpressionNode `json:"default,omitempty"`
}

// DiagnosticLevel classifies a Diagnostic's severity. All diagnostics are
// advisory: none of them stop parsing (spec §7).
type DiagnosticLevel string

const (
	DiagWarning DiagnosticLevel = "warning"
	DiagError   DiagnosticLevel = "error"
)

// Diagnostic is one recoverable problem observed during parsing, appended
// in source order to File.Diagnostics.
type Diagnostic struct {
	Level DiagnosticLevel `json:"level"`
	Code  string          `json:"code"`
	Message string        `json:"message"`
	Span  Span            `json:"span"`
}

// File is the result of parsing one OpenSCAD source unit: the statement
// list plus every diagnostic collected along the way.
type File struct {
	Statements  []Statement  `json:"statements"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}
