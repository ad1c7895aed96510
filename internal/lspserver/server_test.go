package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/openscad-lang/scadast/pkg/scadast"
)

func TestLSPPositionConvertsOneBasedToZeroBased(t *testing.T) {
	got := lspPosition(scadast.Position{Line: 3, Column: 5, Byte: 40})
	assert.Equal(t, protocol.Position{Line: 2, Character: 4}, got)
}

func TestLSPPositionClampsLineZero(t *testing.T) {
	got := lspPosition(scadast.Position{Line: 0, Column: 0})
	assert.Equal(t, uint32(0), got.Line)
}

func TestToProtocolDiagnosticMapsErrorSeverity(t *testing.T) {
	d := scadast.Diagnostic{
		Level:   scadast.DiagError,
		Code:    "E-STMT-UNKNOWN",
		Message: "unrecognized statement",
		Span: scadast.Span{
			Start: scadast.Position{Line: 1, Column: 0},
			End:   scadast.Position{Line: 1, Column: 10},
		},
	}

	got := toProtocolDiagnostic(d)
	require.NotNil(t, got.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *got.Severity)
	assert.Contains(t, got.Message, "E-STMT-UNKNOWN")
	assert.Equal(t, uint32(0), got.Range.Start.Line)
}

func TestToProtocolDiagnosticMapsWarningSeverity(t *testing.T) {
	d := scadast.Diagnostic{Level: scadast.DiagWarning, Code: "W-X", Message: "m"}

	got := toProtocolDiagnostic(d)
	require.NotNil(t, got.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *got.Severity)
}

func TestStatementAtLineFindsContainingStatement(t *testing.T) {
	stmts := []scadast.Statement{
		{Kind: scadast.StmtPrimitive, Name: "cube", Span: scadast.Span{
			Start: scadast.Position{Line: 1}, End: scadast.Position{Line: 1},
		}},
		{Kind: scadast.StmtTransform, Name: "translate", Span: scadast.Span{
			Start: scadast.Position{Line: 2}, End: scadast.Position{Line: 4},
		}},
	}

	got := statementAtLine(stmts, 3)
	require.NotNil(t, got)
	assert.Equal(t, "translate", got.Name)
}

func TestStatementAtLineReturnsNilWhenNoMatch(t *testing.T) {
	stmts := []scadast.Statement{
		{Kind: scadast.StmtPrimitive, Span: scadast.Span{Start: scadast.Position{Line: 1}, End: scadast.Position{Line: 1}}},
	}

	assert.Nil(t, statementAtLine(stmts, 99))
}

func TestDocumentStoreSetGetDelete(t *testing.T) {
	ds := NewDocumentStore()

	_, ok := ds.Get("file:///a.scad")
	assert.False(t, ok)

	ds.Set("file:///a.scad", "cube(1);")

	text, ok := ds.Get("file:///a.scad")
	require.True(t, ok)
	assert.Equal(t, "cube(1);", text)

	ds.Delete("file:///a.scad")

	_, ok = ds.Get("file:///a.scad")
	assert.False(t, ok)
}
