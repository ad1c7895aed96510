package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscad-lang/scadast/pkg/scadast"
)

func TestCollectSourceFilesFindsScadFiles(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.scad"), []byte("cube(1);"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("ignore me"), 0o600))

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.scad"), []byte("sphere(1);"), 0o600))

	hidden := filepath.Join(dir, ".git")
	require.NoError(t, os.Mkdir(hidden, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(hidden, "d.scad"), []byte("cylinder(1);"), 0o600))

	files, err := collectSourceFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestIsHiddenDirIgnoresDotAndDotDot(t *testing.T) {
	assert.False(t, isHiddenDir("."))
	assert.False(t, isHiddenDir(".."))
	assert.True(t, isHiddenDir(".git"))
	assert.False(t, isHiddenDir("src"))
}

func TestOutputFileRejectsUnsupportedFormat(t *testing.T) {
	buf := &fakeWriter{}

	err := outputFile(nil, "", "yaml", buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedParseFmt)
}

type fakeWriter struct {
	data []byte
}

func (w *fakeWriter) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)

	return len(p), nil
}

func TestRenderStatementTableIncludesStatementsAndDiagnostics(t *testing.T) {
	file := &scadast.File{
		Statements: []scadast.Statement{
			{Kind: scadast.StmtPrimitive, Name: "cube", Span: scadast.Span{
				Start: scadast.Position{Line: 1}, End: scadast.Position{Line: 1},
			}},
		},
		Diagnostics: []scadast.Diagnostic{
			{Level: scadast.DiagWarning, Code: "W-X", Message: "unused variable"},
		},
	}

	var buf bytes.Buffer

	renderStatementTable(file, &buf)

	out := buf.String()
	assert.Contains(t, out, "cube")
	assert.Contains(t, out, "unused variable")
}

func TestPrintBatchSummaryDoesNotPanicOnMissingFiles(t *testing.T) {
	assert.NotPanics(t, func() {
		printBatchSummary([]string{"/nonexistent/path.scad"}, time.Now())
	})
}
