package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRootCmdRegistersAllSubcommands(t *testing.T) {
	root := buildRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"parse", "diff", "validate", "config", "lsp", "mcp", "serve", "completion", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmdHelp(t *testing.T) {
	root := buildRootCmd()

	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "scadast compiles OpenSCAD source")
}

func TestVersionCmdPrintsVersion(t *testing.T) {
	root := buildRootCmd()

	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "scadast "))
}

func TestCompletionCmdRejectsUnsupportedShell(t *testing.T) {
	root := buildRootCmd()

	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"completion", "tcsh"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}

func TestCompletionCmdGeneratesBash(t *testing.T) {
	root := buildRootCmd()

	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"completion", "bash"})

	require.NoError(t, root.Execute())
}
