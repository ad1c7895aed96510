package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDiffMissingFileReturnsError(t *testing.T) {
	var buf bytes.Buffer

	err := runDiff("/nonexistent/a.scad", "/nonexistent/b.scad", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
