package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigShowPrintsDefaults(t *testing.T) {
	var buf bytes.Buffer

	cfgFile = ""

	err := runConfigShow(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "workers:")
	assert.Contains(t, buf.String(), "level: info")
}
