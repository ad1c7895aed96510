package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSourceInputRejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, validateSourceInput(""), ErrEmptySource)
}

func TestValidateSourceInputRejectsOversize(t *testing.T) {
	big := make([]byte, MaxSourceInputBytes+1)
	assert.ErrorIs(t, validateSourceInput(string(big)), ErrSourceTooLarge)
}

func TestValidateSourceInputAcceptsNormalSource(t *testing.T) {
	assert.NoError(t, validateSourceInput("cube(10);"))
}

func TestJSONResultWrapsValue(t *testing.T) {
	result, output, err := jsonResult(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.NotEmpty(t, result.Content)
	assert.NotNil(t, output.Data)
}

func TestErrorResultSetsIsError(t *testing.T) {
	result, output, err := errorResult(ErrEmptySource)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Empty(t, output.Data)
}
