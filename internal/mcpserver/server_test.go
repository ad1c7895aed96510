package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServerRegistersParseTool(t *testing.T) {
	srv := NewServer(ServerDeps{})

	assert.Equal(t, []string{ToolNameParse}, srv.ListToolNames())
}
