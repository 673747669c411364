package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Structure(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	require.Len(t, mcpCmd.Commands(), 1)
	assert.Equal(t, "serve", mcpCmd.Commands()[0].Name())
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")

	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_DescribesTools(t *testing.T) {
	for _, tool := range []string{"ask", "add_url", "list_documents", "get_document", "delete_document", "history"} {
		assert.Contains(t, mcpServeCmd.Long, tool)
	}
	assert.Contains(t, mcpServeCmd.Long, "askdocs://documents/{id}")
}
