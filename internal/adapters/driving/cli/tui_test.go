package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/adapters/driven/client"
)

func TestTUIPorts_Local(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	ports := tuiPorts()

	assert.NotNil(t, ports.Query)
	assert.Equal(t, env.docs, ports.Documents)
	assert.Equal(t, env.ingest, ports.Ingest)
	assert.Equal(t, env.history, ports.History)
}

func TestTUIPorts_Remote(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	c, err := client.New("http://localhost:1", nil)
	require.NoError(t, err)
	queryService = c
	documentService = c
	serverURL = "http://localhost:1"

	ports := tuiPorts()

	assert.Equal(t, c, ports.Query)
	assert.Equal(t, c, ports.Documents)
	assert.Nil(t, ports.Ingest)
	assert.Nil(t, ports.History)
}

func TestTUICmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"tui"})

	require.NoError(t, err)
	assert.Equal(t, "tui", cmd.Name())
}
