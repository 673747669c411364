package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_RequiresDirectory(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestWatchCmd_RemoteUnsupported(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "--server", "http://localhost:1", "watch", t.TempDir())

	assert.ErrorIs(t, err, errRemoteUnsupported)
}

func TestWatchCmd_NoIngestService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(&Services{Query: queryService})

	_, _, err := execute(t, "watch", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

func TestWatchCmd_ServeFlag(t *testing.T) {
	flag := watchCmd.Flags().Lookup("serve")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}
