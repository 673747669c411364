package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/services"
)

func TestConfigShowCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "config", "show")

	require.NoError(t, err)
	for _, want := range []string{
		"Current Settings",
		"[server]",
		"[fetch]",
		"[history]",
		"[documents]",
		"[log]",
		"server.port = 8080",
		"fetch.timeout_seconds = 30",
		"fetch.burst = 4",
		"history.limit = 100",
		"log.verbose = false",
	} {
		assert.Contains(t, stdout, want)
	}
}

func TestConfigShowCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "-o", "json", "config", "show")

	require.NoError(t, err)
	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &values))
	assert.Len(t, values, len(services.SettingKeys()))
	assert.Equal(t, "localhost", values[services.KeyServerHost])
}

func TestConfigGetCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "config", "get", "fetch.rate_per_second")

	require.NoError(t, err)
	assert.Equal(t, "2\n", stdout)
}

func TestConfigGetCmd_UnknownKey(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "config", "get", "server.colour")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown setting "server.colour"`)
}

func TestConfigSetCmd(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "config", "set", "documents.paths", "docs, notes/readme.md")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set documents.paths = docs, notes/readme.md")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "notes/readme.md"}, settings.Documents.Paths)

	stdout, _, err = execute(t, "config", "get", "documents.paths")
	require.NoError(t, err)
	assert.Equal(t, "docs,notes/readme.md\n", stdout)
}

func TestConfigSetCmd_InvalidValue(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: "server.port", value: "http"},
		{name: "negative history limit", key: "history.limit", value: "-1"},
		{name: "zero rate", key: "fetch.rate_per_second", value: "0"},
		{name: "verbose not a bool", key: "log.verbose", value: "loud"},
		{name: "unknown key", key: "server.colour", value: "blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupTestServices()
			defer cleanup()

			_, _, err := execute(t, "config", "set", tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestConfigCmd_NoService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(&Services{Query: queryService})

	for _, args := range [][]string{
		{"config", "show"},
		{"config", "get", "server.port"},
		{"config", "set", "server.port", "9000"},
	} {
		_, _, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "settings service not configured")
	}
}
