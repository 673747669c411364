package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetLevel(LevelWarn)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())
	assert.Equal(t, LevelWarn, GetLevel())

	SetVerbose(true)
	assert.True(t, IsVerbose())
	assert.Equal(t, LevelDebug, GetLevel())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Debug("scored %d documents", 3)

	assert.Equal(t, "[DEBUG] scored 3 documents\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t)
	SetVerbose(false)

	Debug("hidden")
	Section("hidden")
	Info("hidden")

	assert.Empty(t, buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Section("Query Pipeline")

	assert.Equal(t, "\n=== Query Pipeline ===\n", buf.String())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		level   Level
		visible []string
	}{
		{LevelDebug, []string{"[DEBUG] d", "[INFO] i", "[WARN] w", "[ERROR] e"}},
		{LevelInfo, []string{"[INFO] i", "[WARN] w", "[ERROR] e"}},
		{LevelWarn, []string{"[WARN] w", "[ERROR] e"}},
		{LevelError, []string{"[ERROR] e"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			buf := capture(t)
			SetLevel(tt.level)

			Debug("d")
			Info("i")
			Warn("w")
			Error("e")

			out := buf.String()
			for _, line := range tt.visible {
				assert.Contains(t, out, line)
			}
			assert.Equal(t, len(tt.visible), bytes.Count(buf.Bytes(), []byte("\n")))
		})
	}
}

func TestRaiseTo(t *testing.T) {
	capture(t)

	SetLevel(LevelWarn)
	RaiseTo(LevelInfo)
	assert.Equal(t, LevelInfo, GetLevel())

	SetLevel(LevelDebug)
	RaiseTo(LevelInfo)
	assert.Equal(t, LevelDebug, GetLevel())
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{
		"debug": LevelDebug, "INFO": LevelInfo, "warn": LevelWarn,
		"warning": LevelWarn, " error ": LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
