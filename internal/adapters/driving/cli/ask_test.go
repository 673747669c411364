package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

const installGuide = "# Install Guide\n\nRun make install to build and install the tool. It needs a recent toolchain.\n"

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
	assert.NotNil(t, askCmd.Flags().Lookup("file"))
	assert.NotNil(t, askCmd.Flags().Lookup("url"))
}

func TestAskCmd_WithFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "install.md", installGuide)

	stdout, _, err := execute(t, "ask", "--file", path, "how", "to", "install")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Based on the uploaded documents")
	assert.Contains(t, stdout, "Confidence: ")
	assert.Contains(t, stdout, "Sources:")
	assert.Contains(t, stdout, "(markdown, relevance ")
}

func TestAskCmd_WithURL(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	stdout, _, err := execute(t, "ask", "--url", "https://example.com/deploy", "when do deployments run")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Deploy Guide")
	count, err := env.docs.Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAskCmd_QuestionFromStdin(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "install.md", installGuide)
	rootCmd.SetIn(strings.NewReader("how do I install it?\n"))

	stdout, _, err := execute(t, "ask", "-f", path)

	require.NoError(t, err)
	assert.Contains(t, stdout, "Based on the uploaded documents")
}

func TestAskCmd_EmptyQuestion(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "install.md", installGuide)
	rootCmd.SetIn(strings.NewReader("\n"))

	_, _, err := execute(t, "ask", "-f", path)

	require.Error(t, err)
	assert.Equal(t, "question is required", err.Error())
}

func TestAskCmd_NoDocuments(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "ask", "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documents loaded")
}

func TestAskCmd_NoMatch(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "install.md", installGuide)

	stdout, _, err := execute(t, "ask", "-f", path, "zebra")

	require.NoError(t, err)
	assert.Contains(t, stdout, "I couldn't find relevant information")
	assert.Contains(t, stdout, "Confidence: 0%")
	assert.NotContains(t, stdout, "Sources:")
}

func TestAskCmd_UnloadableFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, stderr, err := execute(t, "ask", "-f", "/does/not/exist.md", "anything")

	require.Error(t, err)
	assert.Equal(t, "no documents could be loaded", err.Error())
	assert.Contains(t, stderr, "Warning:")
}

func TestAskCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "install.md", installGuide)

	stdout, _, err := execute(t, "ask", "-o", "json", "-f", path, "install")

	require.NoError(t, err)
	var answer domain.AnswerResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &answer))
	assert.Positive(t, answer.Confidence)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, domain.FileTypeMarkdown, answer.Sources[0].FileType)
}

func TestAskCmd_YAMLOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "install.md", installGuide)

	stdout, _, err := execute(t, "ask", "--output", "yaml", "-f", path, "install")

	require.NoError(t, err)
	var answer map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &answer))
	assert.Contains(t, answer, "confidence")
	assert.Contains(t, answer, "sources")
}

func TestAskCmd_RecordsHistory(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	path := writeFile(t, "install.md", installGuide)

	_, _, err := execute(t, "ask", "-f", path, "install")
	require.NoError(t, err)

	entries, err := env.history.List(t.Context())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "install", entries[0].Question)
}

func TestAskCmd_RemoteRejectsFiles(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute(t, "--server", "http://localhost:1", "ask", "-f", "a.md", "question")

	require.Error(t, err)
	assert.ErrorIs(t, err, errRemoteUnsupported)
}

func TestAskCmd_NoQueryService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)

	_, _, err := execute(t, "ask", "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query service not configured")
}
