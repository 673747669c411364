package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedFileTypes(t *testing.T) {
	assert.Equal(t, []domain.FileType{domain.FileTypeMarkdown}, New().SupportedFileTypes())
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_KeepsText(t *testing.T) {
	raw := &domain.RawDocument{
		Name:     "guide.md",
		FileType: domain.FileTypeMarkdown,
		Content:  []byte("\ufeff# Hello World\r\n\r\nThis is **a** test. See [docs](http://x).\r\n"),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "Hello World", result.Title)
	assert.Equal(t, "# Hello World\n\nThis is **a** test. See [docs](http://x).\n", result.Content)
}

func TestNormalise_Empty(t *testing.T) {
	result, err := New().Normalise(context.Background(), &domain.RawDocument{Content: nil})
	require.NoError(t, err)

	assert.Empty(t, result.Title)
	assert.Empty(t, result.Content)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"first h1", "intro\n# Title\n# Other", "Title"},
		{"indented", "   #   Spaced  ", "Spaced"},
		{"h2 ignored", "## Sub\ntext", ""},
		{"no space", "#hashtag", ""},
		{"inside fence", "```\n# comment\n```\n# Real", "Real"},
		{"none", "plain text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTitle(tt.content))
		})
	}
}
