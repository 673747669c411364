package html

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
	types := New().SupportedFileTypes()

	assert.ElementsMatch(t, []domain.FileType{domain.FileTypeHTML, domain.FileTypeURL}, types)
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_Page(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
  <title>  Getting &amp; Started </title>
  <style>body { color: red; }</style>
  <script>var secret = "hidden";</script>
</head>
<body>
  <h1>Welcome</h1>
  <p>Install the <b>tool</b>. Then run it!</p>
  <!-- build marker -->
</body>
</html>`

	result, err := New().Normalise(context.Background(), &domain.RawDocument{
		Name:     "index.html",
		FileType: domain.FileTypeHTML,
		Content:  []byte(page),
	})

	require.NoError(t, err)
	assert.Equal(t, "Getting & Started", result.Title)
	assert.Equal(t, "Getting & Started Welcome Install the tool . Then run it!", result.Content)
	assert.NotContains(t, result.Content, "secret")
	assert.NotContains(t, result.Content, "color")
	assert.NotContains(t, result.Content, "build marker")
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"simple", "<title>Docs</title>", "Docs"},
		{"attributes and case", "<TITLE lang=\"en\">Docs</TITLE>", "Docs"},
		{"multi line", "<title>\n  Long\n  Title\n</title>", "Long Title"},
		{"entities", "<title>Q&amp;A &lt;FAQ&gt;</title>", "Q&A <FAQ>"},
		{"missing", "<html><body>none</body></html>", ""},
		{"empty", "<title>   </title>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTitle(tt.content))
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"plain text", "no markup here", "no markup here"},
		{"tags become spaces", "<p>one</p><p>two</p>", "one two"},
		{"entities decoded", "caf&eacute; &amp; bar", "café & bar"},
		{"whitespace collapsed", "a \n\n\t b", "a b"},
		{"script removed", "<script type=\"x\">\nalert(1)\n</script>kept", "kept"},
		{"noscript removed", "<noscript>enable js</noscript>text", "text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripHTML(tt.content))
		})
	}
}
