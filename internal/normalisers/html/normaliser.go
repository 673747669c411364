package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFileTypes returns the file types this normaliser handles.
func (n *Normaliser) SupportedFileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeHTML, domain.FileTypeURL}
}

// Normalise converts an HTML document to plain text.
// The title is taken from the <title> element when present.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent := string(raw.Content)
	return &driven.NormaliseResult{
		Title:   ExtractTitle(rawContent),
		Content: StripHTML(rawContent),
	}, nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag  = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// ExtractTitle returns the decoded, whitespace-collapsed text of the first
// <title> element, or "" when there is none.
func ExtractTitle(content string) string {
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) < 2 {
		return ""
	}
	title := html.UnescapeString(matches[1])
	return strings.TrimSpace(whitespace.ReplaceAllString(title, " "))
}

// StripHTML removes markup and returns the readable text on a single line.
func StripHTML(content string) string {
	content = scriptTag.ReplaceAllString(content, " ")
	content = styleTag.ReplaceAllString(content, " ")
	content = noscriptTag.ReplaceAllString(content, " ")
	content = htmlComments.ReplaceAllString(content, " ")

	content = allTags.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)

	content = whitespace.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}
