package driven

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// Fetcher retrieves a web page for URL ingestion.
type Fetcher interface {
	// Fetch downloads the page at rawURL. The returned RawDocument carries
	// the page bytes with FileType domain.FileTypeHTML and URL set.
	Fetch(ctx context.Context, rawURL string) (*domain.RawDocument, error)
}
