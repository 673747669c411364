package driving

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// IngestService turns files and web pages into stored documents.
// A document is either fully stored or not stored at all.
type IngestService interface {
	// IngestFile reads and stores a file. An empty fileType is detected
	// from the file extension.
	IngestFile(ctx context.Context, path string, fileType domain.FileType) (*domain.Document, error)

	// IngestBytes stores uploaded content under the given file name.
	IngestBytes(ctx context.Context, name string, data []byte, fileType domain.FileType) (*domain.Document, error)

	// IngestURL fetches and stores a web page.
	IngestURL(ctx context.Context, rawURL string) (*domain.Document, error)

	// IngestPaths ingests files and the supported files inside directories.
	// Failures are reported per path and do not stop the remaining paths.
	IngestPaths(ctx context.Context, paths []string) ([]*domain.Document, []error)
}
