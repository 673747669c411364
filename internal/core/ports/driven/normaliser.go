package driven

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// Normaliser turns raw bytes of one file type into plain text.
// Each normaliser handles specific file types (e.g., PDF, Markdown).
type Normaliser interface {
	// SupportedFileTypes returns the file types this normaliser handles.
	SupportedFileTypes() []domain.FileType

	// Normalise extracts the title and plain-text content.
	// ID, timestamp and size are assigned by the ingestion service.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Title is the extracted title, empty when the content has none.
	Title string

	// Content is the extracted plain text.
	Content string
}

// NormaliserRegistry selects the normaliser for a file type.
type NormaliserRegistry interface {
	// Register adds a normaliser for each of its supported file types.
	Register(n Normaliser)

	// Get returns the normaliser for a file type.
	// Returns domain.ErrUnsupportedType when none is registered.
	Get(fileType domain.FileType) (Normaliser, error)

	// FileTypes returns the registered file types.
	FileTypes() []domain.FileType
}
