package driving

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// DocumentService manages the corpus.
type DocumentService interface {
	// List returns document summaries in insertion order.
	List(ctx context.Context) ([]domain.DocumentSummary, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document and returns it.
	// Returns domain.ErrNotFound for an unknown ID.
	Delete(ctx context.Context, id string) (*domain.Document, error)

	// Count returns the number of documents.
	Count(ctx context.Context) (int, error)
}
