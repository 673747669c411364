package driven

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// DocumentStore owns the corpus for the lifetime of the process.
// Mutations are atomic with respect to concurrent readers and never
// re-order existing documents.
type DocumentStore interface {
	// Add appends a document. The caller supplies a unique ID;
	// a duplicate ID returns domain.ErrAlreadyExists.
	Add(ctx context.Context, doc *domain.Document) error

	// Remove deletes a document and returns it.
	// Returns domain.ErrNotFound if no document has the ID.
	Remove(ctx context.Context, id string) (*domain.Document, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if no document has the ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns a snapshot of all documents in insertion order.
	// The returned slice is owned by the caller; the documents are shared
	// and must not be modified.
	List(ctx context.Context) ([]*domain.Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}
