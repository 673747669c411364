package driven

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// HistoryStore keeps answered questions for the lifetime of the process.
type HistoryStore interface {
	// Append records an entry, evicting the oldest entry when full.
	Append(ctx context.Context, entry domain.HistoryEntry) error

	// List returns entries newest first.
	List(ctx context.Context) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
