package driving

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// HistoryService exposes previously answered questions.
type HistoryService interface {
	// Record stores an answered question.
	Record(ctx context.Context, question string, answer *domain.AnswerResult) error

	// List returns answers newest first.
	List(ctx context.Context) ([]domain.HistoryEntry, error)

	// Stats summarises the history.
	Stats(ctx context.Context) (domain.HistoryStats, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
