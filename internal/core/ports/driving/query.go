package driving

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// QueryService answers questions about the corpus.
type QueryService interface {
	// Ask answers a question.
	// Returns domain.ErrEmptyQuestion for a blank question and
	// domain.ErrNoDocuments when the corpus is empty. A question that
	// matches nothing is a successful answer with zero confidence.
	Ask(ctx context.Context, question string) (*domain.AnswerResult, error)
}
