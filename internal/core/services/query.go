package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers questions with extractive answers over the corpus.
// Each call works on a snapshot of the store and keeps no state between calls.
type QueryService struct {
	docStore driven.DocumentStore
	history  driving.HistoryService
	now      func() time.Time
}

// NewQueryService creates a new query service.
// The history parameter is optional (can be nil).
func NewQueryService(docStore driven.DocumentStore, history driving.HistoryService) *QueryService {
	return &QueryService{
		docStore: docStore,
		history:  history,
		now:      time.Now,
	}
}

// Ask answers a question about the stored documents.
func (s *QueryService) Ask(ctx context.Context, question string) (*domain.AnswerResult, error) {
	logger.Section("Query Pipeline")
	logger.Debug("Question: %q", question)

	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}

	docs, err := s.docStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ask: list documents: %w", err)
	}
	if len(docs) == 0 {
		logger.Debug("Corpus is empty")
		return nil, domain.ErrNoDocuments
	}

	tokens := Tokenize(question)
	logger.Debug("Tokens: %v", tokens)

	scored := scoreAll(docs, tokens)
	ranked := Rank(scored)
	logger.Debug("Scored %d documents, %d ranked", len(scored), len(ranked))

	total := gatherPassages(ranked, tokens)
	logger.Debug("Gathered %d passages", total)

	answer := Synthesize(ranked, total)
	answer.Timestamp = s.now().UTC()
	logger.Info("Answered with %d sources, confidence %d%%", len(answer.Sources), answer.Confidence)

	if s.history != nil {
		if err := s.history.Record(ctx, question, &answer); err != nil {
			logger.Warn("Failed to record answer history: %v", err)
		}
	}

	return &answer, nil
}

// scoreAll scores every document concurrently, one goroutine per document.
// Results keep the snapshot order so ranking ties stay stable.
func scoreAll(docs []*domain.Document, tokens []string) []domain.ScoredDocument {
	scored := make([]domain.ScoredDocument, len(docs))

	var wg sync.WaitGroup
	wg.Add(len(docs))
	for i, doc := range docs {
		go func(i int, doc *domain.Document) {
			defer wg.Done()
			scored[i] = domain.ScoredDocument{
				Document: doc,
				Score:    Score(doc.Content, tokens),
			}
		}(i, doc)
	}
	wg.Wait()

	return scored
}

// gatherPassages extracts passages for each ranked document in rank order
// until domain.MaxTotalPassages have been collected, and returns the total.
func gatherPassages(ranked []domain.ScoredDocument, tokens []string) int {
	total := 0
	for i := range ranked {
		remaining := domain.MaxTotalPassages - total
		if remaining <= 0 {
			break
		}
		ranked[i].Passages = ExtractPassages(ranked[i].Document.Content, tokens, remaining)
		total += len(ranked[i].Passages)
	}
	return total
}
