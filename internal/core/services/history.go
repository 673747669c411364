package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records and reports answered questions.
type HistoryService struct {
	store driven.HistoryStore
	now   func() time.Time
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store, now: time.Now}
}

// Record stores an answered question.
func (s *HistoryService) Record(ctx context.Context, question string, answer *domain.AnswerResult) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if answer == nil {
		return fmt.Errorf("record history: %w", domain.ErrInvalidInput)
	}
	ts := answer.Timestamp
	if ts.IsZero() {
		ts = s.now().UTC()
	}
	entry := domain.HistoryEntry{
		ID:        uuid.New().String(),
		Question:  question,
		Answer:    *answer,
		Timestamp: ts,
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// List returns answers newest first.
func (s *HistoryService) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Stats reports the number of answers and their average confidence.
// Answers with zero confidence are left out of the average.
func (s *HistoryService) Stats(ctx context.Context) (domain.HistoryStats, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return domain.HistoryStats{}, err
	}
	stats := domain.HistoryStats{Total: len(entries)}
	sum, n := 0, 0
	for _, e := range entries {
		if e.Answer.Confidence > 0 {
			sum += e.Answer.Confidence
			n++
		}
	}
	if n > 0 {
		stats.AverageConfidence = int(math.Round(float64(sum) / float64(n)))
	}
	return stats, nil
}

// Clear removes all entries.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Clear(ctx)
}

// Preview returns the answer text cut to domain.PreviewLength characters.
func Preview(entry domain.HistoryEntry) string {
	return domain.Truncate(entry.Answer.Text, domain.PreviewLength)
}
