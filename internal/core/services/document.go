package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the corpus.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// List returns document summaries in insertion order.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	docs, err := s.docStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	summaries := make([]domain.DocumentSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, d.Summary())
	}
	return summaries, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.Get(ctx, id)
}

// Delete removes a document and returns it.
func (s *DocumentService) Delete(ctx context.Context, id string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	doc, err := s.docStore.Remove(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info("Deleted document %s (%s)", doc.ID, doc.Title)
	return doc, nil
}

// Count returns the number of documents.
func (s *DocumentService) Count(ctx context.Context) (int, error) {
	if s.docStore == nil {
		return 0, domain.ErrNotImplemented
	}
	return s.docStore.Count(ctx)
}
