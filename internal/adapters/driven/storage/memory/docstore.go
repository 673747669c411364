package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents are kept in insertion order; byID indexes the same pointers.
type DocumentStore struct {
	mu    sync.RWMutex
	order []*domain.Document
	byID  map[string]*domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		order: make([]*domain.Document, 0),
		byID:  make(map[string]*domain.Document),
	}
}

// Add appends a copy of the document.
func (s *DocumentStore) Add(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("add document: %w", domain.ErrInvalidInput)
	}

	stored := *doc

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[stored.ID]; exists {
		return fmt.Errorf("add document %s: %w", stored.ID, domain.ErrAlreadyExists)
	}
	s.order = append(s.order, &stored)
	s.byID[stored.ID] = &stored
	return nil
}

// Remove deletes a document and returns it.
func (s *DocumentStore) Remove(_ context.Context, id string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(d *domain.Document) bool {
		return d.ID == id
	})
	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// List returns a snapshot of the documents in insertion order.
func (s *DocumentStore) List(_ context.Context) ([]*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order), nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}
