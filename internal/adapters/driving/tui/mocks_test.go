package tui

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// MockQueryService implements driving.QueryService for testing.
type MockQueryService struct {
	AskFunc func(ctx context.Context, question string) (*domain.AnswerResult, error)
}

func (m *MockQueryService) Ask(ctx context.Context, question string) (*domain.AnswerResult, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return &domain.AnswerResult{}, nil
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	Docs []domain.DocumentSummary
	Err  error
}

func (m *MockDocumentService) List(_ context.Context) ([]domain.DocumentSummary, error) {
	return m.Docs, m.Err
}

func (m *MockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.Document{ID: id, Content: "content of " + id}, nil
}

func (m *MockDocumentService) Delete(_ context.Context, id string) (*domain.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.Document{ID: id}, nil
}

func (m *MockDocumentService) Count(_ context.Context) (int, error) {
	return len(m.Docs), m.Err
}

// MockHistoryService implements driving.HistoryService for testing.
type MockHistoryService struct {
	Entries []domain.HistoryEntry
}

func (m *MockHistoryService) Record(_ context.Context, _ string, _ *domain.AnswerResult) error {
	return nil
}

func (m *MockHistoryService) List(_ context.Context) ([]domain.HistoryEntry, error) {
	return m.Entries, nil
}

func (m *MockHistoryService) Stats(_ context.Context) (domain.HistoryStats, error) {
	return domain.HistoryStats{Total: len(m.Entries)}, nil
}

func (m *MockHistoryService) Clear(_ context.Context) error {
	m.Entries = nil
	return nil
}
