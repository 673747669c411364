package mcp

import (
	"context"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer   *domain.AnswerResult
	err      error
	question string
}

func (m *mockQueryService) Ask(_ context.Context, question string) (*domain.AnswerResult, error) {
	m.question = question
	return m.answer, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.DocumentSummary
	document  *domain.Document
	err       error
	deleted   string
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.DocumentSummary, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, id string) (*domain.Document, error) {
	m.deleted = id
	return m.document, m.err
}

func (m *mockDocumentService) Count(_ context.Context) (int, error) {
	return len(m.documents), m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	document *domain.Document
	err      error
	url      string
}

func (m *mockIngestService) IngestFile(_ context.Context, _ string, _ domain.FileType) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockIngestService) IngestBytes(_ context.Context, _ string, _ []byte, _ domain.FileType) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockIngestService) IngestURL(_ context.Context, rawURL string) (*domain.Document, error) {
	m.url = rawURL
	return m.document, m.err
}

func (m *mockIngestService) IngestPaths(_ context.Context, _ []string) ([]*domain.Document, []error) {
	if m.err != nil {
		return nil, []error{m.err}
	}
	return []*domain.Document{m.document}, nil
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	stats   domain.HistoryStats
	err     error
}

func (m *mockHistoryService) Record(_ context.Context, _ string, _ *domain.AnswerResult) error {
	return m.err
}

func (m *mockHistoryService) List(_ context.Context) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}

func (m *mockHistoryService) Stats(_ context.Context) (domain.HistoryStats, error) {
	return m.stats, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}
