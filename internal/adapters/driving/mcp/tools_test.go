package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the answer with sources", func(t *testing.T) {
		query := &mockQueryService{
			answer: &domain.AnswerResult{
				Text:       "Based on the documents:",
				Confidence: 65,
				Timestamp:  testTime,
				Sources: []domain.Source{
					{Title: "guide.md", FileType: domain.FileTypeMarkdown, Relevance: 4, Passage: "Install it..."},
				},
			},
		}
		server := newTestServer(t, &Ports{Query: query})

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "how to install"})

		require.NoError(t, err)
		assert.Equal(t, "how to install", query.question)
		assert.Equal(t, "Based on the documents:", output.Answer)
		assert.Equal(t, 65, output.Confidence)
		assert.Equal(t, "2025-03-01T12:00:00Z", output.Timestamp)
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "guide.md", output.Sources[0].Title)
		assert.Equal(t, "markdown", output.Sources[0].FileType)
		assert.Equal(t, 4, output.Sources[0].Relevance)
	})

	t.Run("no documents is an error", func(t *testing.T) {
		server := newTestServer(t, &Ports{Query: &mockQueryService{err: domain.ErrNoDocuments}})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		assert.ErrorIs(t, err, domain.ErrNoDocuments)
	})
}

func TestServer_handleAddURL(t *testing.T) {
	ctx := context.Background()

	t.Run("adds the page", func(t *testing.T) {
		ingest := &mockIngestService{document: &domain.Document{
			ID:        "doc-1",
			Title:     "Example",
			FileType:  domain.FileTypeURL,
			URL:       "https://example.com",
			Timestamp: testTime,
		}}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Ingest: ingest})

		_, output, err := server.handleAddURL(ctx, nil, AddURLInput{URL: "https://example.com"})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", ingest.url)
		assert.Equal(t, "doc-1", output.DocumentID)
		assert.Equal(t, "url", output.FileType)
		assert.Equal(t, "https://example.com", output.URL)
	})

	t.Run("without ingest service", func(t *testing.T) {
		server := newTestServer(t, &Ports{Query: &mockQueryService{}})

		_, _, err := server.handleAddURL(ctx, nil, AddURLInput{URL: "https://example.com"})

		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("fetch failure", func(t *testing.T) {
		ingest := &mockIngestService{err: domain.ErrIngestionFailure}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Ingest: ingest})

		_, _, err := server.handleAddURL(ctx, nil, AddURLInput{URL: "https://example.com"})

		assert.ErrorIs(t, err, domain.ErrIngestionFailure)
	})
}

func TestServer_handleListDocuments(t *testing.T) {
	ctx := context.Background()
	size := int64(42)

	docs := &mockDocumentService{documents: []domain.DocumentSummary{
		{ID: "doc-1", Title: "a.md", FileType: domain.FileTypeMarkdown, Size: &size, Timestamp: testTime},
		{ID: "doc-2", Title: "b.pdf", FileType: domain.FileTypePDF, Timestamp: testTime},
	}}
	server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

	_, output, err := server.handleListDocuments(ctx, nil, ListDocumentsInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, "doc-1", output.Documents[0].DocumentID)
	assert.Equal(t, int64(42), output.Documents[0].Size)
	assert.Equal(t, "pdf", output.Documents[1].FileType)
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("returns content", func(t *testing.T) {
		docs := &mockDocumentService{document: &domain.Document{
			ID: "doc-1", Title: "a.md", Content: "hello world", FileType: domain.FileTypeMarkdown,
		}}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

		_, output, err := server.handleGetDocument(ctx, nil, DocumentIDInput{DocumentID: "doc-1"})

		require.NoError(t, err)
		assert.Equal(t, "doc-1", output.Document.DocumentID)
		assert.Equal(t, "hello world", output.Content)
	})

	t.Run("unknown document", func(t *testing.T) {
		docs := &mockDocumentService{err: domain.ErrNotFound}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

		_, _, err := server.handleGetDocument(ctx, nil, DocumentIDInput{DocumentID: "missing"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("without document service", func(t *testing.T) {
		server := newTestServer(t, &Ports{Query: &mockQueryService{}})

		_, _, err := server.handleGetDocument(ctx, nil, DocumentIDInput{DocumentID: "doc-1"})

		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestServer_handleDeleteDocument(t *testing.T) {
	ctx := context.Background()

	docs := &mockDocumentService{document: &domain.Document{ID: "doc-1", Title: "a.md"}}
	server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

	_, output, err := server.handleDeleteDocument(ctx, nil, DocumentIDInput{DocumentID: "doc-1"})

	require.NoError(t, err)
	assert.Equal(t, "doc-1", docs.deleted)
	assert.Equal(t, "a.md", output.Title)
}

func TestServer_handleHistory(t *testing.T) {
	ctx := context.Background()

	entries := make([]domain.HistoryEntry, 15)
	for i := range entries {
		entries[i] = domain.HistoryEntry{
			ID:        "h",
			Question:  "question",
			Answer:    domain.AnswerResult{Text: "answer", Confidence: 50},
			Timestamp: testTime,
		}
	}
	history := &mockHistoryService{
		entries: entries,
		stats:   domain.HistoryStats{Total: 15, AverageConfidence: 50},
	}
	server := newTestServer(t, &Ports{Query: &mockQueryService{}, History: history})

	t.Run("default limit", func(t *testing.T) {
		_, output, err := server.handleHistory(ctx, nil, HistoryInput{})

		require.NoError(t, err)
		assert.Len(t, output.Entries, defaultHistoryLimit)
		assert.Equal(t, 15, output.Total)
		assert.Equal(t, 50, output.AverageConfidence)
		assert.Equal(t, "answer", output.Entries[0].Preview)
	})

	t.Run("explicit limit", func(t *testing.T) {
		_, output, err := server.handleHistory(ctx, nil, HistoryInput{Limit: 3})

		require.NoError(t, err)
		assert.Len(t, output.Entries, 3)
	})

	t.Run("store failure", func(t *testing.T) {
		failing := newTestServer(t, &Ports{
			Query:   &mockQueryService{},
			History: &mockHistoryService{err: errors.New("boom")},
		})

		_, _, err := failing.handleHistory(ctx, nil, HistoryInput{})

		assert.EqualError(t, err, "boom")
	})
}
