package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "askdocs://documents/doc-456",
			expected: "doc-456",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/doc-456",
			expected: "",
		},
		{
			name:     "document list URI",
			uri:      "askdocs://documents",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "askdocs://documents/doc-456/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractDocumentID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{Query: &mockQueryService{}})

		req := makeReadResourceRequest("askdocs://documents")
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns documents successfully", func(t *testing.T) {
		docs := &mockDocumentService{documents: []domain.DocumentSummary{
			{ID: "doc-1", Title: "guide.md", FileType: domain.FileTypeMarkdown, Timestamp: testTime},
		}}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

		req := makeReadResourceRequest("askdocs://documents")
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []DocumentOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, "doc-1", infos[0].DocumentID)
		assert.Equal(t, "guide.md", infos[0].Title)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		docs := &mockDocumentService{err: errors.New("list failed")}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

		req := makeReadResourceRequest("askdocs://documents")
		_, err := server.handleDocumentsResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "list failed")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns document content", func(t *testing.T) {
		docs := &mockDocumentService{document: &domain.Document{ID: "doc-1", Content: "plain text"}}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

		req := makeReadResourceRequest("askdocs://documents/doc-1")
		result, err := server.handleDocumentContentResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "plain text", result.Contents[0].Text)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		docs := &mockDocumentService{err: domain.ErrNotFound}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

		req := makeReadResourceRequest("askdocs://documents/missing")
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("nil document service is not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Query: &mockQueryService{}})

		req := makeReadResourceRequest("askdocs://documents/doc-1")
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: &mockDocumentService{}})

		req := makeReadResourceRequest("askdocs://other/doc-1")
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		docs := &mockDocumentService{err: errors.New("store down")}
		server := newTestServer(t, &Ports{Query: &mockQueryService{}, Documents: docs})

		req := makeReadResourceRequest("askdocs://documents/doc-1")
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting document: store down")
	})
}
