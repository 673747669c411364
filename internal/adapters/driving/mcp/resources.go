package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

const (
	documentsURI    = "askdocs://documents"
	documentsPrefix = documentsURI + "/"
)

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         documentsURI,
		Name:        "documents",
		Description: "Summaries of every loaded document as JSON",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentsPrefix + "{documentId}",
		Name:        "document-content",
		Description: "Extracted plain text of one document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleDocumentsResource serves the document list. An unconfigured
// document service reads as an empty list.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos := []DocumentOutput{}
	if s.ports.Documents != nil {
		docs, err := s.ports.Documents.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing documents: %w", err)
		}
		for _, d := range docs {
			infos = append(infos, documentOutput(d))
		}
	}

	text := "[]"
	if len(infos) > 0 {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshalling documents: %w", err)
		}
		text = string(data)
	}
	return contents(req.Params.URI, "application/json", text), nil
}

func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	id := extractDocumentID(uri)
	if id == "" || s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	doc, err := s.ports.Documents.Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, mcp.ResourceNotFoundError(uri)
	case err != nil:
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return contents(uri, "text/plain", doc.Content), nil
}

func contents(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: mimeType, Text: text}},
	}
}

// extractDocumentID returns the id in askdocs://documents/{id}, or "" when
// uri has any other shape.
func extractDocumentID(uri string) string {
	id, ok := strings.CutPrefix(uri, documentsPrefix)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
