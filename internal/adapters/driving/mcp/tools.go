package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/services"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the loaded documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string         `json:"answer"`
	Confidence int            `json:"confidence"`
	Sources    []SourceOutput `json:"sources"`
	Timestamp  string         `json:"timestamp"`
}

// SourceOutput attributes part of an answer to a document.
type SourceOutput struct {
	Title     string `json:"title"`
	FileType  string `json:"file_type"`
	Relevance int    `json:"relevance"`
	Passage   string `json:"passage"`
}

// AddURLInput is the input schema for the add_url tool.
type AddURLInput struct {
	URL string `json:"url" jsonschema:"http or https address of the web page to add"`
}

// DocumentOutput describes a document without its content.
type DocumentOutput struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	FileType   string `json:"file_type"`
	URL        string `json:"url,omitempty"`
	Size       int64  `json:"size,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentIDInput identifies a document.
type DocumentIDInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document id"`
}

// GetDocumentOutput is the output schema for the get_document tool.
type GetDocumentOutput struct {
	Document DocumentOutput `json:"document"`
	Content  string         `json:"content"`
}

// HistoryInput is the input schema for the history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return (default 10)"`
}

// HistoryOutput is the output schema for the history tool.
type HistoryOutput struct {
	Entries           []HistoryEntryOutput `json:"entries"`
	Total             int                  `json:"total"`
	AverageConfidence int                  `json:"average_confidence"`
}

// HistoryEntryOutput is one answered question.
type HistoryEntryOutput struct {
	Question   string `json:"question"`
	Preview    string `json:"preview"`
	Confidence int    `json:"confidence"`
	Timestamp  string `json:"timestamp"`
}

const defaultHistoryLimit = 10

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question with passages quoted from the loaded documents",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_url",
		Description: "Fetch a web page and add it to the documents",
	}, s.handleAddURL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the loaded documents",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Get a document with its extracted text",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Remove a document",
	}, s.handleDeleteDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "history",
		Description: "List recently answered questions, newest first",
	}, s.handleHistory)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Query.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:     answer.Text,
		Confidence: answer.Confidence,
		Sources:    make([]SourceOutput, len(answer.Sources)),
		Timestamp:  answer.Timestamp.Format(time.RFC3339),
	}
	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{
			Title:     src.Title,
			FileType:  src.FileType.String(),
			Relevance: src.Relevance,
			Passage:   src.Passage,
		}
	}
	return nil, output, nil
}

func (s *Server) handleAddURL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddURLInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if s.ports.Ingest == nil {
		return nil, DocumentOutput{}, fmt.Errorf("%w: ingest service not configured", ErrUnavailable)
	}
	doc, err := s.ports.Ingest.IngestURL(ctx, input.URL)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, documentOutput(doc.Summary()), nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Documents == nil {
		return nil, ListDocumentsOutput{}, fmt.Errorf("%w: document service not configured", ErrUnavailable)
	}
	docs, err := s.ports.Documents.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = documentOutput(docs[i])
	}
	return nil, output, nil
}

func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentIDInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	if s.ports.Documents == nil {
		return nil, GetDocumentOutput{}, fmt.Errorf("%w: document service not configured", ErrUnavailable)
	}
	doc, err := s.ports.Documents.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, GetDocumentOutput{}, err
	}
	return nil, GetDocumentOutput{
		Document: documentOutput(doc.Summary()),
		Content:  doc.Content,
	}, nil
}

func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentIDInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if s.ports.Documents == nil {
		return nil, DocumentOutput{}, fmt.Errorf("%w: document service not configured", ErrUnavailable)
	}
	doc, err := s.ports.Documents.Delete(ctx, input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, documentOutput(doc.Summary()), nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if s.ports.History == nil {
		return nil, HistoryOutput{}, fmt.Errorf("%w: history service not configured", ErrUnavailable)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.ports.History.List(ctx)
	if err != nil {
		return nil, HistoryOutput{}, err
	}
	stats, err := s.ports.History.Stats(ctx)
	if err != nil {
		return nil, HistoryOutput{}, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	output := HistoryOutput{
		Entries:           make([]HistoryEntryOutput, len(entries)),
		Total:             stats.Total,
		AverageConfidence: stats.AverageConfidence,
	}
	for i, e := range entries {
		output.Entries[i] = HistoryEntryOutput{
			Question:   e.Question,
			Preview:    services.Preview(e),
			Confidence: e.Answer.Confidence,
			Timestamp:  e.Timestamp.Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

func documentOutput(d domain.DocumentSummary) DocumentOutput {
	out := DocumentOutput{
		DocumentID: d.ID,
		Title:      d.Title,
		FileType:   d.FileType.String(),
		Timestamp:  d.Timestamp.Format(time.RFC3339),
	}
	if d.URL != nil {
		out.URL = *d.URL
	}
	if d.Size != nil {
		out.Size = *d.Size
	}
	return out
}
