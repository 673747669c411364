package mcp

import (
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions.
	Query driving.QueryService

	// Documents manages the corpus.
	Documents driving.DocumentService

	// Ingest adds web pages.
	Ingest driving.IngestService

	// History exposes answered questions.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Only Query is required; tools backed by a missing port report ErrUnavailable.
func (p *Ports) Validate() error {
	if p == nil || p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
