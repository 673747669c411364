// Package tui provides an interactive terminal user interface for askdocs.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions.
	Query driving.QueryService

	// Documents manages the corpus.
	Documents driving.DocumentService

	// Ingest adds web pages from the documents view. Optional.
	Ingest driving.IngestService

	// History lists answered questions. Optional.
	History driving.HistoryService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(query driving.QueryService, documents driving.DocumentService) *Ports {
	return &Ports{
		Query:     query,
		Documents: documents,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	return nil
}
