// Package mcp provides an MCP (Model Context Protocol) server adapter for askdocs.
// It lets AI assistants ask questions about the loaded documents and manage
// the corpus.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// ErrUnavailable is returned by tools whose backing service is not configured.
var ErrUnavailable = errors.New("mcp: tool unavailable")
