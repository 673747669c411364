// Package domain defines the core business entities for askdocs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with plain-text content
//   - RawDocument: Bytes handed over by an ingestion collaborator
//   - ScoredDocument: A document with its lexical score and passages
//   - AnswerResult: An extractive answer with sources and confidence
//   - HistoryEntry: A previously answered question
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
