package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown file type or normaliser.
	ErrUnsupportedType = errors.New("unsupported type")

	// Query Errors.

	// ErrEmptyQuestion indicates a blank or whitespace-only question.
	ErrEmptyQuestion = errors.New("question is required")

	// ErrNoDocuments indicates the corpus was empty at query time.
	ErrNoDocuments = errors.New("no documents uploaded")

	// Ingestion Errors.

	// ErrIngestionFailure indicates a collaborator could not produce document content.
	// The cause is wrapped and not interpreted by the core.
	ErrIngestionFailure = errors.New("ingestion failed")

	// ErrDocumentTooLarge indicates an upload exceeded MaxUploadSize.
	ErrDocumentTooLarge = errors.New("document too large")
)
