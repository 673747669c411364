package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingQueryService,
		ErrMissingDocumentService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingQueryService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingQueryService.Error(), "query service")
}

func TestErrMissingDocumentService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingDocumentService.Error(), "document service")
}
