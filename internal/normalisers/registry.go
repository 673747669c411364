package normalisers

import (
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/normalisers/html"
	"github.com/custodia-labs/askdocs/internal/normalisers/markdown"
	"github.com/custodia-labs/askdocs/internal/normalisers/pdf"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry selects a normaliser by file type.
// A later registration for the same file type replaces the earlier one.
type Registry struct {
	mu     sync.RWMutex
	byType map[domain.FileType]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[domain.FileType]driven.Normaliser)}
}

// NewDefaultRegistry creates a registry with the markdown, HTML and PDF
// normalisers registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(pdf.New())
	return r
}

// Register adds a normaliser for each file type it supports.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ft := range n.SupportedFileTypes() {
		r.byType[ft] = n
	}
}

// Get returns the normaliser for a file type.
func (r *Registry) Get(ft domain.FileType) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byType[ft]
	if !ok {
		return nil, fmt.Errorf("no normaliser for %q: %w", ft, domain.ErrUnsupportedType)
	}
	return n, nil
}

// FileTypes returns the registered file types in a stable order.
func (r *Registry) FileTypes() []domain.FileType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]domain.FileType, 0, len(r.byType))
	for ft := range r.byType {
		types = append(types, ft)
	}
	slices.Sort(types)
	return types
}
