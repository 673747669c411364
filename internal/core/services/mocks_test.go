package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
)

// stubNormaliser returns the raw bytes as content.
type stubNormaliser struct {
	types []domain.FileType
	title string
	err   error
}

func (n *stubNormaliser) SupportedFileTypes() []domain.FileType { return n.types }

func (n *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if n.err != nil {
		return nil, n.err
	}
	return &driven.NormaliseResult{Title: n.title, Content: string(raw.Content)}, nil
}

// stubRegistry maps file types to normalisers.
type stubRegistry struct {
	byType map[domain.FileType]driven.Normaliser
}

func newStubRegistry(ns ...driven.Normaliser) *stubRegistry {
	r := &stubRegistry{byType: make(map[domain.FileType]driven.Normaliser)}
	for _, n := range ns {
		r.Register(n)
	}
	return r
}

func (r *stubRegistry) Register(n driven.Normaliser) {
	for _, ft := range n.SupportedFileTypes() {
		r.byType[ft] = n
	}
}

func (r *stubRegistry) Get(ft domain.FileType) (driven.Normaliser, error) {
	n, ok := r.byType[ft]
	if !ok {
		return nil, domain.ErrUnsupportedType
	}
	return n, nil
}

func (r *stubRegistry) FileTypes() []domain.FileType {
	out := make([]domain.FileType, 0, len(r.byType))
	for ft := range r.byType {
		out = append(out, ft)
	}
	return out
}

// stubFetcher serves canned pages.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	err   error
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) (*domain.RawDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	page, ok := f.pages[rawURL]
	if !ok {
		return nil, errors.New("404 not found")
	}
	return &domain.RawDocument{Name: rawURL, FileType: domain.FileTypeHTML, Content: []byte(page), URL: rawURL}, nil
}

// failingHistory rejects every record.
type failingHistory struct{}

func (failingHistory) Record(context.Context, string, *domain.AnswerResult) error {
	return errors.New("history unavailable")
}

func (failingHistory) List(context.Context) ([]domain.HistoryEntry, error) { return nil, nil }

func (failingHistory) Stats(context.Context) (domain.HistoryStats, error) {
	return domain.HistoryStats{}, nil
}

func (failingHistory) Clear(context.Context) error { return nil }

// failingDocStore fails every call.
type failingDocStore struct{}

var errStore = errors.New("store offline")

func (failingDocStore) Add(context.Context, *domain.Document) error { return errStore }

func (failingDocStore) Remove(context.Context, string) (*domain.Document, error) {
	return nil, errStore
}

func (failingDocStore) Get(context.Context, string) (*domain.Document, error) { return nil, errStore }

func (failingDocStore) List(context.Context) ([]*domain.Document, error) { return nil, errStore }

func (failingDocStore) Count(context.Context) (int, error) { return 0, errStore }
