package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// UntitledDocument is the title of uploads without a file name.
const UntitledDocument = "Untitled Document"

// IngestService turns files and web pages into stored documents.
type IngestService struct {
	docStore    driven.DocumentStore
	normalisers driven.NormaliserRegistry
	fetcher     driven.Fetcher
	now         func() time.Time
	newID       func() string
}

// NewIngestService creates a new ingestion service.
// The fetcher parameter is optional (can be nil); URL ingestion then
// returns domain.ErrNotImplemented.
func NewIngestService(
	docStore driven.DocumentStore,
	normalisers driven.NormaliserRegistry,
	fetcher driven.Fetcher,
) *IngestService {
	return &IngestService{
		docStore:    docStore,
		normalisers: normalisers,
		fetcher:     fetcher,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// IngestFile reads and stores a file.
func (s *IngestService) IngestFile(
	ctx context.Context, path string, fileType domain.FileType,
) (*domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w: %w", path, domain.ErrIngestionFailure, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("ingest %s: is a directory: %w", path, domain.ErrInvalidInput)
	}
	if info.Size() > domain.MaxUploadSize {
		return nil, fmt.Errorf("ingest %s: %w", path, domain.ErrDocumentTooLarge)
	}

	if fileType == "" {
		if fileType, err = domain.FileTypeFromPath(path); err != nil {
			return nil, fmt.Errorf("ingest %s: %w", path, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w: %w", path, domain.ErrIngestionFailure, err)
	}
	return s.IngestBytes(ctx, filepath.Base(path), data, fileType)
}

// IngestBytes stores uploaded content under the given file name.
func (s *IngestService) IngestBytes(
	ctx context.Context, name string, data []byte, fileType domain.FileType,
) (*domain.Document, error) {
	if s.docStore == nil || s.normalisers == nil {
		return nil, domain.ErrNotImplemented
	}
	if fileType == "" {
		ft, err := domain.FileTypeFromPath(name)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", name, err)
		}
		fileType = ft
	}
	if fileType == domain.FileTypeURL {
		return nil, fmt.Errorf("ingest %s: url documents are fetched, not uploaded: %w",
			name, domain.ErrInvalidInput)
	}
	if int64(len(data)) > domain.MaxUploadSize {
		return nil, fmt.Errorf("ingest %s: %w", name, domain.ErrDocumentTooLarge)
	}

	raw := &domain.RawDocument{Name: name, FileType: fileType, Content: data}
	res, err := s.normalise(ctx, raw)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(name)
	if title == "" {
		title = UntitledDocument
	}
	size := raw.Size()
	doc := &domain.Document{
		ID:        s.newID(),
		Title:     title,
		Content:   res.Content,
		FileType:  fileType,
		Timestamp: s.now().UTC(),
		Size:      &size,
	}
	return s.store(ctx, doc)
}

// IngestURL fetches and stores a web page.
// The title is the page title, or the host name when the page has none.
func (s *IngestService) IngestURL(ctx context.Context, rawURL string) (*domain.Document, error) {
	if s.docStore == nil || s.normalisers == nil || s.fetcher == nil {
		return nil, domain.ErrNotImplemented
	}
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("ingest url %q: %w", rawURL, domain.ErrInvalidInput)
	}

	logger.Debug("Fetching %s", rawURL)
	raw, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if errors.Is(err, domain.ErrIngestionFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("ingest url %s: %w: %w", rawURL, domain.ErrIngestionFailure, err)
	}
	raw.FileType = domain.FileTypeURL
	raw.URL = rawURL

	res, err := s.normalise(ctx, raw)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(res.Title)
	if title == "" {
		title = u.Hostname()
	}
	doc := &domain.Document{
		ID:        s.newID(),
		Title:     title,
		Content:   res.Content,
		FileType:  domain.FileTypeURL,
		Timestamp: s.now().UTC(),
		URL:       rawURL,
	}
	return s.store(ctx, doc)
}

// IngestPaths ingests files, and the supported files inside directories.
// Hidden files and directories are skipped. Each failure is returned
// alongside the documents that were stored.
func (s *IngestService) IngestPaths(ctx context.Context, paths []string) ([]*domain.Document, []error) {
	var docs []*domain.Document
	var errs []error

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			errs = append(errs, fmt.Errorf("ingest %s: %w: %w", root, domain.ErrIngestionFailure, err))
			continue
		}
		if !info.IsDir() {
			doc, err := s.IngestFile(ctx, root, "")
			if err != nil {
				errs = append(errs, err)
				continue
			}
			docs = append(docs, doc)
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				errs = append(errs, fmt.Errorf("ingest %s: %w: %w", path, domain.ErrIngestionFailure, err))
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if path != root && IsHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !IsSupportedFile(path) {
				return nil
			}
			doc, err := s.IngestFile(ctx, path, "")
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			docs = append(docs, doc)
			return nil
		})
		if walkErr != nil {
			errs = append(errs, fmt.Errorf("ingest %s: %w", root, walkErr))
		}
	}

	logger.Info("Ingested %d documents from %d paths (%d failures)", len(docs), len(paths), len(errs))
	return docs, errs
}

func (s *IngestService) normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	n, err := s.normalisers.Get(raw.FileType)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", raw.Name, err)
	}
	res, err := n.Normalise(ctx, raw)
	if err != nil {
		if errors.Is(err, domain.ErrIngestionFailure) {
			return nil, fmt.Errorf("ingest %s: %w", raw.Name, err)
		}
		return nil, fmt.Errorf("ingest %s: %w: %w", raw.Name, domain.ErrIngestionFailure, err)
	}
	return res, nil
}

func (s *IngestService) store(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if err := s.docStore.Add(ctx, doc); err != nil {
		return nil, fmt.Errorf("store %s: %w", doc.Title, err)
	}
	logger.Info("Ingested %s %q (%d chars)", doc.FileType, doc.Title, len(doc.Content))
	return doc, nil
}

// IsSupportedFile reports whether a file extension maps to a file type.
func IsSupportedFile(path string) bool {
	_, err := domain.FileTypeFromPath(path)
	return err == nil
}

// IsHidden reports whether the base name of path starts with a dot.
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
