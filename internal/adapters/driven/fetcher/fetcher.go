package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent identifies the fetcher to web servers.
	UserAgent = "askdocs/1.0 (+https://github.com/custodia-labs/askdocs)"
)

// ErrRateLimited is returned when a server answers 429.
var ErrRateLimited = errors.New("rate limited")

// Config configures a Fetcher.
type Config struct {
	Timeout   time.Duration
	RateLimit RateLimitConfig
	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Fetcher downloads web pages over HTTP.
type Fetcher struct {
	client      *http.Client
	rateLimiter *RateLimiter
	maxBytes    int64
}

// New creates a fetcher.
func New(cfg Config) *Fetcher {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{
		client:      client,
		rateLimiter: NewRateLimiter(cfg.RateLimit),
		maxBytes:    domain.MaxUploadSize,
	}
}

// Fetch downloads rawURL and returns the body as an HTML raw document.
// Bodies over domain.MaxUploadSize are rejected.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.RawDocument, error) {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, domain.ErrInvalidInput)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %w", rawURL, domain.ErrIngestionFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		f.rateLimiter.RecordRateLimitError(retryAfter(resp.Header.Get("Retry-After")))
		return nil, fmt.Errorf("fetch %s: %w: %w", rawURL, domain.ErrIngestionFailure, ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: status %d", rawURL, domain.ErrIngestionFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %w", rawURL, domain.ErrIngestionFailure, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, domain.ErrDocumentTooLarge)
	}
	logger.Debug("Fetched %s: %d bytes in %s", rawURL, len(body), time.Since(start))

	return &domain.RawDocument{
		Name:     rawURL,
		FileType: domain.FileTypeURL,
		Content:  body,
		URL:      rawURL,
	}, nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
