package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

func newTestFetcher() *Fetcher {
	return New(Config{
		Timeout:   5 * time.Second,
		RateLimit: RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10},
	})
}

func TestFetch_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<title>Hi</title><p>body</p>"))
	}))
	defer server.Close()

	raw, err := newTestFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, UserAgent, gotUA)
	assert.Equal(t, domain.FileTypeURL, raw.FileType)
	assert.Equal(t, server.URL, raw.URL)
	assert.Equal(t, "<title>Hi</title><p>body</p>", string(raw.Content))
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrIngestionFailure)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_RateLimitedSetsBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := newTestFetcher()
	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.ErrorIs(t, err, domain.ErrIngestionFailure)
	assert.False(t, f.rateLimiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, server.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetch_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	f := newTestFetcher()
	f.maxBytes = 32

	_, err := f.Fetch(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrDocumentTooLarge)
}

func TestFetch_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), url)
	assert.ErrorIs(t, err, domain.ErrIngestionFailure)
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := newTestFetcher().Fetch(context.Background(), "http://bad host/")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 30*time.Second, retryAfter("30"))
	assert.Equal(t, time.Duration(0), retryAfter(""))
	assert.Equal(t, time.Duration(0), retryAfter("-5"))
	assert.Equal(t, time.Duration(0), retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}
