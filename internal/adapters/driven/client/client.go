// Package client talks to a running askdocs HTTP API.
//
// It implements the query and document services so the CLI can work
// against a shared server instead of an in-process corpus.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driving.QueryService    = (*Client)(nil)
	_ driving.DocumentService = (*Client)(nil)
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the number of extra attempts Ask makes on failure.
	MaxRetries = 2

	// RetryDelay is multiplied by the attempt number between retries.
	RetryDelay = time.Second
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the request may succeed when repeated.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// DeleteResult reports the outcome of DeleteMany.
type DeleteResult struct {
	Successful int
	Failed     int
	Total      int
}

// Client is an HTTP client for the askdocs API.
type Client struct {
	baseURL    string
	http       *http.Client
	retryDelay time.Duration
}

// New creates a client for the server at baseURL ("http://localhost:8080").
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("server url %q: %w", baseURL, domain.ErrInvalidInput)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		http:       httpClient,
		retryDelay: RetryDelay,
	}, nil
}

// Ask submits a question, retrying failed attempts with linear backoff.
// Client errors other than 429 are returned without retrying.
func (c *Client) Ask(ctx context.Context, question string) (*domain.AnswerResult, error) {
	body := map[string]string{"question": question}

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(attempt)
			logger.Debug("Retrying query in %s (attempt %d/%d)", delay, attempt, MaxRetries)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		var answer domain.AnswerResult
		err := c.do(ctx, http.MethodPost, "/api/query", body, &answer)
		if err == nil {
			return &answer, nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, mapError(lastErr)
}

// List returns document summaries.
func (c *Client) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	var resp struct {
		Documents []domain.DocumentSummary `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/upload/documents", nil, &resp); err != nil {
		return nil, mapError(err)
	}
	if resp.Documents == nil {
		resp.Documents = []domain.DocumentSummary{}
	}
	return resp.Documents, nil
}

// Get returns a document by ID. The API has no single-document route, so
// only summary fields are filled in.
func (c *Client) Get(ctx context.Context, id string) (*domain.Document, error) {
	docs, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID != id {
			continue
		}
		doc := &domain.Document{
			ID:        d.ID,
			Title:     d.Title,
			FileType:  d.FileType,
			Timestamp: d.Timestamp,
			Size:      d.Size,
		}
		if d.URL != nil {
			doc.URL = *d.URL
		}
		return doc, nil
	}
	return nil, domain.ErrNotFound
}

// Delete removes a document and returns its id and title.
func (c *Client) Delete(ctx context.Context, id string) (*domain.Document, error) {
	var resp struct {
		Document struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"document"`
	}
	path := "/api/upload/documents/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, mapError(err)
	}
	return &domain.Document{ID: resp.Document.ID, Title: resp.Document.Title}, nil
}

// DeleteMany deletes documents one by one and reports how many succeeded.
func (c *Client) DeleteMany(ctx context.Context, ids []string) DeleteResult {
	result := DeleteResult{Total: len(ids)}
	for _, id := range ids {
		if _, err := c.Delete(ctx, id); err != nil {
			logger.Warn("Failed to delete %s: %v", id, err)
			result.Failed++
			continue
		}
		result.Successful++
	}
	return result
}

// Count returns the number of documents.
func (c *Client) Count(ctx context.Context) (int, error) {
	docs, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapError turns API errors back into domain errors where one fits.
func mapError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case apiErr.StatusCode == http.StatusBadRequest && strings.HasPrefix(apiErr.Message, "Question is required"):
		return fmt.Errorf("%w: %w", domain.ErrEmptyQuestion, err)
	case apiErr.StatusCode == http.StatusBadRequest && strings.HasPrefix(apiErr.Message, "No documents uploaded"):
		return fmt.Errorf("%w: %w", domain.ErrNoDocuments, err)
	case apiErr.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return err
}
