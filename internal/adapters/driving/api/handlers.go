package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/services"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
}

// URLUploadRequest is the JSON body of POST /api/upload for web pages.
type URLUploadRequest struct {
	FileType string `json:"fileType"`
	URL      string `json:"url"`
}

// DocumentsResponse is the response body for GET /api/upload/documents.
type DocumentsResponse struct {
	Documents []domain.DocumentSummary `json:"documents"`
}

// DeletedDocument identifies a deleted document.
type DeletedDocument struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DeleteResponse is the response body for DELETE /api/upload/documents/:id.
type DeleteResponse struct {
	Message  string          `json:"message"`
	Document DeletedDocument `json:"document"`
}

// QueryRequest is the request body for POST /api/query.
type QueryRequest struct {
	Question string `json:"question"`
}

// HistoryItem is one answered question in GET /api/history.
type HistoryItem struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Preview    string    `json:"preview"`
	Confidence int       `json:"confidence"`
	Sources    int       `json:"sources"`
	Timestamp  time.Time `json:"timestamp"`
}

// HistoryResponse is the response body for GET /api/history.
type HistoryResponse struct {
	Entries []HistoryItem       `json:"entries"`
	Stats   domain.HistoryStats `json:"stats"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(c echo.Context) error {
	n, err := s.services.Documents.Count(c.Request().Context())
	if err != nil {
		logger.Warn("Health check could not count documents: %v", err)
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Documents: n})
}

// handleUpload stores a multipart file upload, or a URL sent as JSON.
func (s *Server) handleUpload(c echo.Context) error {
	ctx := c.Request().Context()

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var req URLUploadRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
		}
		if req.FileType != string(domain.FileTypeURL) {
			return echo.NewHTTPError(http.StatusBadRequest, msgNoFile)
		}
		if strings.TrimSpace(req.URL) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, msgURLRequired)
		}
		doc, err := s.services.Ingest.IngestURL(ctx, req.URL)
		if err != nil {
			return uploadError(err)
		}
		return c.JSON(http.StatusOK, doc)
	}

	file, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgNoFile)
	}

	var fileType domain.FileType
	if v := c.FormValue("fileType"); v != "" {
		if fileType, err = domain.ParseFileType(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, msgUnsupportedType)
		}
	}

	if file.Size > domain.MaxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, msgTooLarge)
	}
	src, err := file.Open()
	if err != nil {
		logger.Error("Open upload %s: %v", file.Filename, err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgUploadFailed)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, domain.MaxUploadSize+1))
	if err != nil {
		logger.Error("Read upload %s: %v", file.Filename, err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgUploadFailed)
	}

	doc, err := s.services.Ingest.IngestBytes(ctx, file.Filename, data, fileType)
	if err != nil {
		return uploadError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

// uploadError maps an ingestion error to a response.
func uploadError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		return echo.NewHTTPError(http.StatusBadRequest, msgUnsupportedType)
	case errors.Is(err, domain.ErrDocumentTooLarge):
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, msgTooLarge)
	case errors.Is(err, domain.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidURL)
	case errors.Is(err, domain.ErrIngestionFailure):
		logger.Error("Upload processing failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgProcessFailed)
	}
	logger.Error("Upload failed: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, msgUploadFailed)
}

func (s *Server) handleListDocuments(c echo.Context) error {
	docs, err := s.services.Documents.List(c.Request().Context())
	if err != nil {
		logger.Error("List documents: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgListFailed)
	}
	return c.JSON(http.StatusOK, DocumentsResponse{Documents: docs})
}

func (s *Server) handleDeleteDocument(c echo.Context) error {
	doc, err := s.services.Documents.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		logger.Error("Delete document: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgDeleteFailed)
	}
	return c.JSON(http.StatusOK, DeleteResponse{
		Message:  "Document deleted successfully",
		Document: DeletedDocument{ID: doc.ID, Title: doc.Title},
	})
}

func (s *Server) handleQuery(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	answer, err := s.services.Query.Ask(c.Request().Context(), req.Question)
	if err != nil {
		s.metrics.RecordQuery(OutcomeError, 0)
		switch {
		case errors.Is(err, domain.ErrEmptyQuestion):
			return echo.NewHTTPError(http.StatusBadRequest, msgQuestion)
		case errors.Is(err, domain.ErrNoDocuments):
			return echo.NewHTTPError(http.StatusBadRequest, msgNoDocuments)
		}
		logger.Error("Query failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgQueryFailed)
	}

	outcome := OutcomeAnswered
	if len(answer.Sources) == 0 {
		outcome = OutcomeEmpty
	}
	s.metrics.RecordQuery(outcome, answer.Confidence)

	return c.JSON(http.StatusOK, answer)
}

func (s *Server) handleHistory(c echo.Context) error {
	ctx := c.Request().Context()
	entries, err := s.services.History.List(ctx)
	if err != nil {
		logger.Error("List history: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgHistoryFailed)
	}
	stats, err := s.services.History.Stats(ctx)
	if err != nil {
		logger.Error("History stats: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgHistoryFailed)
	}

	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, HistoryItem{
			ID:         e.ID,
			Question:   e.Question,
			Preview:    services.Preview(e),
			Confidence: e.Answer.Confidence,
			Sources:    len(e.Answer.Sources),
			Timestamp:  e.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, HistoryResponse{Entries: items, Stats: stats})
}

func (s *Server) handleClearHistory(c echo.Context) error {
	if err := s.services.History.Clear(c.Request().Context()); err != nil {
		logger.Error("Clear history: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, msgHistoryFailed)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "History cleared"})
}
