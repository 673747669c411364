package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/askdocs/internal/logger"
)

// Error messages returned to clients.
const (
	msgNoFile          = "No file uploaded"
	msgURLRequired     = "URL is required"
	msgInvalidURL      = "Invalid URL"
	msgUnsupportedType = "Unsupported file type"
	msgTooLarge        = "File too large"
	msgProcessFailed   = "Failed to process file"
	msgUploadFailed    = "Upload failed"
	msgNotFound        = "Document not found"
	msgDeleteFailed    = "Failed to delete document"
	msgListFailed      = "Failed to list documents"
	msgQuestion        = "Question is required"
	msgNoDocuments     = "No documents uploaded. Please upload documents first."
	msgQueryFailed     = "Failed to process query"
	msgHistoryFailed   = "Failed to load history"
	msgInvalidBody     = "Invalid request body"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorHandler renders errors as ErrorResponse.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = http.StatusText(code)
		}
	} else {
		logger.Error("Unhandled API error: %v", err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, ErrorResponse{Error: msg})
	}
	if writeErr != nil {
		logger.Warn("Failed to write error response: %v", writeErr)
	}
}
