// Package pdf provides a Normaliser for PDF files.
//
// Text is read with github.com/ledongthuc/pdf. Files the parser cannot read
// fall back to the printable characters of the raw bytes.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFileTypes returns the file types this normaliser handles.
func (n *Normaliser) SupportedFileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Normalise extracts the text of a PDF document.
// The title is the first non-empty line of the extracted text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := extractText(raw.Content)
	if err != nil {
		logger.Debug("PDF parser failed for %s, using printable fallback: %v", raw.Name, err)
		text = extractPrintableText(raw.Content)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("pdf %s: no extractable text: %w", raw.Name, domain.ErrIngestionFailure)
	}

	return &driven.NormaliseResult{
		Title:   extractTitle(text),
		Content: text,
	}, nil
}

// extractText reads the plain text layer. The parser panics on some
// malformed inputs, so panics are reported as errors.
func extractText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return "", fmt.Errorf("no text layer")
	}
	return string(out), nil
}

// extractPrintableText keeps printable characters and line breaks.
func extractPrintableText(in []byte) string {
	var out strings.Builder
	for len(in) > 0 {
		r, size := utf8.DecodeRune(in)
		in = in[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if r == '\n' || r == '\r' || r == '\t' || unicode.IsPrint(r) {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func extractTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
