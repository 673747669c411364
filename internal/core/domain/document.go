package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// FileType identifies how a document's content was obtained.
type FileType string

const (
	// FileTypePDF is text extracted from a PDF file.
	FileTypePDF FileType = "pdf"

	// FileTypeMarkdown is a Markdown file.
	FileTypeMarkdown FileType = "markdown"

	// FileTypeHTML is an HTML file.
	FileTypeHTML FileType = "html"

	// FileTypeURL is a fetched web page.
	FileTypeURL FileType = "url"
)

// AllFileTypes returns every supported file type.
func AllFileTypes() []FileType {
	return []FileType{FileTypePDF, FileTypeMarkdown, FileTypeHTML, FileTypeURL}
}

// IsValid reports whether the file type is one of the supported types.
func (f FileType) IsValid() bool {
	switch f {
	case FileTypePDF, FileTypeMarkdown, FileTypeHTML, FileTypeURL:
		return true
	}
	return false
}

// String returns the wire name of the file type.
func (f FileType) String() string {
	return string(f)
}

// ParseFileType converts a declared type name into a FileType.
func ParseFileType(s string) (FileType, error) {
	ft := FileType(strings.ToLower(strings.TrimSpace(s)))
	if !ft.IsValid() {
		return "", ErrUnsupportedType
	}
	return ft, nil
}

// FileTypeFromPath detects the file type from a file extension.
// Unknown extensions return ErrUnsupportedType.
func FileTypeFromPath(path string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FileTypePDF, nil
	case ".md", ".markdown":
		return FileTypeMarkdown, nil
	case ".html", ".htm":
		return FileTypeHTML, nil
	}
	return "", ErrUnsupportedType
}

// Document is an ingested document held in the corpus.
// Content is plain text and never changes once the document is stored.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id" yaml:"id"`

	// Title is the human-readable title (file name or page title).
	Title string `json:"title" yaml:"title"`

	// Content is the extracted plain text.
	Content string `json:"content" yaml:"content"`

	// FileType records how the content was obtained.
	FileType FileType `json:"fileType" yaml:"fileType"`

	// Timestamp is when the document was ingested.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Size is the original byte size for uploaded files.
	Size *int64 `json:"size,omitempty" yaml:"size,omitempty"`

	// URL is the address of a fetched page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Summary returns the listing projection of the document.
func (d *Document) Summary() DocumentSummary {
	s := DocumentSummary{
		ID:        d.ID,
		Title:     d.Title,
		FileType:  d.FileType,
		Timestamp: d.Timestamp,
		Size:      d.Size,
	}
	if d.URL != "" {
		u := d.URL
		s.URL = &u
	}
	return s
}

// DocumentSummary is a document without its content.
// Size and URL are null when the document has none.
type DocumentSummary struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	FileType  FileType  `json:"fileType" yaml:"fileType"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Size      *int64    `json:"size" yaml:"size"`
	URL       *string   `json:"url" yaml:"url"`
}
