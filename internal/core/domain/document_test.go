package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileType_IsValid(t *testing.T) {
	for _, ft := range AllFileTypes() {
		assert.True(t, ft.IsValid(), ft.String())
	}
	assert.False(t, FileType("docx").IsValid())
	assert.False(t, FileType("").IsValid())
}

func TestParseFileType(t *testing.T) {
	tests := []struct {
		input   string
		want    FileType
		wantErr bool
	}{
		{"pdf", FileTypePDF, false},
		{"Markdown", FileTypeMarkdown, false},
		{" html ", FileTypeHTML, false},
		{"url", FileTypeURL, false},
		{"txt", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFileType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileTypeFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    FileType
		wantErr bool
	}{
		{"/docs/report.pdf", FileTypePDF, false},
		{"README.md", FileTypeMarkdown, false},
		{"notes.MARKDOWN", FileTypeMarkdown, false},
		{"index.html", FileTypeHTML, false},
		{"page.htm", FileTypeHTML, false},
		{"data.csv", "", true},
		{"noextension", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FileTypeFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDocument_Summary tests the listing projection of a file upload
func TestDocument_Summary(t *testing.T) {
	now := time.Now()
	size := int64(42)
	doc := &Document{
		ID:        "doc-1",
		Title:     "notes.md",
		Content:   "content is not part of the summary",
		FileType:  FileTypeMarkdown,
		Timestamp: now,
		Size:      &size,
	}

	s := doc.Summary()

	assert.Equal(t, "doc-1", s.ID)
	assert.Equal(t, "notes.md", s.Title)
	assert.Equal(t, FileTypeMarkdown, s.FileType)
	assert.Equal(t, now, s.Timestamp)
	require.NotNil(t, s.Size)
	assert.Equal(t, int64(42), *s.Size)
	assert.Nil(t, s.URL)
}

// TestDocument_Summary_URL tests the listing projection of a fetched page
func TestDocument_Summary_URL(t *testing.T) {
	doc := &Document{
		ID:       "doc-2",
		Title:    "example.com",
		FileType: FileTypeURL,
		URL:      "https://example.com",
	}

	s := doc.Summary()

	assert.Nil(t, s.Size)
	require.NotNil(t, s.URL)
	assert.Equal(t, "https://example.com", *s.URL)
}
