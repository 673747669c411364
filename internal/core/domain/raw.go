package domain

// RawDocument is the input handed to a normaliser by an ingestion
// collaborator: file bytes and a declared type, or a fetched page.
type RawDocument struct {
	// Name is the original file name, or the URL for fetched pages.
	Name string

	// FileType is the declared type of the content.
	FileType FileType

	// Content is the raw bytes.
	Content []byte

	// URL is set for fetched pages.
	URL string

	// Title is an optional title supplied by the collaborator.
	Title string
}

// Size returns the byte length of the raw content.
func (r *RawDocument) Size() int64 {
	return int64(len(r.Content))
}
