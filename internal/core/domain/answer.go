package domain

import "time"

// Pipeline limits. Tests exercise these values at their cutoffs.
const (
	// PreviewLength is the length of an answer preview in history listings.
	PreviewLength = 150

	// MaxSourceExcerpt is the length a source passage is cut to.
	MaxSourceExcerpt = 200

	// MaxRankedDocuments is how many scored documents survive ranking.
	MaxRankedDocuments = 5

	// MaxAnswerDocuments is how many ranked documents may appear in an answer.
	MaxAnswerDocuments = 3

	// MaxTotalPassages caps passages gathered across all ranked documents.
	MaxTotalPassages = 10

	// MinPassageLength is the shortest trimmed sentence kept as a passage.
	MinPassageLength = 11

	// MaxPassagesPerDocument caps passages extracted from one document.
	MaxPassagesPerDocument = 3

	// MaxConfidence is the hard ceiling on confidence.
	MaxConfidence = 95

	// MaxUploadSize is the largest accepted upload, in bytes.
	MaxUploadSize int64 = 10 * 1024 * 1024
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// ScoredDocument is a document paired with its lexical score for one query.
type ScoredDocument struct {
	// Document is shared with the store and must not be modified.
	Document *Document

	// Score is the total count of literal token occurrences in the content.
	Score int

	// Passages are relevant sentences in document order.
	Passages []string
}

// Source attributes part of an answer to a document.
type Source struct {
	Title     string   `json:"title" yaml:"title"`
	FileType  FileType `json:"fileType" yaml:"fileType"`
	Relevance int      `json:"relevance" yaml:"relevance"`
	Passage   string   `json:"passage" yaml:"passage"`
}

// AnswerResult is the outcome of a successful query.
// A query that finds nothing is still an AnswerResult, with zero confidence.
type AnswerResult struct {
	// Text is the extractive answer.
	Text string `json:"answer" yaml:"answer"`

	// Sources lists the documents quoted in Text, at most MaxAnswerDocuments.
	Sources []Source `json:"sources" yaml:"sources"`

	// Confidence is a heuristic in [0, MaxConfidence].
	Confidence int `json:"confidence" yaml:"confidence"`

	// Timestamp is when the answer was produced.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// HistoryEntry records an answered question.
type HistoryEntry struct {
	ID        string       `json:"id" yaml:"id"`
	Question  string       `json:"question" yaml:"question"`
	Answer    AnswerResult `json:"answer" yaml:"answer"`
	Timestamp time.Time    `json:"timestamp" yaml:"timestamp"`
}

// HistoryStats summarises the answer history.
type HistoryStats struct {
	// Total is the number of recorded answers.
	Total int `json:"total" yaml:"total"`

	// AverageConfidence is the mean over answers with non-zero confidence.
	AverageConfidence int `json:"averageConfidence" yaml:"averageConfidence"`
}

// Truncate shortens s to at most n characters and appends Ellipsis when it was cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + Ellipsis
}

// Excerpt returns the first n characters of s followed by Ellipsis.
// The marker is always appended, so short passages read as excerpts too.
func Excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + Ellipsis
}
