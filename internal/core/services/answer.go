package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// Answer texts.
const (
	// NoResultsAnswer is returned when no document matches the question.
	NoResultsAnswer = "I couldn't find relevant information in the uploaded documents to answer your question."

	// answerHeader opens an answer built from passages.
	answerHeader = "Based on the uploaded documents, here's what I found:"

	noPassagesAnswer = "I found %d relevant document(s) but couldn't extract specific passages " +
		"that directly answer your question. The documents contain information related to your " +
		"query, but may require more specific questions to get detailed answers."
)

// NoPassagesAnswer returns the answer used when documents matched but no
// passage could be extracted from any of them.
func NoPassagesAnswer(matched int) string {
	return fmt.Sprintf(noPassagesAnswer, matched)
}

// Synthesize composes the answer from ranked documents and their passages.
// totalPassages is the number of passages gathered across all ranked
// documents; it drives the confidence estimate.
func Synthesize(ranked []domain.ScoredDocument, totalPassages int) domain.AnswerResult {
	if len(ranked) == 0 {
		return domain.AnswerResult{
			Text:       NoResultsAnswer,
			Sources:    []domain.Source{},
			Confidence: 0,
		}
	}

	result := domain.AnswerResult{
		Sources:    []domain.Source{},
		Confidence: EstimateConfidence(len(ranked), totalPassages),
	}

	if totalPassages == 0 {
		result.Text = NoPassagesAnswer(len(ranked))
		return result
	}

	var b strings.Builder
	b.WriteString(answerHeader)
	b.WriteString("\n\n")
	for _, sd := range ranked {
		if len(result.Sources) == domain.MaxAnswerDocuments {
			break
		}
		if len(sd.Passages) == 0 {
			continue
		}
		passage := sd.Passages[0]
		fmt.Fprintf(&b, "From \"%s\":\n%s\n\n", sd.Document.Title, passage)
		result.Sources = append(result.Sources, domain.Source{
			Title:     sd.Document.Title,
			FileType:  sd.Document.FileType,
			Relevance: sd.Score,
			Passage:   domain.Excerpt(passage, domain.MaxSourceExcerpt),
		})
	}
	result.Text = strings.TrimSpace(b.String())
	return result
}

// EstimateConfidence derives a bounded confidence from the number of
// ranked documents and the number of passages gathered across them.
// The result is never above domain.MaxConfidence.
func EstimateConfidence(ranked, passages int) int {
	c := (float64(ranked)*0.2 + float64(passages)*0.1) * 100
	c = math.Min(c, domain.MaxConfidence)
	if c < 0 {
		c = 0
	}
	return int(math.Round(c))
}
