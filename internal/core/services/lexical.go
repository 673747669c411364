package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// Tokenize lower-cases a question and splits it on runs of whitespace.
// Punctuation is kept, so "cat." only matches "cat." in content.
// Blank input yields no tokens.
func Tokenize(question string) []string {
	return strings.Fields(strings.ToLower(question))
}

// Score sums, over all tokens, the non-overlapping occurrences of the token
// in the lower-cased content. Tokens are matched as literal substrings.
func Score(content string, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	score := 0
	for _, t := range tokens {
		if t == "" {
			continue
		}
		score += strings.Count(lower, t)
	}
	return score
}

// Rank keeps documents with a positive score, orders them by descending
// score and returns at most domain.MaxRankedDocuments. Equal scores keep
// their corpus order.
func Rank(scored []domain.ScoredDocument) []domain.ScoredDocument {
	ranked := make([]domain.ScoredDocument, 0, len(scored))
	for _, sd := range scored {
		if sd.Score > 0 {
			ranked = append(ranked, sd)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > domain.MaxRankedDocuments {
		ranked = ranked[:domain.MaxRankedDocuments]
	}
	return ranked
}

// ExtractPassages returns up to limit sentences of content that contain at
// least one token, case-insensitively. Sentences are trimmed and those
// shorter than domain.MinPassageLength are dropped before the limit applies.
func ExtractPassages(content string, tokens []string, limit int) []string {
	if len(tokens) == 0 || limit <= 0 {
		return nil
	}
	if limit > domain.MaxPassagesPerDocument {
		limit = domain.MaxPassagesPerDocument
	}

	var passages []string
	for _, sentence := range splitSentences(content) {
		if !containsAny(strings.ToLower(sentence), tokens) {
			continue
		}
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) < domain.MinPassageLength {
			continue
		}
		passages = append(passages, sentence)
		if len(passages) == limit {
			break
		}
	}
	return passages
}

// splitSentences splits content on runs of '.', '!' and '?'.
// The terminators are not part of the returned sentences.
func splitSentences(content string) []string {
	return strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}
