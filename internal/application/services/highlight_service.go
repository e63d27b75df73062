package services

import (
	"strings"
	"unicode/utf8"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
)

const (
	// minTermRunes drops one- and two-letter query terms, which match
	// almost everything and produce noisy highlights
	minTermRunes = 3

	// snippetRadius is how many bytes of surrounding context a
	// highlight keeps on each side of the first term occurrence
	snippetRadius = 20

	ellipsisMarker = "..."
	emphasisOpen   = "<em>"
	emphasisClose  = "</em>"
)

// HighlightService produces bounded, emphasized snippets around query
// term occurrences in an entity's string fields.
type HighlightService struct{}

// NewHighlightService creates a new highlight service
func NewHighlightService() *HighlightService {
	return &HighlightService{}
}

// QueryTerms lowercases the query, splits it on whitespace, and
// discards terms shorter than three runes
func (s *HighlightService) QueryTerms(queryText string) []string {
	fields := strings.Fields(strings.ToLower(queryText))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTermRunes {
			terms = append(terms, f)
		}
	}
	return terms
}

// Extract returns one snippet per (string field, matching term) pair.
// Fields are scanned in sorted name order so repeated calls yield the
// same highlight sequence. The result is never nil.
func (s *HighlightService) Extract(entity entities.RawEntity, queryText string) []string {
	highlights := []string{}
	terms := s.QueryTerms(queryText)
	if len(terms) == 0 {
		return highlights
	}

	for _, name := range entity.StringFieldNames() {
		value := entity.StringField(name)
		if value == "" {
			continue
		}
		lower := strings.ToLower(value)
		for _, term := range terms {
			idx := strings.Index(lower, term)
			if idx < 0 {
				continue
			}
			highlights = append(highlights, s.snippet(value, term, idx))
		}
	}

	return highlights
}

// snippet cuts a window around the first occurrence, keeping the
// original casing and never splitting a multi-byte character
func (s *HighlightService) snippet(value, term string, idx int) string {
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(term) + snippetRadius
	if end > len(value) {
		end = len(value)
	}
	for start > 0 && !utf8.RuneStart(value[start]) {
		start--
	}
	for end < len(value) && !utf8.RuneStart(value[end]) {
		end++
	}

	snippet := emphasizeTerm(value[start:end], term)
	if start > 0 {
		snippet = ellipsisMarker + snippet
	}
	if end < len(value) {
		snippet += ellipsisMarker
	}
	return snippet
}

// emphasizeTerm wraps every case-insensitive occurrence of term in
// emphasis markers, preserving the original casing of the snippet
func emphasizeTerm(snippet, term string) string {
	lower := strings.ToLower(snippet)
	var b strings.Builder
	pos := 0
	for {
		idx := strings.Index(lower[pos:], term)
		if idx < 0 {
			b.WriteString(snippet[pos:])
			break
		}
		idx += pos
		b.WriteString(snippet[pos:idx])
		b.WriteString(emphasisOpen)
		b.WriteString(snippet[idx : idx+len(term)])
		b.WriteString(emphasisClose)
		pos = idx + len(term)
	}
	return b.String()
}
