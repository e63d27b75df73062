package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	apperrors "github.com/schoolhubng/Schooladmindesign/backend/pkg/errors"
)

// Scoring weights. A term match in a title field always outweighs the
// same match in a secondary field; the score grows with the number and
// length of matched terms.
const (
	titleFieldWeight     = 3.0
	secondaryFieldWeight = 1.0
)

// missingFieldPlaceholder keeps titles and subtitles renderable when
// the underlying record lacks the expected fields
const missingFieldPlaceholder = "Untitled"

// SearchMapperService converts raw provider records into normalized
// search results, one mapping per entity type.
type SearchMapperService struct {
	highlighter *HighlightService
}

// NewSearchMapperService creates a new search mapper service
func NewSearchMapperService(highlighter *HighlightService) *SearchMapperService {
	return &SearchMapperService{highlighter: highlighter}
}

// Map builds the SearchResult for one raw match. Dispatch over the
// entity type is exhaustive: a type outside the closed set fails with
// an unsupported-type error rather than producing a half-mapped result.
func (s *SearchMapperService) Map(entityType entities.EntityType, raw entities.RawEntity, queryText string, highlights []string) (entities.SearchResult, error) {
	terms := s.highlighter.QueryTerms(queryText)

	var result entities.SearchResult
	switch entityType {
	case entities.EntityTypeSchool:
		result = s.mapSchool(raw, terms)
	case entities.EntityTypeStudent:
		result = s.mapStudent(raw, terms)
	case entities.EntityTypeProspect:
		result = s.mapProspect(raw, terms)
	case entities.EntityTypeUser:
		result = s.mapUser(raw, terms)
	case entities.EntityTypeAddress:
		result = s.mapAddress(raw, terms)
	default:
		return entities.SearchResult{}, apperrors.NewUnsupportedError(fmt.Sprintf("no result mapping for entity type %q", entityType))
	}

	result.Type = entityType
	result.ID = raw.StringField("id")
	if highlights == nil {
		highlights = []string{}
	}
	result.Highlights = highlights
	return result, nil
}

func (s *SearchMapperService) mapSchool(raw entities.RawEntity, terms []string) entities.SearchResult {
	return entities.SearchResult{
		Title:          orPlaceholder(raw.StringField("name")),
		Subtitle:       orPlaceholder(joinNonEmpty(raw.StringField("school_type"), raw.StringField("city"))),
		RelevanceScore: s.score(raw, terms, []string{"name"}, []string{"city", "email", "school_type"}),
		SchoolID:       raw.StringField("id"),
		Metadata:       metadataFields(raw, "school_type", "city", "state"),
	}
}

func (s *SearchMapperService) mapStudent(raw entities.RawEntity, terms []string) entities.SearchResult {
	return entities.SearchResult{
		Title:          orPlaceholder(fullName(raw)),
		Subtitle:       orPlaceholder(raw.StringField("email")),
		RelevanceScore: s.score(raw, terms, []string{"first_name", "last_name"}, []string{"email", "grade_level"}),
		SchoolID:       raw.StringField("school_id"),
		Metadata:       metadataFields(raw, "grade_level", "status"),
	}
}

func (s *SearchMapperService) mapProspect(raw entities.RawEntity, terms []string) entities.SearchResult {
	return entities.SearchResult{
		Title:          orPlaceholder(fullName(raw)),
		Subtitle:       orPlaceholder(raw.StringField("email")),
		RelevanceScore: s.score(raw, terms, []string{"first_name", "last_name"}, []string{"email", "status", "source"}),
		SchoolID:       raw.StringField("school_id"),
		Metadata:       metadataFields(raw, "status", "source"),
	}
}

func (s *SearchMapperService) mapUser(raw entities.RawEntity, terms []string) entities.SearchResult {
	return entities.SearchResult{
		Title:          orPlaceholder(fullName(raw)),
		Subtitle:       orPlaceholder(raw.StringField("email")),
		RelevanceScore: s.score(raw, terms, []string{"first_name", "last_name"}, []string{"email", "role"}),
		SchoolID:       raw.StringField("school_id"),
		Metadata:       metadataFields(raw, "role"),
	}
}

func (s *SearchMapperService) mapAddress(raw entities.RawEntity, terms []string) entities.SearchResult {
	return entities.SearchResult{
		Title:          orPlaceholder(raw.StringField("street")),
		Subtitle:       orPlaceholder(joinNonEmpty(raw.StringField("city"), raw.StringField("state"))),
		RelevanceScore: s.score(raw, terms, []string{"street"}, []string{"city", "state", "zip_code", "country"}),
		SchoolID:       raw.StringField("school_id"),
		Metadata:       metadataFields(raw, "city", "state", "country"),
	}
}

// score is a term-overlap heuristic: every term found as a substring
// of a field contributes that field's weight scaled by the term length
func (s *SearchMapperService) score(raw entities.RawEntity, terms []string, titleFields, secondaryFields []string) float64 {
	return fieldScore(raw, terms, titleFields, titleFieldWeight) +
		fieldScore(raw, terms, secondaryFields, secondaryFieldWeight)
}

func fieldScore(raw entities.RawEntity, terms []string, fields []string, weight float64) float64 {
	var score float64
	for _, field := range fields {
		value := strings.ToLower(raw.StringField(field))
		if value == "" {
			continue
		}
		for _, term := range terms {
			if strings.Contains(value, term) {
				score += weight * float64(utf8.RuneCountInString(term))
			}
		}
	}
	return score
}

func fullName(raw entities.RawEntity) string {
	return joinNonEmpty(raw.StringField("first_name"), raw.StringField("last_name"))
}

func joinNonEmpty(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return missingFieldPlaceholder
	}
	return value
}

func metadataFields(raw entities.RawEntity, fields ...string) map[string]interface{} {
	metadata := make(map[string]interface{})
	for _, field := range fields {
		if value := raw.StringField(field); value != "" {
			metadata[field] = value
		}
	}
	if len(metadata) == 0 {
		return nil
	}
	return metadata
}
