package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
)

const (
	maxSuggestions      = 5
	suggestionSeedCount = 3

	// minSuggestionTermRunes keeps only query terms long enough to be
	// worth echoing back as a completion
	minSuggestionTermRunes = 4
)

// SuggestionService derives query-completion suggestions from the top
// ranked results plus salient query terms.
type SuggestionService struct{}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService() *SuggestionService {
	return &SuggestionService{}
}

// Generate seeds suggestions from the titles of the globally top
// ranked results, then appends capitalized long query terms that are
// not already represented. Order is best guess first; at most five
// entries are returned and the result is never nil.
func (s *SuggestionService) Generate(queryText string, ranked []entities.SearchResult) []string {
	suggestions := []string{}
	seen := make(map[string]struct{})

	for _, result := range ranked {
		if len(suggestions) >= suggestionSeedCount {
			break
		}
		title := strings.TrimSpace(result.Title)
		if title == "" || title == missingFieldPlaceholder {
			continue
		}
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, title)
	}

	for _, term := range strings.Fields(strings.ToLower(queryText)) {
		if utf8.RuneCountInString(term) < minSuggestionTermRunes {
			continue
		}
		if anyContains(suggestions, term) {
			continue
		}
		suggestions = append(suggestions, capitalize(term))
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// anyContains reports whether term already appears, case-insensitively,
// inside any current suggestion
func anyContains(suggestions []string, term string) bool {
	for _, s := range suggestions {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func capitalize(term string) string {
	r, size := utf8.DecodeRuneInString(term)
	if r == utf8.RuneError {
		return term
	}
	return string(unicode.ToUpper(r)) + term[size:]
}
