package services

import (
	"strings"
	"testing"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func stripMarkers(snippet string) string {
	snippet = strings.ReplaceAll(snippet, emphasisOpen, "")
	snippet = strings.ReplaceAll(snippet, emphasisClose, "")
	return strings.TrimPrefix(strings.TrimSuffix(snippet, ellipsisMarker), ellipsisMarker)
}

func TestQueryTerms_DropsShortTerms(t *testing.T) {
	svc := NewHighlightService()

	terms := svc.QueryTerms("The Red Book of It")
	assert.Equal(t, []string{"the", "red", "book"}, terms)
}

func TestExtract_EmphasizesMatch(t *testing.T) {
	svc := NewHighlightService()
	entity := entities.RawEntity{"name": "Springfield High"}

	highlights := svc.Extract(entity, "springfield")

	assert.Equal(t, []string{"<em>Springfield</em> High"}, highlights)
}

func TestExtract_EmphasizesEveryOccurrence(t *testing.T) {
	svc := NewHighlightService()
	entity := entities.RawEntity{"name": "Red book red kite"}

	highlights := svc.Extract(entity, "red")

	assert.Equal(t, []string{"<em>Red</em> book <em>red</em> kite"}, highlights)
}

func TestExtract_TruncatesWithEllipsis(t *testing.T) {
	svc := NewHighlightService()
	value := "AAAA BBBB CCCC DDDD EEEE jumps FFFF GGGG HHHH IIII JJJJ"
	entity := entities.RawEntity{"description": value}

	highlights := svc.Extract(entity, "jumps")

	assert.Len(t, highlights, 1)
	snippet := highlights[0]
	assert.True(t, strings.HasPrefix(snippet, ellipsisMarker))
	assert.True(t, strings.HasSuffix(snippet, ellipsisMarker))
	assert.Contains(t, snippet, "<em>jumps</em>")

	// The snippet, markers aside, is a verbatim substring of the field
	assert.Contains(t, value, stripMarkers(snippet))
}

func TestExtract_ShortQueryYieldsNoHighlights(t *testing.T) {
	svc := NewHighlightService()
	entity := entities.RawEntity{"name": "Jo Ann"}

	highlights := svc.Extract(entity, "jo")

	assert.NotNil(t, highlights)
	assert.Empty(t, highlights)
}

func TestExtract_ScansFieldsDeterministically(t *testing.T) {
	svc := NewHighlightService()
	entity := entities.RawEntity{
		"city":  "Lagos Island",
		"name":  "Lagos Grammar School",
		"email": "info@lagosgrammar.edu",
	}

	first := svc.Extract(entity, "lagos")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, svc.Extract(entity, "lagos"))
	}
	// city, email, name in sorted field order
	assert.Len(t, first, 3)
	assert.Contains(t, first[0], "Island")
}

func TestExtract_SkipsNonStringFields(t *testing.T) {
	svc := NewHighlightService()
	entity := entities.RawEntity{"name": "Springfield High", "rating": 4.5}

	highlights := svc.Extract(entity, "springfield")
	assert.Len(t, highlights, 1)
}

func TestExtract_MultiByteSafe(t *testing.T) {
	svc := NewHighlightService()
	entity := entities.RawEntity{"name": "École Élémentaire Springfield très réputée à Paris"}

	highlights := svc.Extract(entity, "springfield")

	assert.Len(t, highlights, 1)
	// Valid UTF-8 after window clamping
	assert.True(t, strings.Contains(highlights[0], "<em>Springfield</em>"))
	for _, r := range highlights[0] {
		assert.NotEqual(t, '�', r)
	}
}
