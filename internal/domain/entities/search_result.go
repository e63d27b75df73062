package entities

// SearchResult is one normalized match produced by a result mapper.
// Ordering between results with equal relevance is stabilized by
// (type, id) ascending so pagination stays deterministic.
type SearchResult struct {
	Type           EntityType             `json:"type"`
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Subtitle       string                 `json:"subtitle"`
	RelevanceScore float64                `json:"relevance_score"`
	Highlights     []string               `json:"highlights"`
	SchoolID       string                 `json:"school_id,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// ProviderOutcome is the settled result of one fan-out branch. A
// non-nil Err implies empty Results and a zero TotalCount for that
// branch; it never aborts the sibling branches.
type ProviderOutcome struct {
	EntityType EntityType
	Results    []SearchResult
	TotalCount int
	Err        error
}

// SearchMeta describes the shape of an aggregated response
type SearchMeta struct {
	Query            string             `json:"query"`
	Page             int                `json:"page"`
	Limit            int                `json:"limit"`
	TotalItems       int                `json:"total_items"`
	TotalPages       int                `json:"total_pages"`
	HasNextPage      bool               `json:"has_next_page"`
	HasPrevPage      bool               `json:"has_prev_page"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	ResultsByType    map[EntityType]int `json:"results_by_type"`
}

// AggregatedResult is the unit placed in and retrieved from the search
// cache: one page window of globally ranked results plus metadata and
// query suggestions. It is fully reconstructible from its JSON form.
type AggregatedResult struct {
	Results     []SearchResult `json:"results"`
	Meta        SearchMeta     `json:"meta"`
	Suggestions []string       `json:"suggestions"`
}
