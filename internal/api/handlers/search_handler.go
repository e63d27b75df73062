package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	apperrors "github.com/schoolhubng/Schooladmindesign/backend/pkg/errors"
)

// SearchService defines the aggregated search operations used by the handler.
type SearchService interface {
	GlobalSearch(ctx context.Context, queryText string, params entities.SearchParams) (*entities.AggregatedResult, error)
	SearchEntities(ctx context.Context, entityTypes []entities.EntityType, queryText string, params entities.SearchParams) (*entities.AggregatedResult, error)
	GetSuggestions(ctx context.Context, queryText string, entityTypes []entities.EntityType) ([]string, error)
	IndexEntity(ctx context.Context, entityType entities.EntityType, entityID string) bool
	RebuildIndexes(ctx context.Context) bool
}

// SearchHandler exposes the cross-entity search aggregator over HTTP.
type SearchHandler struct {
	service SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	queryText := r.URL.Query().Get("q")

	entityTypes, err := parseEntityTypes(r.URL.Query().Get("types"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.SearchEntities(r.Context(), entityTypes, queryText, parseSearchParams(r))
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "search failed")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Suggestions handles GET /api/search/suggestions
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	queryText := r.URL.Query().Get("q")

	entityTypes, err := parseEntityTypes(r.URL.Query().Get("types"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestions, err := h.service.GetSuggestions(r.Context(), queryText, entityTypes)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "suggestion lookup failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

type indexEntityRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

// IndexEntity handles POST /api/search/index
func (h *SearchHandler) IndexEntity(w http.ResponseWriter, r *http.Request) {
	var payload indexEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	entityType, ok := entities.ParseEntityType(payload.EntityType)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "unknown entity type")
		return
	}
	if payload.EntityID == "" {
		respondWithError(w, http.StatusBadRequest, "entity_id is required")
		return
	}

	success := h.service.IndexEntity(r.Context(), entityType, payload.EntityID)
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": success})
}

// RebuildIndexes handles POST /api/search/reindex
func (h *SearchHandler) RebuildIndexes(w http.ResponseWriter, r *http.Request) {
	success := h.service.RebuildIndexes(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": success})
}

// parseEntityTypes parses a comma-separated types parameter. An empty
// parameter means every known type.
func parseEntityTypes(raw string) ([]entities.EntityType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	types := make([]entities.EntityType, 0, len(parts))
	for _, part := range parts {
		entityType, ok := entities.ParseEntityType(strings.TrimSpace(part))
		if !ok {
			return nil, apperrors.NewValidationError("unknown entity type: " + part)
		}
		types = append(types, entityType)
	}
	return types, nil
}

// parseSearchParams reads pagination, sorting, and filter.* query
// parameters. Out-of-range values are left for query validation to
// reject.
func parseSearchParams(r *http.Request) entities.SearchParams {
	params := entities.SearchParams{
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		params.PageSize = limit
	}

	for key, values := range r.URL.Query() {
		if !strings.HasPrefix(key, "filter.") || len(values) == 0 {
			continue
		}
		if params.Filters == nil {
			params.Filters = make(map[string]string)
		}
		params.Filters[strings.TrimPrefix(key, "filter.")] = values[0]
	}

	return params
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
