package handlers

import (
	"net/http"

	"github.com/carelink-cm/carelink-backend/internal/application/services"
)

// SuggestionHandler handles typeahead suggestion requests
type SuggestionHandler struct {
	suggestionService *services.SuggestionService
	doctorService     *services.DoctorService
	historyService    *services.SearchHistoryService
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(
	suggestionService *services.SuggestionService,
	doctorService *services.DoctorService,
	historyService *services.SearchHistoryService,
) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		doctorService:     doctorService,
		historyService:    historyService,
	}
}

// GetSuggestions handles GET /api/search/suggestions
func (h *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	sessionID := sessionIDFromRequest(r)

	var recent []string
	if sessionID != "" {
		recent = h.historyService.Load(r.Context(), sessionID)
	}

	doctors := h.doctorService.Snapshot()
	suggestions := h.suggestionService.Suggest(query, doctors, recent)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
