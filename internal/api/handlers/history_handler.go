package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/carelink-cm/carelink-backend/internal/application/services"
)

// HistoryHandler handles recent-search history requests
type HistoryHandler struct {
	historyService *services.SearchHistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *services.SearchHistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetHistory handles GET /api/search/history
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromRequest(r)
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	queries := h.historyService.Load(r.Context(), sessionID)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": queries,
		"count":   len(queries),
	})
}

// CommitSearch handles POST /api/search/history
func (h *HistoryHandler) CommitSearch(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromRequest(r)
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	queries := h.historyService.Commit(r.Context(), sessionID, body.Query)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": queries,
		"count":   len(queries),
	})
}

// ClearHistory handles DELETE /api/search/history
func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromRequest(r)
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	h.historyService.Clear(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}
