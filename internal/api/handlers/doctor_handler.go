package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/carelink-cm/carelink-backend/internal/application/services"
	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	apperrors "github.com/carelink-cm/carelink-backend/pkg/errors"
)

// DoctorHandler handles doctor-related HTTP requests
type DoctorHandler struct {
	doctorService    *services.DoctorService
	historyService   *services.SearchHistoryService
	analyticsService *services.SearchAnalyticsService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(
	doctorService *services.DoctorService,
	historyService *services.SearchHistoryService,
	analyticsService *services.SearchAnalyticsService,
) *DoctorHandler {
	return &DoctorHandler{
		doctorService:    doctorService,
		historyService:   historyService,
		analyticsService: analyticsService,
	}
}

// GetDoctor handles GET /api/doctors/{id}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "doctor ID must be an integer")
		return
	}

	doctor, err := h.doctorService.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// ListDoctors handles GET /api/doctors
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	result, err := h.doctorService.Search(r.Context(), entities.SearchFilters{})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": result.Doctors,
		"count":   len(result.Doctors),
	})
}

// SearchDoctors handles GET /api/doctors/search
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSearchFilters(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.doctorService.Search(r.Context(), filters)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	sessionID := sessionIDFromRequest(r)
	if query := strings.TrimSpace(filters.Query); query != "" && sessionID != "" {
		h.historyService.Commit(r.Context(), sessionID, query)
	}
	h.analyticsService.TrackSearch(r.Context(), &entities.SearchEvent{
		Query:       filters.Query,
		City:        filters.City,
		Specialty:   filters.Specialty,
		ResultCount: len(result.Doctors),
		LatencyMs:   int(result.SearchTimeMs),
		SessionID:   sessionID,
	})

	response := map[string]interface{}{
		"doctors":        result.Doctors,
		"count":          len(result.Doctors),
		"total_count":    result.TotalCount,
		"search_time_ms": result.SearchTimeMs,
	}
	if result.Stats != nil {
		response["stats"] = result.Stats
	}
	respondWithJSON(w, http.StatusOK, response)
}

// GetZeroResultQueries handles GET /api/analytics/zero-result-queries
func (h *DoctorHandler) GetZeroResultQueries(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 100)

	events, err := h.analyticsService.GetZeroResultQueries(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": events,
		"count":   len(events),
	})
}

// GetTopQueries handles GET /api/analytics/top-queries
func (h *DoctorHandler) GetTopQueries(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 10)

	queries, err := h.analyticsService.GetTopQueries(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": queries,
		"count":   len(queries),
	})
}

func parseSearchFilters(r *http.Request) (entities.SearchFilters, error) {
	q := r.URL.Query()
	filters := entities.SearchFilters{
		Query:        q.Get("q"),
		City:         q.Get("city"),
		Specialty:    q.Get("specialty"),
		Availability: q.Get("availability"),
		SortBy:       q.Get("sort_by"),
		SortOrder:    q.Get("sort_order"),
	}

	if raw := q.Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, apperrors.NewValidationError("available must be a boolean")
		}
		filters.Available = &available
	}
	if raw := q.Get("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, apperrors.NewValidationError("min_rating must be a number")
		}
		filters.MinRating = &minRating
	}
	if raw := q.Get("max_fee"); raw != "" {
		maxFee, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, apperrors.NewValidationError("max_fee must be a number")
		}
		filters.MaxFee = &maxFee
	}

	return filters, nil
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// sessionIDFromRequest resolves the caller's session from the X-Session-ID
// header, falling back to the session cookie set by the frontend.
func sessionIDFromRequest(r *http.Request) string {
	if sessionID := r.Header.Get("X-Session-ID"); sessionID != "" {
		return sessionID
	}
	if cookie, err := r.Cookie("carelink_session"); err == nil {
		return cookie.Value
	}
	return ""
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

// respondWithAppError maps an AppError to its HTTP status
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
