package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/carelink-cm/carelink-backend/internal/application/services"
	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/domain/repositories"
)

// AppointmentHandler handles appointment-related HTTP requests
type AppointmentHandler struct {
	appointmentRepo repositories.AppointmentRepository
	doctorService   *services.DoctorService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(
	appointmentRepo repositories.AppointmentRepository,
	doctorService *services.DoctorService,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentRepo: appointmentRepo,
		doctorService:   doctorService,
	}
}

// BookAppointmentRequest is the payload for POST /api/appointments
type BookAppointmentRequest struct {
	DoctorID     int    `json:"doctor_id"`
	Slot         string `json:"slot"`
	ScheduledAt  string `json:"scheduled_at"`
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
	PatientPhone string `json:"patient_phone"`
	Reason       string `json:"reason"`
	IsVideo      bool   `json:"is_video"`
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DoctorID <= 0 {
		respondWithError(w, http.StatusBadRequest, "doctor_id is required")
		return
	}
	if strings.TrimSpace(req.PatientName) == "" {
		respondWithError(w, http.StatusBadRequest, "patient_name is required")
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "scheduled_at must be RFC3339")
		return
	}

	// Reject bookings for doctors we cannot resolve
	if _, err := h.doctorService.GetByID(r.Context(), req.DoctorID); err != nil {
		respondWithAppError(w, err)
		return
	}

	appointment := &entities.Appointment{
		DoctorID:     req.DoctorID,
		Slot:         req.Slot,
		ScheduledAt:  scheduledAt,
		Status:       entities.AppointmentStatusPending,
		PatientName:  strings.TrimSpace(req.PatientName),
		PatientEmail: strings.TrimSpace(req.PatientEmail),
		PatientPhone: strings.TrimSpace(req.PatientPhone),
		Reason:       req.Reason,
		IsVideo:      req.IsVideo,
	}

	if err := h.appointmentRepo.Create(r.Context(), appointment); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// ListAppointments handles GET /api/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.Atoi(r.URL.Query().Get("doctor_id"))
	if err != nil || doctorID <= 0 {
		respondWithError(w, http.StatusBadRequest, "doctor_id is required")
		return
	}

	filter := repositories.AppointmentFilter{
		Status: entities.AppointmentStatus(r.URL.Query().Get("status")),
		Limit:  parseIntParam(r, "limit", 50),
	}

	appointments, err := h.appointmentRepo.ListByDoctor(r.Context(), doctorID, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// CancelAppointment handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "appointment ID is required")
		return
	}

	if err := h.appointmentRepo.Cancel(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
