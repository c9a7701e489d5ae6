package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carelink-cm/carelink-backend/internal/api/handlers"
	"github.com/carelink-cm/carelink-backend/internal/domain/entities"
	"github.com/carelink-cm/carelink-backend/internal/domain/repositories"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/doctorapi"
	apperrors "github.com/carelink-cm/carelink-backend/pkg/errors"
)

type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepo) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) Cancel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAppointmentRepo) ListByDoctor(ctx context.Context, doctorID int, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	args := m.Called(ctx, doctorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func newAppointmentHandler(t *testing.T, repo repositories.AppointmentRepository) *handlers.AppointmentHandler {
	t.Helper()
	api := &stubDoctorAPI{doctors: []doctorapi.RawDoctor{
		rawDoctor(7, "Jean", "Mballa", "Cardiologie", "Yaoundé", 4.8, "09:00"),
	}}
	env := newTestEnv(t, api)
	return handlers.NewAppointmentHandler(repo, env.doctorService)
}

func TestAppointmentHandler_BookAppointment(t *testing.T) {
	repo := new(MockAppointmentRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Appointment")).Return(nil)
	handler := newAppointmentHandler(t, repo)

	body := `{
		"doctor_id": 7,
		"slot": "09:00",
		"scheduled_at": "2026-09-02T09:00:00Z",
		"patient_name": "Alice Fouda",
		"patient_phone": "+237 699 11 22 33"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.BookAppointment(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created entities.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 7, created.DoctorID)
	assert.Equal(t, entities.AppointmentStatusPending, created.Status)
	repo.AssertExpectations(t)
}

func TestAppointmentHandler_BookAppointment_UnknownDoctor(t *testing.T) {
	repo := new(MockAppointmentRepo)
	handler := newAppointmentHandler(t, repo)

	body := `{"doctor_id": 99, "scheduled_at": "2026-09-02T09:00:00Z", "patient_name": "Alice Fouda"}`
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.BookAppointment(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAppointmentHandler_BookAppointment_Validation(t *testing.T) {
	handler := newAppointmentHandler(t, new(MockAppointmentRepo))

	cases := []struct {
		name string
		body string
	}{
		{"missing doctor", `{"scheduled_at": "2026-09-02T09:00:00Z", "patient_name": "Alice"}`},
		{"missing patient name", `{"doctor_id": 7, "scheduled_at": "2026-09-02T09:00:00Z"}`},
		{"bad timestamp", `{"doctor_id": 7, "scheduled_at": "tomorrow", "patient_name": "Alice"}`},
		{"bad json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.BookAppointment(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAppointmentHandler_ListAppointments(t *testing.T) {
	repo := new(MockAppointmentRepo)
	repo.On("ListByDoctor", mock.Anything, 7, mock.Anything).Return([]*entities.Appointment{
		{ID: "a1", DoctorID: 7, PatientName: "Alice Fouda"},
	}, nil)
	handler := newAppointmentHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments?doctor_id=7", nil)
	rec := httptest.NewRecorder()
	handler.ListAppointments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Appointments []*entities.Appointment `json:"appointments"`
		Count        int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "a1", resp.Appointments[0].ID)
}

func TestAppointmentHandler_CancelAppointment(t *testing.T) {
	repo := new(MockAppointmentRepo)
	repo.On("Cancel", mock.Anything, "a1").Return(nil)
	handler := newAppointmentHandler(t, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/a1", nil)
	req.SetPathValue("id", "a1")
	rec := httptest.NewRecorder()
	handler.CancelAppointment(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestAppointmentHandler_CancelAppointment_NotFound(t *testing.T) {
	repo := new(MockAppointmentRepo)
	repo.On("Cancel", mock.Anything, "missing").Return(apperrors.NewNotFoundError("appointment missing not found"))
	handler := newAppointmentHandler(t, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	handler.CancelAppointment(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
