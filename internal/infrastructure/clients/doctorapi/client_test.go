package doctorapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/carelink-cm/carelink-backend/pkg/errors"
)

func TestListDoctors_MixedPayloadShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/doctors", r.URL.Path)
		assert.Equal(t, "Yaoundé", r.URL.Query().Get("city"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"doctors": [
				{
					"id": 1,
					"first_name": "Jean",
					"last_name": "Mballa",
					"specialization": "Cardiologie, Médecine interne",
					"years_of_experience": "12",
					"consultation_fee": 25000,
					"user": {"email": "jean.mballa@hospital.cm"}
				},
				{
					"id": 2,
					"first_name": "Awa",
					"last_name": "Ngono",
					"specialization": ["Pédiatrie"],
					"years_of_experience": 7,
					"consultation_fee": "15000"
				}
			],
			"count": 2,
			"total": 2
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	resp, err := client.ListDoctors(context.Background(), ListDoctorsRequest{City: "Yaoundé"})
	require.NoError(t, err)
	require.Len(t, resp.Doctors, 2)

	first := resp.Doctors[0]
	assert.False(t, first.Specialization.IsList)
	assert.Equal(t, "Cardiologie, Médecine interne", first.Specialization.Display())
	assert.Equal(t, "12", first.YearsOfExperience.String())
	assert.Equal(t, "25000", first.ConsultationFee.String())
	require.NotNil(t, first.User)
	assert.Equal(t, "jean.mballa@hospital.cm", first.User.Email)

	second := resp.Doctors[1]
	assert.True(t, second.Specialization.IsList)
	assert.Equal(t, "Pédiatrie", second.Specialization.Display())
	assert.Equal(t, "7", second.YearsOfExperience.String())
	assert.Equal(t, "15000", second.ConsultationFee.String())
	assert.Nil(t, second.User)
}

func TestGetDoctor_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.GetDoctor(context.Background(), 42)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}

func TestListDoctors_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.ListDoctors(context.Background(), ListDoctorsRequest{})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)
}

func TestListDoctors_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, time.Second)
	_, err := client.ListDoctors(context.Background(), ListDoctorsRequest{})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeUnavailable, appErr.Type)
}

func TestSpecialization_UnexpectedShapeDecodesEmpty(t *testing.T) {
	var doc RawDoctor
	err := json.Unmarshal([]byte(`{"id":1,"specialization":{"oops":true}}`), &doc)
	require.NoError(t, err)
	assert.Equal(t, "", doc.Specialization.Display())
}
