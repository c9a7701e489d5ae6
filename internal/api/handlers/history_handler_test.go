package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink-cm/carelink-backend/internal/api/handlers"
)

func (e *testEnv) historyHandler() *handlers.HistoryHandler {
	return handlers.NewHistoryHandler(e.historyService)
}

func commitQuery(t *testing.T, handler *handlers.HistoryHandler, sessionID, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/search/history", strings.NewReader(`{"query":"`+query+`"}`))
	req.Header.Set("X-Session-ID", sessionID)
	rec := httptest.NewRecorder()
	handler.CommitSearch(rec, req)
	return rec
}

func loadQueries(t *testing.T, handler *handlers.HistoryHandler, sessionID string) []string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/search/history", nil)
	req.Header.Set("X-Session-ID", sessionID)
	rec := httptest.NewRecorder()
	handler.GetHistory(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Queries []string `json:"queries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Queries
}

func TestHistoryHandler_CommitAndLoad(t *testing.T) {
	handler := newTestEnv(t, &stubDoctorAPI{}).historyHandler()

	rec := commitQuery(t, handler, "session-1", "cardiologue")
	require.Equal(t, http.StatusOK, rec.Code)
	commitQuery(t, handler, "session-1", "dentiste")

	assert.Equal(t, []string{"dentiste", "cardiologue"}, loadQueries(t, handler, "session-1"))
}

func TestHistoryHandler_SessionRequired(t *testing.T) {
	handler := newTestEnv(t, &stubDoctorAPI{}).historyHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/search/history", nil)
	rec := httptest.NewRecorder()
	handler.GetHistory(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandler_SessionFromCookie(t *testing.T) {
	env := newTestEnv(t, &stubDoctorAPI{})
	handler := env.historyHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/search/history", strings.NewReader(`{"query":"pédiatre"}`))
	req.AddCookie(&http.Cookie{Name: "carelink_session", Value: "cookie-session"})
	rec := httptest.NewRecorder()
	handler.CommitSearch(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"pédiatre"}, loadQueries(t, handler, "cookie-session"))
}

func TestHistoryHandler_Clear(t *testing.T) {
	handler := newTestEnv(t, &stubDoctorAPI{}).historyHandler()
	commitQuery(t, handler, "session-1", "cardiologue")

	req := httptest.NewRequest(http.MethodDelete, "/api/search/history", nil)
	req.Header.Set("X-Session-ID", "session-1")
	rec := httptest.NewRecorder()
	handler.ClearHistory(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Empty(t, loadQueries(t, handler, "session-1"))
}
