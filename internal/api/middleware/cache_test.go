package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCacheProvider is an in-memory CacheProvider for middleware tests.
type fakeCacheProvider struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCacheProvider() *fakeCacheProvider {
	return &fakeCacheProvider{store: make(map[string][]byte)}
}

func (f *fakeCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if value, ok := f.store[key]; ok {
		return value, nil
	}
	return nil, fmt.Errorf("key not found: %s", key)
}

func (f *fakeCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[key] = value
	return nil
}

func (f *fakeCacheProvider) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.store, key)
	return nil
}

func (f *fakeCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.store[key]
	return ok, nil
}

// sessionEchoHandler writes a body derived from the caller's session, the way
// the suggestion handler embeds per-session history.
func sessionEchoHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		session := r.Header.Get("X-Session-ID")
		if session == "" {
			if cookie, err := r.Cookie("carelink_session"); err == nil {
				session = cookie.Value
			}
		}
		fmt.Fprintf(w, `{"session":%q}`, session)
	})
}

func TestCacheMiddleware_CookieSessionsAreIsolated(t *testing.T) {
	var calls int
	handler := NewCacheMiddleware(newFakeCacheProvider()).Middleware(sessionEchoHandler(&calls))

	reqA := httptest.NewRequest(http.MethodGet, "/api/search/suggestions", nil)
	reqA.AddCookie(&http.Cookie{Name: "carelink_session", Value: "session-a"})
	recA := httptest.NewRecorder()
	handler.ServeHTTP(recA, reqA)

	require.Equal(t, "MISS", recA.Header().Get("X-Cache"))
	assert.Contains(t, recA.Body.String(), "session-a")

	// A different cookie session must not be served session A's payload.
	reqB := httptest.NewRequest(http.MethodGet, "/api/search/suggestions", nil)
	reqB.AddCookie(&http.Cookie{Name: "carelink_session", Value: "session-b"})
	recB := httptest.NewRecorder()
	handler.ServeHTTP(recB, reqB)

	require.Equal(t, "MISS", recB.Header().Get("X-Cache"))
	assert.Contains(t, recB.Body.String(), "session-b")
	assert.Equal(t, 2, calls)
}

func TestCacheMiddleware_SameCookieSessionHitsCache(t *testing.T) {
	var calls int
	handler := NewCacheMiddleware(newFakeCacheProvider()).Middleware(sessionEchoHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions", nil)
		req.AddCookie(&http.Cookie{Name: "carelink_session", Value: "session-a"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Contains(t, rec.Body.String(), "session-a")
	}

	assert.Equal(t, 1, calls)
}

func TestCacheMiddleware_HeaderAndCookieResolveSameSession(t *testing.T) {
	var calls int
	handler := NewCacheMiddleware(newFakeCacheProvider()).Middleware(sessionEchoHandler(&calls))

	byHeader := httptest.NewRequest(http.MethodGet, "/api/search/suggestions", nil)
	byHeader.Header.Set("X-Session-ID", "session-a")
	handler.ServeHTTP(httptest.NewRecorder(), byHeader)

	byCookie := httptest.NewRequest(http.MethodGet, "/api/search/suggestions", nil)
	byCookie.AddCookie(&http.Cookie{Name: "carelink_session", Value: "session-a"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, byCookie)

	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)
}

func TestCacheMiddleware_SearchRouteNeverCached(t *testing.T) {
	var calls int
	handler := NewCacheMiddleware(newFakeCacheProvider()).Middleware(sessionEchoHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/doctors/search?q=cardiologue", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.NotEqual(t, "HIT", rec.Header().Get("X-Cache"))
	}

	// Every search reaches the handler so history and analytics fire.
	assert.Equal(t, 2, calls)
}

func TestCacheMiddleware_RouteConfigLongestPrefixWins(t *testing.T) {
	m := NewCacheMiddleware(newFakeCacheProvider())

	// /api/doctors/{id} matches both the /api/doctors and /api/doctors/
	// patterns; the longer prefix must win every time.
	for i := 0; i < 20; i++ {
		config := m.getRouteConfig("/api/doctors/7")
		require.True(t, config.Enabled)
		require.Equal(t, 600, config.TTLSeconds)
	}

	assert.Equal(t, 300, m.getRouteConfig("/api/doctors").TTLSeconds)
	assert.False(t, m.getRouteConfig("/api/doctors/search").Enabled)
	assert.False(t, m.getRouteConfig("/api/search/history").Enabled)
}
