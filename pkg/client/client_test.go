package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginStoresSessionAndAuthorizesLaterCalls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
			"user":  map[string]any{"id": "u1", "name": "Ana", "role": "vendor"},
			"token": "tok-1",
		}})
	})
	mux.HandleFunc("GET /api/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"count": 4}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "session.json")
	session, err := OpenSession(path)
	require.NoError(t, err)

	c := New(srv.URL+"/api/", WithSession(session))
	res, err := c.Users.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)

	n, err := c.Notifications.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	reopened, err := OpenSession(path)
	require.NoError(t, err)
	state := reopened.State()
	assert.Equal(t, "u1", state.UserID)
	assert.Equal(t, "vendor", state.UserRole)
	user, err := reopened.User()
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	require.NoError(t, c.Users.Logout())
	assert.False(t, c.Session().SignedIn())
	assert.NoFileExists(t, path)
}

func TestErrorsBecomeAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /vendors/missing", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{
			"code": "NOT_FOUND", "message": "vendor not found",
		}})
	})
	mux.HandleFunc("GET /vendors/featured", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})
	mux.HandleFunc("POST /reviews", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"error": "vendor already reviewed"})
	})
	mux.HandleFunc("GET /vendors/empty", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]any{"code": "VALIDATION_FAILED"}, "message": "bad vendor id"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Vendors.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "vendor not found", apiErr.Message)

	_, err = c.Vendors.Featured(context.Background())
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Message)

	_, err = c.Reviews.Create(context.Background(), CreateReviewRequest{VendorID: "v1", Rating: 5})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "vendor already reviewed", apiErr.Message)

	_, err = c.Vendors.Get(context.Background(), "empty")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "VALIDATION_FAILED", apiErr.Code)
	assert.Equal(t, "bad vendor id", apiErr.Message)
}

func TestVendorQueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"id": "v1", "business_name": "Bloom"}}})
	}))
	defer srv.Close()

	vendors, err := New(srv.URL).Vendors.List(context.Background(), VendorQuery{Category: "florist", Page: 2})
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Bloom", vendors[0].BusinessName)
	assert.Equal(t, "category=florist&page=2", gotQuery)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := c.Admin.Dashboard(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadDashboard(t *testing.T) {
	var failGrowth atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/dashboard", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"total_users": 12, "total_revenue": 99.5}})
	})
	mux.HandleFunc("GET /admin/vendors/pending", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"id": "v1"}}})
	})
	mux.HandleFunc("GET /admin/support-chats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"id": "c1", "kind": "support"}}})
	})
	mux.HandleFunc("GET /admin/vendors/best", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{}})
	})
	mux.HandleFunc("GET /admin/reports/growth", func(w http.ResponseWriter, _ *http.Request) {
		if failGrowth.Load() {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": map[string]any{"code": "INTERNAL_ERROR", "message": "internal server error"}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"month": "2026-03", "users": 3}}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	overview, err := c.Admin.LoadDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), overview.Stats.TotalUsers)
	assert.Len(t, overview.PendingVendors, 1)
	assert.Len(t, overview.SupportChats, 1)
	assert.Empty(t, overview.BestVendors)
	require.Len(t, overview.Growth, 1)
	assert.Equal(t, "2026-03", overview.Growth[0].Month)

	failGrowth.Store(true)
	_, err = c.Admin.LoadDashboard(context.Background())
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
}

func TestPoller(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls, failures int
	p := NewPoller(5 * time.Millisecond)
	p.OnError = func(error) { failures++ }

	err := p.Run(ctx, func(context.Context) error {
		calls++
		if calls == 1 {
			return assert.AnError
		}
		if calls == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 3)
	assert.Equal(t, 1, failures)
}

func TestPollerZeroIntervalUsesDefault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := (&Poller{}).Run(ctx, func(context.Context) error {
		calls++
		cancel()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestOpenSessionMissingFile(t *testing.T) {
	s, err := OpenSession(filepath.Join(t.TempDir(), "nested", "session.json"))
	require.NoError(t, err)
	assert.False(t, s.SignedIn())
	user, err := s.User()
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, s.Save(User{ID: "u2", Role: "customer"}, "tok"))
	assert.Equal(t, "tok", s.Token())
}
