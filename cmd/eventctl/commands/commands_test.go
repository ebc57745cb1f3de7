package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"user":  map[string]any{"id": "u1", "name": "Ana", "email": "ana@example.com", "role": "customer"},
			"token": "tok-1",
		}})
	})
	mux.HandleFunc("GET /api/vendors", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "florist", r.URL.Query().Get("category"))
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"id": "v1", "business_name": "Bloom & Co", "category": "florist", "rating": 4.5, "review_count": 2, "status": "approved"},
		}})
	})
	mux.HandleFunc("GET /api/events/user/u1/upcoming", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{
			{"id": "e1", "title": "Wedding", "event_type": "wedding", "event_date": "2026-06-12T00:00:00Z", "status": "planning"},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, dir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--api", srv.URL + "/api", "--home", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	srv := fakeAPI(t)
	dir := t.TempDir()

	_, err := run(t, srv, dir, "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)

	out, err := run(t, srv, dir, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "signed in as Ana (customer)")

	out, err = run(t, srv, dir, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana <ana@example.com>")

	out, err = run(t, srv, dir, "events", "upcoming")
	require.NoError(t, err)
	assert.Contains(t, out, "Wedding")
	assert.Contains(t, out, "2026-06-12")

	_, err = run(t, srv, dir, "logout")
	require.NoError(t, err)
	_, err = run(t, srv, dir, "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestVendorsList(t *testing.T) {
	srv := fakeAPI(t)

	out, err := run(t, srv, t.TempDir(), "vendors", "list", "--category", "florist")
	require.NoError(t, err)
	assert.Contains(t, out, "Bloom & Co")
	assert.Contains(t, out, "4.5")
}

func TestRejectRequiresReason(t *testing.T) {
	srv := fakeAPI(t)

	_, err := run(t, srv, t.TempDir(), "admin", "reject", "v1")
	assert.Error(t, err)
}
