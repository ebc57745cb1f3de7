package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/event-marketplace/internal/auth"
	"github.com/spec-kit/event-marketplace/internal/config"
	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/observability"
	"github.com/spec-kit/event-marketplace/internal/repository"
	"github.com/spec-kit/event-marketplace/internal/service"
)

type memUsers struct {
	mu   sync.Mutex
	rows map[string]*domain.User
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.NewString()
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) List(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.rows))
	for _, u := range m.rows {
		out = append(out, *u)
	}
	return out, nil
}

type listVendors struct {
	repository.VendorRepository
	filter repository.VendorFilter
	rows   []domain.Vendor
}

func (l *listVendors) List(_ context.Context, filter repository.VendorFilter) ([]domain.Vendor, error) {
	l.filter = filter
	return l.rows, nil
}

type noActivities struct{}

func (noActivities) Create(context.Context, *domain.Activity) error { return nil }
func (noActivities) ListByUser(context.Context, string, int) ([]domain.Activity, error) {
	return nil, nil
}

type testServer struct {
	app     *fiber.App
	users   *memUsers
	vendors *listVendors
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, BcryptCost: 4}}
	users := &memUsers{rows: map[string]*domain.User{}}
	vendors := &listVendors{rows: []domain.Vendor{{ID: uuid.NewString(), BusinessName: "Bloom", Status: domain.VendorStatusApproved}}}
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users, Dispatcher: dispatcher, Logger: logger})
	userService := service.NewUserService(service.UserDependencies{UserRepo: users, ActivityRepo: noActivities{}, BcryptCost: 4})
	vendorService := service.NewVendorService(service.VendorDependencies{VendorRepo: vendors, UserRepo: users, Dispatcher: dispatcher, Logger: logger})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "v0", nil),
		Users:          handlers.NewUsersHandler(authService, userService),
		Vendors:        handlers.NewVendorsHandler(vendorService, nil),
		Events:         handlers.NewEventsHandler(nil),
		Reviews:        handlers.NewReviewsHandler(nil),
		Chats:          handlers.NewChatsHandler(nil, nil),
		Contracts:      handlers.NewContractsHandler(nil, nil),
		Admin:          handlers.NewAdminHandler(nil),
		Notifications:  handlers.NewNotificationsHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
	})
	return &testServer{app: app, users: users, vendors: vendors, metrics: metrics}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func TestRegisterLoginAndProfile(t *testing.T) {
	srv := newTestServer(t)

	status, env := srv.do(t, http.MethodPost, "/api/users/register", "", `{"name":"Ana","email":"Ana@Example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, status)
	var registered struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.Equal(t, "ana@example.com", registered.User.Email)
	assert.Equal(t, "customer", registered.User.Role)
	assert.NotEmpty(t, registered.Token)

	status, env = srv.do(t, http.MethodPost, "/api/users/login", "", `{"email":"ana@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, status)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	status, env = srv.do(t, http.MethodGet, "/api/users/"+registered.User.ID, login.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"name":"Ana"`)

	status, env = srv.do(t, http.MethodGet, "/api/users", login.Token, "")
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestErrorEnvelope(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{name: "invalid registration", method: http.MethodPost, path: "/api/users/register", body: `{"name":"","email":"nope","password":"x"}`, status: http.StatusBadRequest, code: "VALIDATION_FAILED"},
		{name: "malformed body", method: http.MethodPost, path: "/api/users/login", body: `{"email":`, status: http.StatusBadRequest, code: "VALIDATION_FAILED"},
		{name: "bad credentials", method: http.MethodPost, path: "/api/users/login", body: `{"email":"x@y.z","password":"secret1"}`, status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "protected group without token", method: http.MethodGet, path: "/api/events/" + uuid.NewString(), status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "admin group without token", method: http.MethodGet, path: "/api/admin/dashboard", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "unknown route", method: http.MethodGet, path: "/api/nowhere", status: http.StatusNotFound, code: "NOT_FOUND"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := srv.do(t, tc.method, tc.path, "", tc.body)
			assert.Equal(t, tc.status, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	_, env := srv.do(t, http.MethodPost, "/api/users/register", "", `{"name":"Bo","email":"bo@example.com","password":"secret1"}`)
	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	status, env := srv.do(t, http.MethodGet, "/api/users/not-a-uuid", registered.Token, "")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "user not found", env.Error.Message)
}

func TestPublicVendorListing(t *testing.T) {
	srv := newTestServer(t)

	status, env := srv.do(t, http.MethodGet, "/api/vendors?category=florist&page=2&page_size=5", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"business_name":"Bloom"`)

	require.NotNil(t, srv.vendors.filter.Status)
	assert.Equal(t, domain.VendorStatusApproved, *srv.vendors.filter.Status)
	require.NotNil(t, srv.vendors.filter.Category)
	assert.Equal(t, "florist", *srv.vendors.filter.Category)
	assert.Equal(t, 5, srv.vendors.filter.Limit)
	assert.Equal(t, 5, srv.vendors.filter.Offset)

	status, env = srv.do(t, http.MethodGet, "/api/vendors?page=two", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestRequestsAreCounted(t *testing.T) {
	srv := newTestServer(t)
	srv.do(t, http.MethodGet, "/health/live", "", "")
	srv.do(t, http.MethodGet, "/api/admin/dashboard", "", "")

	snap := srv.metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Requests["/health/live|GET|200"])
	var unauthorized int64
	for key, n := range snap.Errors {
		if strings.HasSuffix(key, "|GET|UNAUTHORIZED") {
			unauthorized += n
		}
	}
	assert.Equal(t, int64(1), unauthorized)
}
