package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newHealthApp(h *HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "details": de.Details}})
		},
	})
	app.Get("/live", h.Live)
	app.Get("/ready", h.Ready)
	return app
}

func TestHealthLive(t *testing.T) {
	app := newHealthApp(NewHealthHandler("event-marketplace", "1.0.0", nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestHealthReady(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("all dependencies up", func(t *testing.T) {
		app := newHealthApp(NewHealthHandler("svc", "v", map[string]Pinger{"postgres": up, "redis": up}))
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("one dependency down", func(t *testing.T) {
		app := newHealthApp(NewHealthHandler("svc", "v", map[string]Pinger{"postgres": up, "redis": down}))
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body struct {
			Error struct {
				Code    string                    `json:"code"`
				Details map[string]map[string]any `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "DEPENDENCY_UNAVAILABLE", body.Error.Code)
		assert.Equal(t, "ok", body.Error.Details["postgres"]["status"])
		assert.Equal(t, "down", body.Error.Details["redis"]["status"])
		assert.Equal(t, "connection refused", body.Error.Details["redis"]["error"])
	})
}
