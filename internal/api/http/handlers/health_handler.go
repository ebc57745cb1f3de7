package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const readinessTimeout = 2 * time.Second

// Pinger is a backing store the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	version     string
	deps        map[string]Pinger
	startedAt   time.Time
}

// NewHealthHandler maps each dependency name (postgres, redis) to its probe.
func NewHealthHandler(serviceName, version string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, deps: deps, startedAt: time.Now()}
}

func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

type probeResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// Ready pings every dependency in parallel and answers 503 if any is down.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]any, len(h.deps))
		ready   = true
	)
	g, gctx := errgroup.WithContext(ctx)
	for name, dep := range h.deps {
		g.Go(func() error {
			start := time.Now()
			err := dep.Ping(gctx)
			res := probeResult{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				res.Status, res.Error = "down", err.Error()
			}
			mu.Lock()
			results[name] = res
			ready = ready && err == nil
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if !ready {
		return apperrors.NewDomainError("DEPENDENCY_UNAVAILABLE", "one or more dependencies unavailable", http.StatusServiceUnavailable, results)
	}
	return c.JSON(fiber.Map{"status": "ready", "dependencies": results})
}
