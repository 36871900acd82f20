package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// Pinger is a dependency the readiness probe can check.
type Pinger func(ctx context.Context) error

// HealthHandler serves GET /health (liveness) and GET /health/ready (readiness).
type HealthHandler struct {
	// required dependencies fail readiness; optional ones only report.
	required map[string]Pinger
	optional map[string]Pinger
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		required: make(map[string]Pinger),
		optional: make(map[string]Pinger),
	}
}

// Require adds a dependency whose failure makes the service not ready.
func (h *HealthHandler) Require(name string, p Pinger) *HealthHandler {
	h.required[name] = p
	return h
}

// Observe adds a dependency that is reported but never fails readiness.
func (h *HealthHandler) Observe(name string, p Pinger) *HealthHandler {
	h.optional[name] = p
	return h
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status   string `json:"status"`
	Optional bool   `json:"optional,omitempty"`
	Error    string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.required)+len(h.optional))
	healthy := true

	for name, ping := range h.required {
		if err := ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}
	for name, ping := range h.optional {
		if err := ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Optional: true, Error: err.Error()}
			continue
		}
		deps[name] = dependencyStatus{Status: "ok", Optional: true}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
