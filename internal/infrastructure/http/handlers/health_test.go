package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func serveReadiness(t *testing.T, h *HealthHandler) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("Readiness returned error: %v", err)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	return rec.Code, body
}

func TestReadiness_AllHealthy(t *testing.T) {
	h := NewHealthHandler().Require("database", ok).Require("redis", ok).Observe("mongodb", ok)

	code, body := serveReadiness(t, h)
	if code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("expected 200 ok, got %d %+v", code, body)
	}
	if len(body.Dependencies) != 3 {
		t.Fatalf("expected 3 dependencies, got %+v", body.Dependencies)
	}
}

func TestReadiness_OptionalFailureStaysReady(t *testing.T) {
	h := NewHealthHandler().Require("database", ok).Observe("mongodb", down)

	code, body := serveReadiness(t, h)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if dep := body.Dependencies["mongodb"]; dep.Status != "unhealthy" || !dep.Optional {
		t.Fatalf("expected optional unhealthy mongodb, got %+v", dep)
	}
}

func TestReadiness_RequiredFailure(t *testing.T) {
	h := NewHealthHandler().Require("database", ok).Require("redis", down)

	code, body := serveReadiness(t, h)
	if code != http.StatusServiceUnavailable || body.Status != "degraded" {
		t.Fatalf("expected 503 degraded, got %d %+v", code, body)
	}
	if body.Dependencies["redis"].Error == "" {
		t.Fatalf("expected error detail for redis")
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("Liveness returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
