package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReadinessHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name       string
		checks     map[string]Check
		wantCode   int
		wantStatus string
		wantDeps   []string
	}{
		{"no dependencies", nil, http.StatusOK, "ok", nil},
		{"all healthy", map[string]Check{"redis": ok, "mongodb": ok}, http.StatusOK, "ok", []string{"mongodb", "redis"}},
		{"one down", map[string]Check{"redis": down, "mongodb": ok}, http.StatusServiceUnavailable, "degraded", []string{"mongodb", "redis"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewReadinessHandler(tc.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.wantStatus {
				t.Fatalf("expected status %q, got %q", tc.wantStatus, resp.Status)
			}
			if len(resp.Dependencies) != len(tc.wantDeps) {
				t.Fatalf("expected %d dependencies, got %d", len(tc.wantDeps), len(resp.Dependencies))
			}
			for i, name := range tc.wantDeps {
				if resp.Dependencies[i].Name != name {
					t.Fatalf("dependency %d: expected %s, got %s", i, name, resp.Dependencies[i].Name)
				}
			}
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
