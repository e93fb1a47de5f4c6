package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"menshealth-backend/internal/services/health"
	"menshealth-backend/internal/shared/auth"
	"menshealth-backend/internal/shared/config"
	"menshealth-backend/internal/shared/server/middleware"
)

func testDeps(t *testing.T) RouterDeps {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret", 1, false)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return RouterDeps{
		Config:      config.Config{Env: "test", CORSAllowOrigin: []string{"http://localhost:5173"}},
		Tokens:      tokens,
		Health:      health.NewService(nil),
		RateLimiter: middleware.NewRateLimiter(func() time.Time { return now }),
		RateLimits: map[string]middleware.RateLimitRule{
			RateGroupDefault: {Rate: 1, Burst: 2},
		},
	}
}

func TestRouterHealthAndMetricsAuth(t *testing.T) {
	deps := testDeps(t)
	r := NewRouter(deps)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected metrics 401 without token, got %d", resp.Code)
	}

	token, err := deps.Tokens.(*auth.TokenService).Issue(auth.Identity{UserID: "u-1", Role: "doctor"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected metrics 200 with token, got %d", resp.Code)
	}
}

func TestRouterRateLimitsDefaultGroup(t *testing.T) {
	r := NewRouter(testDeps(t))
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	r := NewRouter(testDeps(t))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
