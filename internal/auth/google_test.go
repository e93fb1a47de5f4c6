package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	sharedauth "menshealth-backend/internal/shared/auth"
	"menshealth-backend/internal/users"
)

type fakeGoogle struct {
	server   *httptest.Server
	email    string
	verified bool
}

func newFakeGoogle(t *testing.T, email string, verified bool) *fakeGoogle {
	t.Helper()
	f := &fakeGoogle{email: email, verified: verified}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "g-1",
			"email":          f.email,
			"verified_email": f.verified,
			"name":           "Dr. Test",
		})
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func newGoogleRouter(t *testing.T, fake *fakeGoogle) (*gin.Engine, *GoogleService, *sharedauth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := sharedauth.NewTokenService("test-secret", 1, false)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	userSvc := users.NewService(users.NewMemoryRepo(), tokens, sharedauth.NewPasswordHasher(bcrypt.MinCost))
	if _, err := userSvc.Create(context.Background(), users.CreateInput{Email: "doc@example.com", Password: "secret1", Name: "Dr. Test"}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	svc := NewGoogleService("client", "secret", "http://api.local/api/v1/auth/google/callback", "http://ui.local/login", userSvc)
	if fake != nil {
		svc.oauthConfig.Endpoint = oauth2.Endpoint{
			AuthURL:   fake.server.URL + "/auth",
			TokenURL:  fake.server.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}
		svc.userInfoURL = fake.server.URL + "/userinfo"
	}

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))
	return router, svc, tokens
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func startState(t *testing.T, router *gin.Engine) string {
	t.Helper()
	resp := get(router, "/api/v1/auth/google/start")
	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", resp.Code)
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in %s", loc)
	}
	return state
}

func TestGoogleCallbackIssuesTokenForKnownUser(t *testing.T) {
	router, _, tokens := newGoogleRouter(t, newFakeGoogle(t, "Doc@Example.com", true))
	state := startState(t, router)

	resp := get(router, "/api/v1/auth/google/callback?state="+state+"&code=good-code")
	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d: %s", resp.Code, resp.Body.String())
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Host != "ui.local" {
		t.Fatalf("unexpected redirect: %s", loc)
	}
	claims, err := tokens.Verify(loc.Query().Get("token"))
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Email != "doc@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// states are single use
	resp = get(router, "/api/v1/auth/google/callback?state="+state+"&code=good-code")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 on replay, got %d", resp.Code)
	}
}

func TestGoogleCallbackRejectsUnknownOrUnverifiedUser(t *testing.T) {
	cases := map[string]*fakeGoogle{
		"unknown":    newFakeGoogle(t, "stranger@example.com", true),
		"unverified": newFakeGoogle(t, "doc@example.com", false),
	}
	for name, fake := range cases {
		router, _, _ := newGoogleRouter(t, fake)
		state := startState(t, router)
		resp := get(router, "/api/v1/auth/google/callback?state="+state+"&code=good-code")
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s: expected status 403, got %d", name, resp.Code)
		}
	}
}

func TestGoogleCallbackBadCode(t *testing.T) {
	router, _, _ := newGoogleRouter(t, newFakeGoogle(t, "doc@example.com", true))
	state := startState(t, router)
	resp := get(router, "/api/v1/auth/google/callback?state="+state+"&code=bad")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestGoogleStartNotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("", "", "", "", nil)
	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))
	if resp := get(router, "/api/v1/auth/google/start"); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestStateStoreExpiry(t *testing.T) {
	store := newStateStore()
	now := time.Now()
	store.put("fresh", now.Add(time.Minute))
	store.put("stale", now.Add(-time.Minute))

	if store.consume("stale", now) {
		t.Fatalf("expected stale state to be rejected")
	}
	if !store.consume("fresh", now) {
		t.Fatalf("expected fresh state to be accepted")
	}
	if store.consume("fresh", now) {
		t.Fatalf("expected state to be single use")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://ui.local/login?next=%2Fpatients", "abc")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	if got != "http://ui.local/login?next=%2Fpatients&token=abc" {
		t.Fatalf("unexpected url: %s", got)
	}
	if _, err := appendToken("", "abc"); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
