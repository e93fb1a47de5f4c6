package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func serve(svc *Service) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	return resp
}

func TestHealthMemoryStorage(t *testing.T) {
	resp := serve(NewService(nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"storage":"memory"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestHealthDatabaseReachable(t *testing.T) {
	svc := &Service{DB: pingerFunc(func(context.Context) error { return nil }), Timeout: time.Second}
	resp := serve(svc)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"database":"ok"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	svc := &Service{DB: pingerFunc(func(context.Context) error { return errors.New("refused") }), Timeout: time.Second}
	resp := serve(svc)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"ok":false`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}
