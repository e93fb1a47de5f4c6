package surveyrecs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/audit"
	"menshealth-backend/internal/shared/auth"
	"menshealth-backend/internal/shared/server/middleware"
	"menshealth-backend/internal/surveyrecs"
	"menshealth-backend/internal/surveys"
	"menshealth-backend/internal/surveys/scoring"
)

type harness struct {
	router *gin.Engine
	audit  *audit.Service
	token  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService("test-secret", 1, false)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	token, err := tokens.Issue(auth.Identity{UserID: "doc-1", Email: "doc@example.com", Role: "doctor"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	surveyRepo := surveys.NewMemoryRepo()
	answers := scoring.AnswerMap{}
	for _, s := range scoring.Sections() {
		for i := 1; i <= s.QuestionCount; i++ {
			answers[string(s.Key)+strconv.Itoa(i)] = 5
		}
	}
	scores := scoring.ComputeScores(answers)
	if err := surveyRepo.Create(context.Background(), surveys.Survey{
		ID: "s-1", PatientID: "p-1", Answers: answers, Scores: scores, TotalScore: scores.Total(), CompletedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed survey: %v", err)
	}

	auditSvc := audit.NewService(audit.NewMemoryRepo())
	h := surveyrecs.NewHandler(surveyrecs.NewService(surveyrecs.NewMemoryRepo(), surveyRepo), auditSvc)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(tokens))
	h.RegisterRoutes(api)
	return &harness{router: router, audit: auditSvc, token: token}
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)
	return resp
}

func (h *harness) generate(t *testing.T) []surveyrecs.Record {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/api/v1/surveys/s-1/recommendations", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var recs []surveyrecs.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) == 0 {
		t.Fatalf("expected recommendations")
	}
	return recs
}

func (h *harness) actions(t *testing.T) []string {
	t.Helper()
	entries, err := h.audit.List(context.Background(), audit.Filter{})
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.UserID != "doc-1" {
			t.Fatalf("expected audit entry for doc-1, got %+v", e)
		}
		out = append(out, e.Action)
	}
	return out
}

func TestGenerateAndList(t *testing.T) {
	h := newHarness(t)
	recs := h.generate(t)
	if recs[0].Status != surveyrecs.StatusPending {
		t.Fatalf("expected pending, got %s", recs[0].Status)
	}

	resp := h.do(t, http.MethodGet, "/api/v1/surveys/s-1/recommendations", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var listed []surveyrecs.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != len(recs) || listed[0].ID != recs[0].ID {
		t.Fatalf("list does not match generated set")
	}
	if got := h.actions(t); len(got) != 1 || got[0] != audit.ActionRecommendationsGenerated {
		t.Fatalf("unexpected audit actions: %v", got)
	}
}

func TestGenerateUnknownSurvey(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, http.MethodPost, "/api/v1/surveys/missing/recommendations", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Survey not found") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestUpdateStatusValidatesAndAudits(t *testing.T) {
	h := newHarness(t)
	recs := h.generate(t)
	path := "/api/v1/recommendations/" + recs[0].ID + "/status"

	resp := h.do(t, http.MethodPatch, path, map[string]any{"status": "done"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"rule":"oneof"`) {
		t.Fatalf("expected oneof field error, got %s", resp.Body.String())
	}

	resp = h.do(t, http.MethodPatch, path, map[string]any{"status": "approved"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var rec surveyrecs.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Status != surveyrecs.StatusApproved || rec.ModifiedBy != "doc-1" || rec.ModifiedAt == nil {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got := h.actions(t)
	if len(got) != 2 || got[0] != audit.ActionRecommendationStatusChanged {
		t.Fatalf("unexpected audit actions: %v", got)
	}
}

func TestUpdateTextAndDelete(t *testing.T) {
	h := newHarness(t)
	recs := h.generate(t)
	path := "/api/v1/recommendations/" + recs[0].ID

	resp := h.do(t, http.MethodPatch, path, map[string]any{"recommendation": "Bitte Kontrolle in 3 Monaten."})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"status":"modified"`) {
		t.Fatalf("expected modified status, got %s", resp.Body.String())
	}

	resp = h.do(t, http.MethodDelete, path, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	resp = h.do(t, http.MethodDelete, path, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	got := h.actions(t)
	if len(got) != 3 || got[0] != audit.ActionRecommendationDeleted || got[1] != audit.ActionRecommendationTextModified {
		t.Fatalf("unexpected audit actions: %v", got)
	}
}

func TestRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/surveys/s-1/recommendations", nil)
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
