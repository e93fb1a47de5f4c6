package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := testTokens(t)

	router := gin.New()
	router.Use(RequestID(), Logging(), Auth(tokens))
	router.GET("/api/v1/surveys/:id", func(c *gin.Context) {
		c.Set(SurveyIDKey, c.Param("id"))
		c.Set(PatientIDKey, "patient-1")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/surveys/survey-1", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, "doctor"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "user_id", "survey_id", "patient_id", "duration_ms", "status", "route"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["user_id"] != "user-1" {
		t.Fatalf("unexpected user_id: %v", payload["user_id"])
	}
	if payload["survey_id"] != "survey-1" {
		t.Fatalf("unexpected survey_id: %v", payload["survey_id"])
	}
	if payload["route"] != "/api/v1/surveys/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
}
