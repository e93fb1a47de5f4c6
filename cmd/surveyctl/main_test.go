package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menshealth-backend/internal/shared/config"
	"menshealth-backend/internal/shared/schemas"
	"menshealth-backend/internal/surveys/recommendations"
	"menshealth-backend/internal/surveys/scoring"
	"menshealth-backend/internal/users"
)

func TestScoreAnswers(t *testing.T) {
	report, err := scoreAnswers([]byte(`{"B1": 5, "B2": 4, "C1": 3}`), true)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Scores[scoring.SectionB].Score)
	assert.Equal(t, 3, report.Scores[scoring.SectionC].Score)
	assert.Equal(t, report.Scores.Total(), report.TotalScore)
	assert.Equal(t, report.Scores.MaxTotal(), report.MaxTotal)
	assert.Equal(t, recommendations.Generate(report.Scores), report.Recommendations)
}

func TestScoreAnswersRejectsInvalidDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "rating out of range", doc: `{"B1": 6}`},
		{name: "unknown key", doc: `{"Z1": 3}`},
		{name: "index past section", doc: `{"B1": 1, "B8": 1}`},
		{name: "index past long section", doc: `{"D13": 2}`},
		{name: "signed index", doc: `{"B+1": 1}`},
		{name: "empty", doc: `{}`},
		{name: "not an object", doc: `[1, 2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scoreAnswers([]byte(tt.doc), false)
			require.Error(t, err)
			var verr *schemas.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestScoreAnswersEveryQuestionStaysInRange(t *testing.T) {
	answers := map[string]int{}
	for _, section := range scoring.Sections() {
		for i := 1; i <= section.QuestionCount; i++ {
			answers[fmt.Sprintf("%s%d", section.Key, i)] = 1
		}
	}
	doc, err := json.Marshal(answers)
	require.NoError(t, err)

	report, err := scoreAnswers(doc, false)
	require.NoError(t, err)
	for _, section := range scoring.Sections() {
		got := report.Scores[section.Key]
		assert.LessOrEqual(t, got.Score, got.MaxScore, string(section.Key))
	}
}

func TestRecommendFromScores(t *testing.T) {
	recs, err := recommendFromScores([]byte(`{"C": {"score": 10, "maxScore": 30}, "J": {"score": 25, "maxScore": 25}}`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, scoring.SectionC, recs[0].Section)
	assert.Equal(t, recommendations.PriorityHigh, recs[0].Priority)

	_, err = recommendFromScores([]byte(`{"C": {"score": 10, "maxScore": 0}}`))
	assert.Error(t, err)
}

func TestScoreCommandWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"J1": 1, "J2": 1}`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"score", "--answers", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())

	var report scoreReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 10, report.Scores[scoring.SectionJ].Score)
	assert.Empty(t, report.Recommendations)
}

func TestCreateUser(t *testing.T) {
	repo := users.NewMemoryRepo()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	cfg := config.Config{JWTSecret: "test-secret", BcryptCost: 4}
	in := users.CreateInput{Email: "Admin@Example.com", Password: "secret1", Name: "Admin", Role: users.RoleAdmin}
	require.NoError(t, createUser(context.Background(), cmd, repo, cfg, in))

	var created users.User
	require.NoError(t, json.Unmarshal(out.Bytes(), &created))
	assert.Equal(t, "admin@example.com", created.Email)
	assert.Equal(t, users.RoleAdmin, created.Role)
	assert.NotContains(t, out.String(), "secret1")

	err := createUser(context.Background(), cmd, repo, cfg, in)
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
