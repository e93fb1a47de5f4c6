package recommendations

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menshealth-backend/internal/surveys/scoring"
)

func TestGenerateOrdersByPriorityThenPercentage(t *testing.T) {
	scores := scoring.ScoreMap{
		scoring.SectionD: {Score: 45, MaxScore: 100},
		scoring.SectionB: {Score: 15, MaxScore: 100},
	}

	recs := Generate(scores)

	require.Len(t, recs, 2)
	assert.Equal(t, scoring.SectionB, recs[0].Section)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, sectionTexts[scoring.SectionB][scoring.SeverityCritical], recs[0].Recommendation)
	assert.Equal(t, scoring.SectionD, recs[1].Section)
	assert.Equal(t, PriorityMedium, recs[1].Priority)
	assert.InDelta(t, 45.0, recs[1].Percentage, 1e-9)
	assert.Equal(t, 45, recs[1].Score)
	assert.Equal(t, "Hormonelle Gesundheit", recs[1].SectionName)
}

func TestGenerateSkipsHealthySections(t *testing.T) {
	scores := scoring.ScoreMap{
		scoring.SectionE: {Score: 24, MaxScore: 30},
		scoring.SectionF: {Score: 30, MaxScore: 30},
	}

	recs := Generate(scores)

	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestGenerateEmptyScoreMap(t *testing.T) {
	assert.Empty(t, Generate(scoring.ScoreMap{}))
	assert.Empty(t, Generate(nil))
}

func TestGenerateIIEF5Boundary(t *testing.T) {
	noED := Generate(scoring.ScoreMap{scoring.SectionC: {Score: 22, MaxScore: 30}})
	require.Len(t, noED, 1)
	assert.Equal(t, PriorityLow, noED[0].Priority)
	assert.Contains(t, noED[0].Recommendation, "Keine erektile Dysfunktion")

	mild := Generate(scoring.ScoreMap{scoring.SectionC: {Score: 21, MaxScore: 30}})
	require.Len(t, mild, 1)
	assert.Equal(t, PriorityLow, mild[0].Priority)
	assert.Contains(t, mild[0].Recommendation, "Leichte erektile Dysfunktion")
}

func TestGenerateIIEF5Bands(t *testing.T) {
	cases := []struct {
		score    int
		priority Priority
		prefix   string
	}{
		{score: 6, priority: PriorityHigh, prefix: "Schwere erektile Dysfunktion"},
		{score: 10, priority: PriorityHigh, prefix: "Moderate erektile Dysfunktion"},
		{score: 14, priority: PriorityMedium, prefix: "Leicht bis moderate erektile Dysfunktion"},
		{score: 19, priority: PriorityLow, prefix: "Leichte erektile Dysfunktion"},
		{score: 30, priority: PriorityLow, prefix: "Keine erektile Dysfunktion"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("score_%d", tc.score), func(t *testing.T) {
			recs := Generate(scoring.ScoreMap{scoring.SectionC: {Score: tc.score, MaxScore: 30}})
			require.Len(t, recs, 1)
			assert.Equal(t, tc.priority, recs[0].Priority)
			assert.Regexp(t, "^"+tc.prefix, recs[0].Recommendation)
			assert.Equal(t, "Sexuelle Gesundheit", recs[0].SectionName)
		})
	}
}

func TestGeneratePercentageTiers(t *testing.T) {
	cases := []struct {
		score    int
		priority Priority
		severity scoring.Severity
	}{
		{score: 19, priority: PriorityHigh, severity: scoring.SeverityCritical},
		{score: 20, priority: PriorityHigh, severity: scoring.SeverityConcerning},
		{score: 40, priority: PriorityMedium, severity: scoring.SeverityModerate},
		{score: 79, priority: PriorityLow, severity: scoring.SeverityGood},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("score_%d", tc.score), func(t *testing.T) {
			recs := Generate(scoring.ScoreMap{scoring.SectionJ: {Score: tc.score, MaxScore: 100}})
			require.Len(t, recs, 1)
			assert.Equal(t, tc.priority, recs[0].Priority)
			assert.Equal(t, sectionTexts[scoring.SectionJ][tc.severity], recs[0].Recommendation)
		})
	}

	assert.Empty(t, Generate(scoring.ScoreMap{scoring.SectionJ: {Score: 80, MaxScore: 100}}))
}

func TestGenerateFromStoredSurveyScores(t *testing.T) {
	scores := scoring.ScoreMap{
		scoring.SectionB: {Score: 35, MaxScore: 35, Interpretation: "Sehr gut"},
		scoring.SectionC: {Score: 6, MaxScore: 30, Interpretation: "Schwere erektile Dysfunktion"},
		scoring.SectionD: {Score: 60, MaxScore: 60, Interpretation: "Sehr gut"},
		scoring.SectionE: {Score: 30, MaxScore: 30, Interpretation: "Sehr gut"},
		scoring.SectionF: {Score: 30, MaxScore: 30, Interpretation: "Sehr gut"},
		scoring.SectionG: {Score: 25, MaxScore: 25, Interpretation: "Sehr gut"},
		scoring.SectionH: {Score: 25, MaxScore: 25, Interpretation: "Sehr gut"},
		scoring.SectionI: {Score: 30, MaxScore: 30, Interpretation: "Sehr gut"},
		scoring.SectionJ: {Score: 25, MaxScore: 25, Interpretation: "Sehr gut"},
	}

	recs := Generate(scores)

	require.Len(t, recs, 1)
	assert.Equal(t, scoring.SectionC, recs[0].Section)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.InDelta(t, 20.0, recs[0].Percentage, 1e-9)
}

func TestGenerateUnknownSectionFallsBack(t *testing.T) {
	recs := Generate(scoring.ScoreMap{"K": {Score: 1, MaxScore: 10}})

	require.Len(t, recs, 1)
	assert.Equal(t, "K", recs[0].SectionName)
	assert.Equal(t, fallbackText, recs[0].Recommendation)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
}

func TestGenerateTiesBreakOnSection(t *testing.T) {
	scores := scoring.ScoreMap{
		scoring.SectionI: {Score: 3, MaxScore: 30},
		scoring.SectionE: {Score: 3, MaxScore: 30},
		scoring.SectionF: {Score: 3, MaxScore: 30},
	}

	for i := 0; i < 20; i++ {
		recs := Generate(scores)
		require.Len(t, recs, 3)
		assert.Equal(t, []scoring.SectionKey{scoring.SectionE, scoring.SectionF, scoring.SectionI},
			[]scoring.SectionKey{recs[0].Section, recs[1].Section, recs[2].Section})
	}
}

func TestGenerateSortInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 300; i++ {
		scores := scoring.ScoreMap{}
		for _, s := range scoring.Sections() {
			if rng.Intn(4) == 0 {
				continue
			}
			scores[s.Key] = scoring.SectionScore{Score: rng.Intn(s.MaxScore() + 1), MaxScore: s.MaxScore()}
		}

		recs := Generate(scores)
		for j := 1; j < len(recs); j++ {
			a, b := recs[j-1], recs[j]
			ok := a.Priority.Rank() < b.Priority.Rank() ||
				(a.Priority.Rank() == b.Priority.Rank() && a.Percentage <= b.Percentage)
			require.True(t, ok, "entries %d and %d out of order: %+v %+v", j-1, j, a, b)
		}
		for _, rec := range recs {
			if rec.Section != scoring.SectionC {
				assert.Less(t, rec.Percentage, 80.0)
			}
		}
	}
}

func TestGenerateIsDeterministicForSameAnswers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	answers := scoring.AnswerMap{}
	for _, s := range scoring.Sections() {
		for q := 1; q <= s.QuestionCount; q++ {
			answers[fmt.Sprintf("%s%d", s.Key, q)] = rng.Intn(5) + 1
		}
	}

	first := Generate(scoring.ComputeScores(answers))
	second := Generate(scoring.ComputeScores(answers))

	assert.Equal(t, first, second)
}

func TestEveryPercentageSectionHasTexts(t *testing.T) {
	for _, s := range scoring.Sections() {
		_, named := sectionNames[s.Key]
		assert.True(t, named, "section %s has no display name", s.Key)
		if s.IIEF5() {
			continue
		}
		texts, ok := sectionTexts[s.Key]
		require.True(t, ok, "section %s has no texts", s.Key)
		for i, text := range texts {
			assert.NotEmpty(t, text, "section %s tier %d", s.Key, i)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority("urgent").Valid())
}

func TestGenerateZeroMaxScore(t *testing.T) {
	recs := Generate(scoring.ScoreMap{
		scoring.SectionB: {Score: 0, MaxScore: 0},
		scoring.SectionD: {Score: 12, MaxScore: 0},
	})
	assert.Empty(t, recs)

	recs = Generate(scoring.ScoreMap{scoring.SectionC: {Score: 5, MaxScore: 0}})
	require.Len(t, recs, 1)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.True(t, math.IsInf(recs[0].Percentage, 1))

	recs = Generate(scoring.ScoreMap{scoring.SectionC: {Score: 0, MaxScore: 0}})
	require.Len(t, recs, 1)
	assert.True(t, math.IsNaN(recs[0].Percentage))
}
