package recommendations

import (
	"sort"

	"menshealth-backend/internal/surveys/scoring"
)

var (
	iief5Priorities = [...]Priority{
		scoring.SeverityCritical:   PriorityHigh,
		scoring.SeverityConcerning: PriorityHigh,
		scoring.SeverityModerate:   PriorityMedium,
		scoring.SeverityGood:       PriorityLow,
		scoring.SeverityVeryGood:   PriorityLow,
	}
	percentagePriorities = [...]Priority{
		scoring.SeverityCritical:   PriorityHigh,
		scoring.SeverityConcerning: PriorityHigh,
		scoring.SeverityModerate:   PriorityMedium,
		scoring.SeverityGood:       PriorityLow,
	}
)

// Generate builds the ranked recommendation list for a score map. Sections
// scoring 80% or more are skipped, except the IIEF-5 section which always
// yields an entry. The result is ordered by priority, then by percentage
// ascending, then by section key.
//
// A zero MaxScore is not rejected: percentage sections then classify as very
// good and are skipped, while the IIEF-5 section is still emitted with a NaN
// or +Inf Percentage, which has no defined place in the ordering. Callers
// holding stored score maps check them before calling Generate.
func Generate(scores scoring.ScoreMap) []Recommendation {
	out := make([]Recommendation, 0, len(scores))
	for _, key := range sortedKeys(scores) {
		score := scores[key]
		text, priority, ok := recommendationFor(key, score)
		if !ok {
			continue
		}
		out = append(out, Recommendation{
			Section:        key,
			SectionName:    SectionName(key),
			Recommendation: text,
			Priority:       priority,
			Score:          score.Score,
			Percentage:     score.Percentage(),
		})
	}
	sortRecommendations(out)
	return out
}

func recommendationFor(key scoring.SectionKey, score scoring.SectionScore) (string, Priority, bool) {
	severity := scoring.Classify(score.Score, score.MaxScore, key.IIEF5())
	if key.IIEF5() {
		return iief5Texts[severity], iief5Priorities[severity], true
	}
	if severity == scoring.SeverityVeryGood {
		return "", "", false
	}
	return sectionText(key, severity), percentagePriorities[severity], true
}

func sortedKeys(scores scoring.ScoreMap) []scoring.SectionKey {
	keys := make([]scoring.SectionKey, 0, len(scores))
	for key := range scores {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortRecommendations(items []Recommendation) {
	sort.SliceStable(items, func(i, j int) bool {
		a := items[i]
		b := items[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		if a.Percentage != b.Percentage {
			return a.Percentage < b.Percentage
		}
		return a.Section < b.Section
	})
}
