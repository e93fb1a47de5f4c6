package scoring

import "strings"

// AnswerMap maps question identifiers such as "B3" to a 1..5 rating.
type AnswerMap map[string]int

// SectionScore is the aggregate result for one section.
type SectionScore struct {
	Score          int    `json:"score"`
	MaxScore       int    `json:"maxScore"`
	Interpretation string `json:"interpretation"`
}

// Percentage returns the score as a percentage of the section maximum.
func (s SectionScore) Percentage() float64 {
	return Percentage(s.Score, s.MaxScore)
}

// ScoreMap holds one SectionScore per section key.
type ScoreMap map[SectionKey]SectionScore

// Total sums the scores of every section.
func (m ScoreMap) Total() int {
	total := 0
	for _, s := range m {
		total += s.Score
	}
	return total
}

// MaxTotal sums the maximum scores of every section.
func (m ScoreMap) MaxTotal() int {
	total := 0
	for _, s := range m {
		total += s.MaxScore
	}
	return total
}

// ComputeScores aggregates answers into one SectionScore per configured
// section. Ratings are not validated: answers whose key matches no section
// are ignored, missing questions simply contribute nothing, and out-of-range
// ratings flow straight into the totals.
func ComputeScores(answers AnswerMap) ScoreMap {
	scores := make(ScoreMap, len(sections))
	for _, section := range sections {
		scores[section.Key] = scoreSection(section, answers)
	}
	return scores
}

func scoreSection(section Section, answers AnswerMap) SectionScore {
	prefix := string(section.Key)
	sum := 0
	for questionID, value := range answers {
		if !strings.HasPrefix(questionID, prefix) {
			continue
		}
		if section.Inverse {
			sum += reverseRating(value)
		} else {
			sum += value
		}
	}
	maxScore := section.MaxScore()
	return SectionScore{
		Score:          sum,
		MaxScore:       maxScore,
		Interpretation: Interpretation(Classify(sum, maxScore, section.IIEF5()), section.IIEF5()),
	}
}

func reverseRating(value int) int {
	return likertPoints + 1 - value
}
