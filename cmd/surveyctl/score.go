package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"menshealth-backend/internal/shared/schemas"
	"menshealth-backend/internal/surveys/recommendations"
	"menshealth-backend/internal/surveys/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answers file",
	Long:  "Validates a JSON answers document ({\"B1\": 4, ...}) against the answers schema and prints per-section scores.",
	RunE:  runScore,
}

var (
	scoreAnswersPath string
	scoreWithRecs    bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreAnswersPath, "answers", "a", "", "Answers JSON file, or - for stdin (required)")
	scoreCmd.Flags().BoolVar(&scoreWithRecs, "recommendations", false, "Include generated recommendations")

	if err := scoreCmd.MarkFlagRequired("answers"); err != nil {
		panic(fmt.Sprintf("failed to mark answers flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

type scoreReport struct {
	Scores          scoring.ScoreMap                 `json:"scores"`
	TotalScore      int                              `json:"totalScore"`
	MaxTotal        int                              `json:"maxTotal"`
	Recommendations []recommendations.Recommendation `json:"recommendations,omitempty"`
}

func runScore(cmd *cobra.Command, _ []string) error {
	data, err := readInput(cmd, scoreAnswersPath)
	if err != nil {
		return err
	}
	report, err := scoreAnswers(data, scoreWithRecs)
	if err != nil {
		return err
	}
	return writeJSON(cmd, report)
}

func scoreAnswers(data []byte, withRecs bool) (scoreReport, error) {
	if err := schemas.Validate(schemas.Answers, data); err != nil {
		return scoreReport{}, err
	}
	var answers scoring.AnswerMap
	if err := json.Unmarshal(data, &answers); err != nil {
		return scoreReport{}, fmt.Errorf("failed to parse answers: %w", err)
	}
	scores := scoring.ComputeScores(answers)
	report := scoreReport{
		Scores:     scores,
		TotalScore: scores.Total(),
		MaxTotal:   scores.MaxTotal(),
	}
	if withRecs {
		report.Recommendations = recommendations.Generate(scores)
	}
	return report, nil
}
