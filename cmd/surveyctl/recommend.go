package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"menshealth-backend/internal/shared/schemas"
	"menshealth-backend/internal/surveys/recommendations"
	"menshealth-backend/internal/surveys/scoring"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate recommendations from a score map",
	Long:  "Validates a JSON score map ({\"B\": {\"score\": 12, \"maxScore\": 35}, ...}) against the scores schema and prints prioritized recommendations.",
	RunE:  runRecommend,
}

var recommendScoresPath string

func init() {
	recommendCmd.Flags().StringVarP(&recommendScoresPath, "scores", "s", "", "Scores JSON file, or - for stdin (required)")

	if err := recommendCmd.MarkFlagRequired("scores"); err != nil {
		panic(fmt.Sprintf("failed to mark scores flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	data, err := readInput(cmd, recommendScoresPath)
	if err != nil {
		return err
	}
	recs, err := recommendFromScores(data)
	if err != nil {
		return err
	}
	return writeJSON(cmd, recs)
}

func recommendFromScores(data []byte) ([]recommendations.Recommendation, error) {
	if err := schemas.Validate(schemas.Scores, data); err != nil {
		return nil, err
	}
	var scores scoring.ScoreMap
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("failed to parse scores: %w", err)
	}
	return recommendations.Generate(scores), nil
}
