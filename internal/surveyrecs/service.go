package surveyrecs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"menshealth-backend/internal/shared/metrics"
	"menshealth-backend/internal/shared/telemetry"
	"menshealth-backend/internal/surveys"
	"menshealth-backend/internal/surveys/recommendations"
	"menshealth-backend/internal/surveys/scoring"
)

// SurveyLookup loads stored surveys.
type SurveyLookup interface {
	Get(ctx context.Context, id string) (surveys.Survey, error)
}

type Service struct {
	Repo    Repo
	Surveys SurveyLookup
	Now     func() time.Time
}

func NewService(repo Repo, surveyLookup SurveyLookup) *Service {
	return &Service{Repo: repo, Surveys: surveyLookup, Now: time.Now}
}

// Generate derives recommendations from the survey's stored scores and
// replaces any earlier set. Every record starts out pending.
func (s *Service) Generate(ctx context.Context, surveyID string) ([]Record, error) {
	if strings.TrimSpace(surveyID) == "" {
		return nil, ErrInvalidInput
	}
	survey, err := s.Surveys.Get(ctx, surveyID)
	if err != nil {
		if errors.Is(err, surveys.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	if err := checkScores(survey.Scores); err != nil {
		return nil, err
	}

	start := time.Now()
	generated := recommendations.Generate(survey.Scores)
	metrics.ObserveGenerationDuration(time.Since(start))

	now := s.now()
	recs := make([]Record, 0, len(generated))
	for i, g := range generated {
		recs = append(recs, Record{
			ID:             uuid.NewString(),
			SurveyID:       surveyID,
			Section:        g.Section,
			SectionName:    g.SectionName,
			Recommendation: g.Recommendation,
			Priority:       g.Priority,
			Score:          g.Score,
			Percentage:     g.Percentage,
			Position:       i,
			Status:         StatusPending,
			CreatedAt:      now,
		})
	}
	if err := s.Repo.ReplaceForSurvey(ctx, surveyID, recs); err != nil {
		return nil, err
	}
	metrics.AddRecommendationsGenerated(len(recs))
	telemetry.Info("recommendations.generated", map[string]any{
		"survey_id": surveyID,
		"count":     len(recs),
	})
	return recs, nil
}

// checkScores rejects score maps whose sections cannot yield a percentage.
func checkScores(scores scoring.ScoreMap) error {
	if len(scores) == 0 {
		return fmt.Errorf("%w: no section scores", ErrInvalidScores)
	}
	for key, ss := range scores {
		if ss.MaxScore <= 0 {
			return fmt.Errorf("%w: section %s has maxScore %d", ErrInvalidScores, key, ss.MaxScore)
		}
		if ss.Score < 0 {
			return fmt.Errorf("%w: section %s has negative score", ErrInvalidScores, key)
		}
	}
	return nil
}

func (s *Service) ListBySurvey(ctx context.Context, surveyID string) ([]Record, error) {
	if strings.TrimSpace(surveyID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListBySurvey(ctx, surveyID)
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, id)
}

// UpdateStatus sets the review status and, when given, the text. It returns
// the record before and after the change.
func (s *Service) UpdateStatus(ctx context.Context, id string, in StatusInput, userID string) (Record, Record, error) {
	if !in.Status.Valid() {
		return Record{}, Record{}, ErrInvalidInput
	}
	var text string
	if in.Recommendation != nil {
		text = strings.TrimSpace(*in.Recommendation)
		if text == "" {
			return Record{}, Record{}, ErrInvalidInput
		}
	}
	before, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, Record{}, err
	}
	after := before
	after.Status = in.Status
	if text != "" {
		after.Recommendation = text
	}
	if err := s.save(ctx, &after, userID); err != nil {
		return Record{}, Record{}, err
	}
	return before, after, nil
}

// UpdateText replaces the text and marks the record modified.
func (s *Service) UpdateText(ctx context.Context, id, text, userID string) (Record, Record, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Record{}, Record{}, ErrInvalidInput
	}
	before, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, Record{}, err
	}
	after := before
	after.Recommendation = text
	after.Status = StatusModified
	if err := s.save(ctx, &after, userID); err != nil {
		return Record{}, Record{}, err
	}
	return before, after, nil
}

// Delete removes the record and returns it.
func (s *Service) Delete(ctx context.Context, id string) (Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) save(ctx context.Context, rec *Record, userID string) error {
	now := s.now()
	rec.ModifiedBy = userID
	rec.ModifiedAt = &now
	if err := s.Repo.Update(ctx, *rec); err != nil {
		return err
	}
	metrics.IncRecommendationReviews()
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
