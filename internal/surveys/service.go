package surveys

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"menshealth-backend/internal/patients"
	"menshealth-backend/internal/shared/metrics"
	"menshealth-backend/internal/shared/telemetry"
	"menshealth-backend/internal/surveys/recommendations"
	"menshealth-backend/internal/surveys/scoring"
)

// PatientLookup resolves patients referenced by surveys.
type PatientLookup interface {
	Get(ctx context.Context, id string) (patients.Patient, error)
}

type Service struct {
	Repo     Repo
	Patients PatientLookup
	Now      func() time.Time
}

func NewService(repo Repo, patientLookup PatientLookup) *Service {
	return &Service{Repo: repo, Patients: patientLookup, Now: time.Now}
}

// Submit scores the answers and stores the survey. createdBy is empty for
// anonymous submissions.
func (s *Service) Submit(ctx context.Context, in SubmitInput, createdBy string) (Survey, error) {
	if len(in.Answers) == 0 || strings.TrimSpace(in.PatientID) == "" {
		return Survey{}, ErrInvalidInput
	}
	if _, err := s.Patients.Get(ctx, in.PatientID); err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			return Survey{}, ErrPatientNotFound
		}
		return Survey{}, err
	}

	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = DefaultLanguage
	}
	answers := scoring.AnswerMap(in.Answers)
	scores := scoring.ComputeScores(answers)

	survey := Survey{
		ID:          uuid.NewString(),
		PatientID:   in.PatientID,
		Language:    language,
		Answers:     answers,
		Scores:      scores,
		TotalScore:  scores.Total(),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedBy:   createdBy,
		CompletedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, survey); err != nil {
		return Survey{}, err
	}
	metrics.IncSurveysSubmitted()
	telemetry.Info("survey.submitted", map[string]any{
		"survey_id":   survey.ID,
		"patient_id":  survey.PatientID,
		"answers":     len(answers),
		"total_score": survey.TotalScore,
	})
	return survey, nil
}

// Preview scores answers and derives recommendations without persisting anything.
func (s *Service) Preview(answers map[string]int) Preview {
	scores := scoring.ComputeScores(scoring.AnswerMap(answers))
	return Preview{
		Scores:          scores,
		TotalScore:      scores.Total(),
		MaxTotal:        scores.MaxTotal(),
		Recommendations: recommendations.Generate(scores),
	}
}

func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	if strings.TrimSpace(id) == "" {
		return Detail{}, ErrInvalidInput
	}
	survey, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	p, err := s.patient(ctx, survey.PatientID)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Survey: survey, Patient: p}, nil
}

// List returns surveys newest first, each joined with its patient.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Detail, error) {
	items, err := s.Repo.List(ctx, q.Normalize())
	if err != nil {
		return nil, err
	}
	cache := map[string]*patients.Patient{}
	out := make([]Detail, 0, len(items))
	for _, survey := range items {
		p, ok := cache[survey.PatientID]
		if !ok {
			p, err = s.patient(ctx, survey.PatientID)
			if err != nil {
				return nil, err
			}
			cache[survey.PatientID] = p
		}
		out = append(out, Detail{Survey: survey, Patient: p})
	}
	return out, nil
}

// ByPatient returns a patient's surveys newest first.
func (s *Service) ByPatient(ctx context.Context, patientID string) ([]Survey, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByPatient(ctx, patientID)
}

// Trend returns a patient's surveys oldest first with per-section percentages
// rounded to one decimal. Sections missing from a stored score map read as 0.
func (s *Service) Trend(ctx context.Context, patientID string) ([]TrendPoint, error) {
	items, err := s.ByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CompletedAt.Before(items[j].CompletedAt)
	})
	out := make([]TrendPoint, 0, len(items))
	for _, survey := range items {
		point := TrendPoint{
			SurveyID:    survey.ID,
			CompletedAt: survey.CompletedAt,
			TotalScore:  survey.TotalScore,
			MaxTotal:    survey.Scores.MaxTotal(),
			Sections:    make(map[scoring.SectionKey]float64, len(scoring.Sections())),
		}
		for _, section := range scoring.Sections() {
			point.Sections[section.Key] = trendPercentage(survey.Scores[section.Key])
		}
		out = append(out, point)
	}
	return out, nil
}

func trendPercentage(ss scoring.SectionScore) float64 {
	if ss.MaxScore <= 0 {
		return 0
	}
	return math.Round(ss.Percentage()*10) / 10
}

func (s *Service) patient(ctx context.Context, id string) (*patients.Patient, error) {
	p, err := s.Patients.Get(ctx, id)
	if err != nil {
		if errors.Is(err, patients.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
