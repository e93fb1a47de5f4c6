package surveys

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

const surveyColumns = `id, patient_id, language, answers, scores, total_score, notes, created_by, completed_at`

// PGRepo implements Repo using Postgres. Answers and scores are JSONB.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, s Survey) error {
	const query = `
INSERT INTO surveys (` + surveyColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	scores, err := json.Marshal(s.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		s.ID,
		s.PatientID,
		s.Language,
		answers,
		scores,
		s.TotalScore,
		nullable(s.Notes),
		nullable(s.CreatedBy),
		s.CompletedAt,
	)
	return err
}

func (r *PGRepo) Get(ctx context.Context, id string) (Survey, error) {
	const query = `
SELECT ` + surveyColumns + `
FROM surveys
WHERE id = $1`
	s, err := scanSurvey(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Survey{}, ErrNotFound
	}
	return s, err
}

func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]Survey, error) {
	q = q.Normalize()
	if q.PatientID != "" {
		const query = `
SELECT ` + surveyColumns + `
FROM surveys
WHERE patient_id = $1
ORDER BY completed_at DESC, id
LIMIT $2 OFFSET $3`
		return r.query(ctx, query, q.PatientID, q.Limit, q.Offset)
	}
	const query = `
SELECT ` + surveyColumns + `
FROM surveys
ORDER BY completed_at DESC, id
LIMIT $1 OFFSET $2`
	return r.query(ctx, query, q.Limit, q.Offset)
}

func (r *PGRepo) ListByPatient(ctx context.Context, patientID string) ([]Survey, error) {
	const query = `
SELECT ` + surveyColumns + `
FROM surveys
WHERE patient_id = $1
ORDER BY completed_at DESC, id`
	return r.query(ctx, query, patientID)
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Survey, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Survey{}
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (Survey, error) {
	var (
		s               Survey
		answers, scores []byte
		total           sql.NullInt64
		notes, author   sql.NullString
	)
	if err := row.Scan(&s.ID, &s.PatientID, &s.Language, &answers, &scores, &total, &notes, &author, &s.CompletedAt); err != nil {
		return Survey{}, err
	}
	if err := json.Unmarshal(answers, &s.Answers); err != nil {
		return Survey{}, fmt.Errorf("decode answers for survey %s: %w", s.ID, err)
	}
	if err := json.Unmarshal(scores, &s.Scores); err != nil {
		return Survey{}, fmt.Errorf("decode scores for survey %s: %w", s.ID, err)
	}
	if total.Valid {
		s.TotalScore = int(total.Int64)
	} else {
		s.TotalScore = s.Scores.Total()
	}
	s.Notes = notes.String
	s.CreatedBy = author.String
	return s, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
