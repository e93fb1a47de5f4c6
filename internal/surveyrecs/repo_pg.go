package surveyrecs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"menshealth-backend/internal/shared/storage/db"
	"menshealth-backend/internal/surveys/recommendations"
	"menshealth-backend/internal/surveys/scoring"
)

const recordColumns = `id, survey_id, section, section_name, recommendation, priority, score, percentage, position, status, modified_by, modified_at, created_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) ReplaceForSurvey(ctx context.Context, surveyID string, recs []Record) error {
	const (
		deleteQuery = `DELETE FROM survey_recommendations WHERE survey_id = $1`
		insertQuery = `
INSERT INTO survey_recommendations (` + recordColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	)
	return db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteQuery, surveyID); err != nil {
			return fmt.Errorf("clear recommendations: %w", err)
		}
		for _, rec := range recs {
			_, err := tx.ExecContext(ctx, insertQuery,
				rec.ID,
				surveyID,
				string(rec.Section),
				rec.SectionName,
				rec.Recommendation,
				string(rec.Priority),
				rec.Score,
				rec.Percentage,
				rec.Position,
				string(rec.Status),
				nullable(rec.ModifiedBy),
				rec.ModifiedAt,
				rec.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert recommendation %s: %w", rec.Section, err)
			}
		}
		return nil
	})
}

func (r *PGRepo) ListBySurvey(ctx context.Context, surveyID string) ([]Record, error) {
	const query = `
SELECT ` + recordColumns + `
FROM survey_recommendations
WHERE survey_id = $1
ORDER BY position, id`
	rows, err := r.DB.QueryContext(ctx, query, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT ` + recordColumns + `
FROM survey_recommendations
WHERE id = $1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (r *PGRepo) Update(ctx context.Context, rec Record) error {
	const query = `
UPDATE survey_recommendations
SET recommendation = $2, status = $3, modified_by = $4, modified_at = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Recommendation,
		string(rec.Status),
		nullable(rec.ModifiedBy),
		rec.ModifiedAt,
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM survey_recommendations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec                      Record
		section, priority, state string
		modifiedBy               sql.NullString
		modifiedAt               sql.NullTime
	)
	err := row.Scan(
		&rec.ID,
		&rec.SurveyID,
		&section,
		&rec.SectionName,
		&rec.Recommendation,
		&priority,
		&rec.Score,
		&rec.Percentage,
		&rec.Position,
		&state,
		&modifiedBy,
		&modifiedAt,
		&rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	rec.Section = scoring.SectionKey(section)
	rec.Priority = recommendations.Priority(priority)
	rec.Status = Status(state)
	rec.ModifiedBy = modifiedBy.String
	if modifiedAt.Valid {
		t := modifiedAt.Time
		rec.ModifiedAt = &t
	}
	return rec, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
