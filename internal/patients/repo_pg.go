package patients

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	patientColumns  = `id, first_name, last_name, date_of_birth, email, phone, patient_number, created_at, updated_at`
	uniqueViolation = "23505"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, p Patient) error {
	const query = `
INSERT INTO patients (` + patientColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.FirstName,
		p.LastName,
		nullable(p.DateOfBirth),
		nullable(p.Email),
		nullable(p.Phone),
		nullable(p.PatientNumber),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapErr(err)
}

func (r *PGRepo) Get(ctx context.Context, id string) (Patient, error) {
	const query = `
SELECT ` + patientColumns + `
FROM patients
WHERE id = $1`
	p, err := scanPatient(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Patient{}, ErrNotFound
	}
	return p, err
}

// List matches the search term case-insensitively with ILIKE.
func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]Patient, error) {
	q = q.Normalize()
	query := `
SELECT ` + patientColumns + `
FROM patients`
	args := []any{}
	if search := strings.TrimSpace(q.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		query += `
WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR patient_number ILIKE $1`
	}
	args = append(args, q.Limit, q.Offset)
	query += `
ORDER BY created_at DESC, id
LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, p Patient) error {
	const query = `
UPDATE patients
SET first_name = $2, last_name = $3, date_of_birth = $4, email = $5, phone = $6, patient_number = $7, updated_at = $8
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.FirstName,
		p.LastName,
		nullable(p.DateOfBirth),
		nullable(p.Email),
		nullable(p.Phone),
		nullable(p.PatientNumber),
		p.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	return requireOneRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (Patient, error) {
	var (
		p                                Patient
		dob, email, phone, patientNumber sql.NullString
	)
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&dob,
		&email,
		&phone,
		&patientNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return Patient{}, err
	}
	p.DateOfBirth = dob.String
	p.Email = email.String
	p.Phone = phone.String
	p.PatientNumber = patientNumber.String
	return p, nil
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

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateNumber
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
