package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, e Entry) error {
	const query = `
INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, details, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var details any
	if len(e.Details) > 0 {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		details = raw
	}
	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		nullable(e.UserID),
		e.Action,
		nullable(e.EntityType),
		nullable(e.EntityID),
		details,
		nullable(e.IPAddress),
		nullable(e.UserAgent),
		e.CreatedAt,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		conds []string
		args  []any
	)
	if f.EntityType != "" {
		args = append(args, f.EntityType)
		conds = append(conds, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if f.EntityID != "" {
		args = append(args, f.EntityID)
		conds = append(conds, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	query := `
SELECT id, user_id, action, entity_type, entity_id, details, ip_address, user_agent, created_at
FROM audit_logs`
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf("\nLIMIT $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			e                                       Entry
			userID, entityType, entityID, ip, agent sql.NullString
			details                                 []byte
		)
		if err := rows.Scan(&e.ID, &userID, &e.Action, &entityType, &entityID, &details, &ip, &agent, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.UserID = userID.String
		e.EntityType = entityType.String
		e.EntityID = entityID.String
		e.IPAddress = ip.String
		e.UserAgent = agent.String
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
