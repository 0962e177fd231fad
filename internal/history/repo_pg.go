package history

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, userID string, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
INSERT INTO outreach_history (id, user_id, recipient, subject, body, sent_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx, query,
			rec.ID, userID, rec.Recipient, rec.Subject, rec.Body, rec.SentAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PGRepo) List(ctx context.Context, userID string) ([]Record, error) {
	const query = `
SELECT id, recipient, subject, body, sent_at
FROM outreach_history
WHERE user_id = $1
ORDER BY sent_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Recipient, &rec.Subject, &rec.Body, &rec.SentAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *PGRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM outreach_history WHERE user_id = $1`, userID)
	return err
}

var _ Repo = (*PGRepo)(nil)
