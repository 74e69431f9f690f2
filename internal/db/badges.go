package db

import (
	"context"
	"fmt"
)

// AwardBadges records every badge in ids against a session in one
// transaction. Badges the session already holds are left alone.
func (d *DB) AwardBadges(ctx context.Context, sessionID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("awarding badges: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO session_badges (session_id, badge_id) VALUES ($1, $2)
		ON CONFLICT (session_id, badge_id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("preparing badge insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, sessionID, id); err != nil {
			return fmt.Errorf("awarding badge %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// SessionBadges lists the badge ids a session holds, oldest award first.
func (d *DB) SessionBadges(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT badge_id FROM session_badges WHERE session_id = $1 ORDER BY awarded_at, badge_id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing badges: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning badge: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
