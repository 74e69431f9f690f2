package db

import (
	"context"
	"fmt"
	"time"
)

type SessionRecord struct {
	ID       string
	Variant  string
	Score    int
	Hits     int
	Shots    int
	Accuracy int
	Duration int
	PlayedAt time.Time
}

func (d *DB) InsertSession(ctx context.Context, s SessionRecord) error {
	if s.Variant == "" {
		s.Variant = "plane"
	}
	_, err := d.conn.ExecContext(ctx, `
		INSERT INTO sessions (id, variant, score, hits, shots, accuracy, duration_s, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, s.ID, s.Variant, s.Score, s.Hits, s.Shots, s.Accuracy, s.Duration, s.PlayedAt)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// RecentSessions returns up to limit sessions, newest first.
func (d *DB) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT id, variant, score, hits, shots, accuracy, duration_s, played_at
		FROM sessions
		ORDER BY played_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var s SessionRecord
		if err := rows.Scan(&s.ID, &s.Variant, &s.Score, &s.Hits, &s.Shots, &s.Accuracy, &s.Duration, &s.PlayedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (d *DB) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	var s SessionRecord
	err := d.conn.QueryRowContext(ctx, `
		SELECT id, variant, score, hits, shots, accuracy, duration_s, played_at
		FROM sessions WHERE id = $1
	`, id).Scan(&s.ID, &s.Variant, &s.Score, &s.Hits, &s.Shots, &s.Accuracy, &s.Duration, &s.PlayedAt)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &s, nil
}

// BestScore is the highest score ever stored, 0 with no sessions.
func (d *DB) BestScore(ctx context.Context) (int, error) {
	var best int
	err := d.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(score), 0) FROM sessions`).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("getting best score: %w", err)
	}
	return best, nil
}
