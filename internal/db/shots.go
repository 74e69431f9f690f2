package db

import (
	"context"
	"fmt"
	"time"
)

type ShotEvent struct {
	SessionID    string
	TargetID     int
	Hit          bool
	X, Y, Z      float64
	TargetRadius float64
	SpawnedAt    *time.Time
	FiredAt      time.Time
	ReactionMs   int
}

const insertShot = `
	INSERT INTO shot_events (session_id, target_id, hit, x, y, z, target_radius, spawned_at, fired_at, reaction_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func (d *DB) RecordShot(ctx context.Context, ev ShotEvent) error {
	_, err := d.conn.ExecContext(ctx, insertShot, ev.SessionID, ev.TargetID, ev.Hit, ev.X, ev.Y, ev.Z, ev.TargetRadius, ev.SpawnedAt, ev.FiredAt, ev.ReactionMs)
	if err != nil {
		return fmt.Errorf("recording shot: %w", err)
	}
	return nil
}

func (d *DB) BatchRecordShots(ctx context.Context, events []ShotEvent) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertShot)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx, ev.SessionID, ev.TargetID, ev.Hit, ev.X, ev.Y, ev.Z, ev.TargetRadius, ev.SpawnedAt, ev.FiredAt, ev.ReactionMs); err != nil {
			return fmt.Errorf("recording shot in batch: %w", err)
		}
	}

	return tx.Commit()
}
