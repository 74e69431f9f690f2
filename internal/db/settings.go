package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoSettings is returned by LoadSettings before anything was saved.
var ErrNoSettings = errors.New("no saved settings")

// SaveSettings stores the settings document, replacing any previous one.
func (d *DB) SaveSettings(ctx context.Context, data []byte) error {
	_, err := d.conn.ExecContext(ctx, `
		INSERT INTO settings (id, data, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET data = $1, updated_at = now()
	`, data)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func (d *DB) LoadSettings(ctx context.Context) ([]byte, error) {
	var data []byte
	err := d.conn.QueryRowContext(ctx, `SELECT data FROM settings WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSettings
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return data, nil
}
