// Package app holds the start-up wiring shared by the web, terminal and
// desktop front ends.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"aimlab/internal/config"
	"aimlab/internal/db"
	"aimlab/internal/history"
	"aimlab/internal/settings"
)

// OpenDatabase connects and migrates when a database is configured and
// returns the settings persisted there. Any failure is logged and the
// caller runs without a database on default settings.
func OpenDatabase(ctx context.Context, cfg config.Config) (*db.DB, settings.Settings) {
	if cfg.DatabaseURL == "" {
		log.Println("[DB] DATABASE_URL not set, running without database")
		return nil, settings.Defaults()
	}
	d, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		return nil, settings.Defaults()
	}
	if err := d.Migrate(ctx); err != nil {
		log.Printf("[DB] Migration failed: %v\n", err)
	}
	log.Println("[DB] Database connected and migrations applied")
	return d, LoadSettings(ctx, d)
}

// LoadSettings reads the persisted settings row, falling back to defaults
// when there is none or it no longer parses.
func LoadSettings(ctx context.Context, d *db.DB) settings.Settings {
	data, err := d.LoadSettings(ctx)
	if err != nil {
		if !errors.Is(err, db.ErrNoSettings) {
			log.Printf("[DB] LoadSettings error: %v\n", err)
		}
		return settings.Defaults()
	}
	return DecodeSettings(data)
}

// DecodeSettings overlays a stored document on the defaults and clamps
// anything out of range.
func DecodeSettings(data []byte) settings.Settings {
	cfg := settings.Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("[DB] stored settings unreadable: %v\n", err)
		return settings.Defaults()
	}
	return cfg.Clamp()
}

// NewHistory keeps rounds in the database when there is one, in memory
// otherwise.
func NewHistory(d *db.DB, cfg config.Config) history.Store {
	if d != nil {
		return history.NewPostgres(d, cfg.HistoryLimit, cfg.Variant)
	}
	return history.NewMemory(cfg.HistoryLimit)
}
