package history

import (
	"context"
	"fmt"

	"aimlab/internal/db"
	"aimlab/internal/gamedata"
)

// Postgres stores every session; Recent only reads back the newest limit.
// Keeping the full table is what lets Best outlive the history window.
type Postgres struct {
	DB      *db.DB
	Limit   int
	Variant string
}

func NewPostgres(database *db.DB, limit int, variant string) *Postgres {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Postgres{DB: database, Limit: limit, Variant: variant}
}

func (p *Postgres) Add(ctx context.Context, s gamedata.Session) error {
	err := p.DB.InsertSession(ctx, db.SessionRecord{
		ID:       s.ID,
		Variant:  p.Variant,
		Score:    s.Score,
		Hits:     s.Hits,
		Shots:    s.Shots,
		Accuracy: s.Accuracy,
		Duration: s.Duration,
		PlayedAt: s.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("storing session %s: %w", s.ID, err)
	}
	return nil
}

func (p *Postgres) Recent(ctx context.Context) ([]gamedata.Session, error) {
	records, err := p.DB.RecentSessions(ctx, p.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]gamedata.Session, 0, len(records))
	for _, r := range records {
		out = append(out, gamedata.Session{
			ID:        r.ID,
			Score:     r.Score,
			Hits:      r.Hits,
			Shots:     r.Shots,
			Accuracy:  r.Accuracy,
			Duration:  r.Duration,
			Timestamp: r.PlayedAt,
		})
	}
	return out, nil
}

func (p *Postgres) Best(ctx context.Context) (int, error) {
	return p.DB.BestScore(ctx)
}
