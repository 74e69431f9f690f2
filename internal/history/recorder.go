package history

import (
	"context"
	"fmt"

	"aimlab/internal/analytics"
	"aimlab/internal/db"
	"aimlab/internal/gamedata"
)

// Recorder persists a finished round: the session into the store, its
// buffered shots into the database, and the badges it earned.
type Recorder struct {
	Store Store
	DB    *db.DB // nil if no database configured
	Shots *ShotLog
}

// Record stores s and returns the badges the round earned. Without a
// database the badges come from the session record alone.
func (r *Recorder) Record(ctx context.Context, s gamedata.Session) ([]analytics.Badge, error) {
	if err := r.Store.Add(ctx, s); err != nil {
		return nil, err
	}
	if r.Shots != nil {
		if err := r.Shots.Flush(ctx, r.DB, s.ID); err != nil {
			return nil, fmt.Errorf("flushing shots for %s: %w", s.ID, err)
		}
	}
	if r.DB == nil {
		return analytics.StatsFor(s).Badges, nil
	}
	stats, err := analytics.NewQueries(r.DB).GetSessionStats(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("awarding badges for %s: %w", s.ID, err)
	}
	return stats.Badges, nil
}
