package analytics

import (
	"context"
	"fmt"

	"aimlab/internal/db"
)

type Queries struct {
	DB *db.DB
}

func NewQueries(database *db.DB) *Queries {
	return &Queries{DB: database}
}

// GetSessionStats loads a session and its shot figures, and awards the
// badges it earned.
func (q *Queries) GetSessionStats(ctx context.Context, sessionID string) (*SessionStats, error) {
	rec, err := q.DB.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	stats := &SessionStats{
		SessionID: rec.ID,
		Score:     rec.Score,
		Hits:      rec.Hits,
		Shots:     rec.Shots,
		Accuracy:  rec.Accuracy,
		Duration:  rec.Duration,
		PlayedAt:  rec.PlayedAt,
	}

	err = q.DB.QueryRow(ctx, `
		SELECT
			COALESCE(AVG(reaction_ms) FILTER (WHERE hit AND reaction_ms > 0), 0) as avg_reaction,
			COALESCE(MIN(reaction_ms) FILTER (WHERE hit AND reaction_ms > 0), 0) as best_reaction
		FROM shot_events
		WHERE session_id = $1
	`, sessionID).Scan(&stats.AvgReaction, &stats.BestReaction)
	if err != nil {
		return nil, fmt.Errorf("getting shot stats: %w", err)
	}

	if stats.Duration > 0 {
		stats.ShotsPerSec = float64(stats.Shots) / float64(stats.Duration)
	}

	stats.Badges = EvaluateSessionBadges(*stats)
	ids := make([]string, len(stats.Badges))
	for i, b := range stats.Badges {
		ids[i] = string(b.ID)
	}
	if err := q.DB.AwardBadges(ctx, sessionID, ids...); err != nil {
		return nil, err
	}
	return stats, nil
}

func (q *Queries) GetLeaderboard(ctx context.Context, category string, limit int) ([]LeaderboardEntry, error) {
	var query string
	switch category {
	case "score":
		query = `
			SELECT id, played_at, score as value
			FROM sessions
			ORDER BY value DESC, played_at DESC
			LIMIT $1`
	case "accuracy":
		query = `
			SELECT id, played_at, accuracy as value
			FROM sessions
			WHERE shots > 0
			ORDER BY value DESC, played_at DESC
			LIMIT $1`
	case "hits":
		query = `
			SELECT id, played_at, hits as value
			FROM sessions
			ORDER BY value DESC, played_at DESC
			LIMIT $1`
	case "reaction":
		query = `
			SELECT s.id, s.played_at, MIN(se.reaction_ms) as value
			FROM sessions s
			JOIN shot_events se ON se.session_id = s.id AND se.hit AND se.reaction_ms > 0
			GROUP BY s.id, s.played_at
			ORDER BY value ASC
			LIMIT $1`
	default:
		return nil, fmt.Errorf("unknown leaderboard category: %s", category)
	}

	rows, err := q.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("getting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.SessionID, &e.PlayedAt, &e.Value); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
