package analytics

import (
	"aimlab/internal/gamedata"
)

// StatsFor derives a round's stats from its session record alone. Reaction
// figures need shot data and are left at zero.
func StatsFor(s gamedata.Session) SessionStats {
	stats := SessionStats{
		SessionID: s.ID,
		Score:     s.Score,
		Hits:      s.Hits,
		Shots:     s.Shots,
		Accuracy:  s.Accuracy,
		Duration:  s.Duration,
		PlayedAt:  s.Timestamp,
	}
	if s.Duration > 0 {
		stats.ShotsPerSec = float64(s.Shots) / float64(s.Duration)
	}
	stats.Badges = EvaluateSessionBadges(stats)
	return stats
}

// Summarize aggregates sessions given newest first, as history returns them.
// best is the all-time best score, which may be older than the window.
func Summarize(sessions []gamedata.Session, best int) Summary {
	sum := Summary{Games: len(sessions), BestScore: best}
	if len(sessions) == 0 {
		return sum
	}

	accSum, scoreSum := 0, 0
	streakOpen := true
	for _, s := range sessions {
		sum.TotalHits += s.Hits
		sum.TotalShots += s.Shots
		accSum += s.Accuracy
		scoreSum += s.Score
		if s.Score > sum.BestScore {
			sum.BestScore = s.Score
		}
		if streakOpen && s.Accuracy >= streakAccuracy {
			sum.AccuracyStreak++
		} else {
			streakOpen = false
		}
	}
	sum.OverallAccuracy = gamedata.Accuracy(sum.TotalHits, sum.TotalShots)
	sum.AverageAccuracy = float64(accSum) / float64(len(sessions))
	sum.AverageScore = float64(scoreSum) / float64(len(sessions))
	sum.Badges = EvaluateHistoryBadges(sum)
	return sum
}
