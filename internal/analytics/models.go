package analytics

import "time"

// SessionStats is one finished round with the figures derived from its
// shots.
type SessionStats struct {
	SessionID    string    `json:"sessionId"`
	Score        int       `json:"score"`
	Hits         int       `json:"hits"`
	Shots        int       `json:"shots"`
	Accuracy     int       `json:"accuracy"`
	Duration     int       `json:"duration"`
	PlayedAt     time.Time `json:"playedAt"`
	ShotsPerSec  float64   `json:"shotsPerSec"`
	AvgReaction  float64   `json:"avgReactionMs"`
	BestReaction int       `json:"bestReactionMs"`
	Badges       []Badge   `json:"badges,omitempty"`
}

// Summary aggregates the sessions in the history window.
type Summary struct {
	Games           int     `json:"games"`
	TotalHits       int     `json:"totalHits"`
	TotalShots      int     `json:"totalShots"`
	OverallAccuracy int     `json:"overallAccuracy"`
	AverageAccuracy float64 `json:"averageAccuracy"`
	AverageScore    float64 `json:"averageScore"`
	BestScore       int     `json:"bestScore"`
	AccuracyStreak  int     `json:"accuracyStreak"`
	Badges          []Badge `json:"badges,omitempty"`
}

type LeaderboardEntry struct {
	SessionID string    `json:"sessionId"`
	PlayedAt  time.Time `json:"playedAt"`
	Value     int       `json:"value"`
	Rank      int       `json:"rank"`
}
