package analytics

// BadgeID names a badge in storage and on the wire.
type BadgeID string

const (
	BadgeSharpshooter  BadgeID = "sharpshooter"
	BadgeSpeedDemon    BadgeID = "speed_demon"
	BadgeUnstoppable   BadgeID = "unstoppable"
	BadgeCenturion     BadgeID = "centurion"
	BadgeTriggerHappy  BadgeID = "trigger_happy"
	BadgeVeteran       BadgeID = "veteran"
	BadgePerfectionist BadgeID = "perfectionist"
)

type Badge struct {
	ID          BadgeID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

const (
	streakAccuracy = 80
	streakLength   = 3
	veteranRounds  = 10
)

// rule awards a badge when its test passes. Rules are evaluated in table
// order, so the order here is the order badges are reported in.
type rule[T any] struct {
	badge Badge
	test  func(T) bool
}

var sessionRules = []rule[SessionStats]{
	{
		Badge{BadgeSharpshooter, "Sharpshooter", "90%+ accuracy over at least 20 shots", "🎯"},
		func(s SessionStats) bool { return s.Shots >= 20 && s.Accuracy >= 90 },
	},
	{
		Badge{BadgeSpeedDemon, "Speed Demon", "Average reaction time under 300ms", "⚡"},
		func(s SessionStats) bool { return s.Hits > 0 && s.AvgReaction > 0 && s.AvgReaction < 300 },
	},
	{
		Badge{BadgeCenturion, "Centurion", "100+ points in a single round", "💯"},
		func(s SessionStats) bool { return s.Score >= 100 },
	},
	{
		Badge{BadgeTriggerHappy, "Trigger Happy", "3+ shots per second average", "🖱️"},
		func(s SessionStats) bool { return s.ShotsPerSec >= 3 },
	},
	{
		Badge{BadgePerfectionist, "Perfectionist", "No misses over at least 10 shots", "✨"},
		func(s SessionStats) bool { return s.Shots >= 10 && s.Hits == s.Shots },
	},
}

var historyRules = []rule[Summary]{
	{
		Badge{BadgeUnstoppable, "Unstoppable", "3 rounds in a row at 80%+ accuracy", "🔥"},
		func(s Summary) bool { return s.AccuracyStreak >= streakLength },
	},
	{
		Badge{BadgeVeteran, "Veteran", "Played 10+ rounds", "🏅"},
		func(s Summary) bool { return s.Games >= veteranRounds },
	},
}

// AllBadges indexes every badge either rule table can award.
var AllBadges = index(sessionRules, historyRules)

func index(session []rule[SessionStats], history []rule[Summary]) map[BadgeID]Badge {
	m := make(map[BadgeID]Badge, len(session)+len(history))
	for _, r := range session {
		m[r.badge.ID] = r.badge
	}
	for _, r := range history {
		m[r.badge.ID] = r.badge
	}
	return m
}

func evaluate[T any](rules []rule[T], v T) []Badge {
	var earned []Badge
	for _, r := range rules {
		if r.test(v) {
			earned = append(earned, r.badge)
		}
	}
	return earned
}

// EvaluateSessionBadges checks which badges a single round earned.
func EvaluateSessionBadges(stats SessionStats) []Badge {
	return evaluate(sessionRules, stats)
}

// EvaluateHistoryBadges checks badges earned across the history window.
func EvaluateHistoryBadges(sum Summary) []Badge {
	return evaluate(historyRules, sum)
}
