package i

import "context"

// LeaderboardEntry is one ranked agent on the leaderboard.
type LeaderboardEntry struct {
	Agent string  `json:"agent"`
	Score float64 `json:"score"`
}

// Leaderboard accumulates match scores per agent and serves rankings.
type Leaderboard interface {
	// RecordScores adds the given scores to the agents' running totals,
	// atomically with respect to concurrent match completions.
	RecordScores(ctx context.Context, scores map[string]float64) error

	// Top returns the highest ranked agents, best first.
	Top(ctx context.Context, limit int64) ([]LeaderboardEntry, error)
}
