// Package domain holds the persistent models of the arena.
package domain

import (
	"sort"
	"time"

	"github.com/beka-birhanu/maze-arena/game"
	"github.com/google/uuid"
)

// MatchStatus is the lifecycle state of a match record.
type MatchStatus string

// Lifecycle states of a match.
const (
	StatusRunning  MatchStatus = "running"
	StatusFinished MatchStatus = "finished"
	StatusAborted  MatchStatus = "aborted"
)

// Match is the persistent record of one arena match.
type Match struct {
	ID         uuid.UUID           `bson:"_id" json:"id"`
	Preset     string              `bson:"preset" json:"preset"`
	Status     MatchStatus         `bson:"status" json:"status"`
	Teams      map[string][]string `bson:"teams" json:"teams"`
	Winners    []string            `bson:"winners" json:"winners"`
	TeamScores map[string]float64  `bson:"teamScores" json:"team_scores"`
	Stats      *game.Stats         `bson:"stats,omitempty" json:"stats,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"created_at"`
	FinishedAt time.Time           `bson:"finishedAt,omitempty" json:"finished_at,omitempty"`
}

// WinningTeams returns the teams holding the highest score, several on a tie.
func WinningTeams(scores map[string]float64) []string {
	best := []string{}
	bestScore := 0.0
	for team, score := range scores {
		switch {
		case len(best) == 0 || score > bestScore:
			best, bestScore = []string{team}, score
		case score == bestScore:
			best = append(best, team)
		}
	}
	sort.Strings(best)
	return best
}
