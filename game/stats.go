package game

import "time"

// PlayerStats aggregates what a single player did over a full game.
type PlayerStats struct {
	Moves                 map[Action]int  `json:"moves" bson:"moves"`
	Score                 float64         `json:"score" bson:"score"`
	TurnDurations         []time.Duration `json:"turn_durations" bson:"turnDurations"`
	PreprocessingDuration time.Duration   `json:"preprocessing_duration" bson:"preprocessingDuration"`
}

// Stats holds the aggregated statistics of a finished game. An aborted game
// yields empty statistics.
type Stats struct {
	Players map[string]*PlayerStats `json:"players" bson:"players"`
	Turns   int                     `json:"turns" bson:"turns"`
}

// newPlayerStats returns zeroed statistics with every action counter present.
func newPlayerStats() *PlayerStats {
	moves := make(map[Action]int)
	for _, a := range []Action{ActionMud, ActionError, ActionMiss, ActionNothing, ActionNorth, ActionEast, ActionSouth, ActionWest, ActionWall} {
		moves[a] = 0
	}
	return &PlayerStats{Moves: moves, TurnDurations: []time.Duration{}}
}
