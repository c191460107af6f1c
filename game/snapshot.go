package game

import "github.com/beka-birhanu/maze-arena/game/maze"

// NoTarget marks a player that is not crossing mud.
const NoTarget = -1

// MudState describes a player's progress across a mud passage.
type MudState struct {
	Target int `json:"target"` // destination cell, or NoTarget when free
	Count  int `json:"count"`  // remaining turns before reaching the target
}

// Crossing reports whether the player is currently inside a mud passage.
func (m MudState) Crossing() bool {
	return m.Target != NoTarget
}

// Snapshot is the read-only copy of the game state handed to a decision
// function for one call. Every map is a per-player copy; the maze graph is
// created once at reset and never mutated by the engine.
type Snapshot struct {
	Maze            maze.Graph
	Width           int
	Height          int
	Name            string
	Teams           map[string][]string
	PlayerLocations map[string]int
	PlayerScores    map[string]float64
	PlayerMuds      map[string]MudState
	Cheese          []int
	PossibleActions []Action
	Turn            int

	// FinalStats is non-nil only on the final snapshot, when postprocessing
	// functions run.
	FinalStats *Stats
}

// TurnFunc decides the action of a player for one turn.
type TurnFunc func(s *Snapshot) Action

// PreprocessingFunc runs once before the first turn, within the
// preprocessing time budget.
type PreprocessingFunc func(s *Snapshot)

// PostprocessingFunc runs once after the game is over, receiving the final
// aggregated statistics.
type PostprocessingFunc func(s *Snapshot)

// snapshotFor builds the snapshot delivered to one player. Mutable state is
// copied so that no decision function can reach into live game state.
func (g *Game) snapshotFor(name string, final *Stats) *Snapshot {
	locations := make(map[string]int, len(g.order))
	scores := make(map[string]float64, len(g.order))
	muds := make(map[string]MudState, len(g.order))
	for _, player := range g.order {
		p := g.players[player]
		locations[player] = p.location
		scores[player] = p.score
		muds[player] = p.mud
	}

	teams := make(map[string][]string, len(g.teams))
	for team, members := range g.teams {
		teams[team] = append([]string(nil), members...)
	}

	return &Snapshot{
		Maze:            g.public,
		Width:           g.width,
		Height:          g.height,
		Name:            name,
		Teams:           teams,
		PlayerLocations: locations,
		PlayerScores:    scores,
		PlayerMuds:      muds,
		Cheese:          append([]int(nil), g.cheese...),
		PossibleActions: append([]Action(nil), MoveActions...),
		Turn:            g.turn,
		FinalStats:      final,
	}
}
