package game

import (
	"math/rand"
	"time"
)

// Representation selects which maze representation decision functions see.
type Representation string

// Supported public maze representations.
const (
	RepresentationDictionary Representation = "dictionary"
	RepresentationMatrix     Representation = "matrix"
)

// PlacementMode controls how a player's initial location is chosen.
type PlacementMode string

// Supported placement modes.
const (
	PlaceCenter PlacementMode = "center" // center of the grid (default)
	PlaceRandom PlacementMode = "random" // random maze cell
	PlaceSame   PlacementMode = "same"   // same cell as the previously registered player
	PlaceCell   PlacementMode = "cell"   // explicit cell index, snapped to the nearest maze cell
)

// Placement describes the initial location of a player.
type Placement struct {
	Mode PlacementMode
	Cell int // used only with PlaceCell
}

// PlayerConfig registers one player. Turn is required; the other functions
// are optional. Decision functions are plain function values so units stay
// independent of any shared mutable state.
type PlayerConfig struct {
	Name           string
	Turn           TurnFunc
	Preprocessing  PreprocessingFunc
	Postprocessing PostprocessingFunc
	Team           string
	Placement      Placement
}

// Config holds the full configuration of a game. All validation happens in
// New, before any unit starts.
type Config struct {
	// Random generation parameters, ignored when FixedAdjacency or
	// FixedMatrix is set.
	MazeWidth      int
	MazeHeight     int
	CellPercentage float64
	WallPercentage float64
	MudPercentage  float64
	MudRange       [2]int

	// Fixed maze descriptions; FixedAdjacency takes priority over FixedMatrix.
	FixedAdjacency map[int]map[int]int
	FixedMatrix    [][]int

	// Cheese configuration; FixedCheese takes priority over NbCheese.
	NbCheese    int
	FixedCheese []int

	// Representation handed to decision functions.
	Representation Representation

	// Time budgets. PreprocessingTime applies to turn 0, TurnTime to every
	// other turn. Both are guaranteed minimums, not hard deadlines.
	PreprocessingTime time.Duration
	TurnTime          time.Duration

	// Synchronous makes the scheduler wait for every unit each turn instead
	// of recording misses.
	Synchronous bool

	// ContinueOnError keeps the game running after an agent fault,
	// substituting "nothing" for the faulty unit.
	ContinueOnError bool

	// Seeds of the three independent random streams. A zero seed is replaced
	// by a randomly drawn one.
	SeedMaze    int64
	SeedCheese  int64
	SeedPlayers int64

	Players []PlayerConfig
}

// validate checks the configuration fail-fast, before any maze or unit is
// created.
func (c *Config) validate() error {
	if len(c.Players) == 0 {
		return ErrNoPlayers
	}
	names := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Turn == nil {
			return ErrMissingTurnFunc
		}
		if names[p.Name] {
			return ErrDuplicatePlayerName
		}
		names[p.Name] = true
	}
	if c.PreprocessingTime < 0 || c.TurnTime < 0 {
		return ErrNegativeTimeBudget
	}
	if c.FixedCheese == nil && c.NbCheese <= 0 {
		return ErrInvalidCheeseCount
	}
	switch c.Representation {
	case RepresentationDictionary, RepresentationMatrix, "":
	default:
		return ErrUnknownRepresentation
	}
	return nil
}

// resolveSeed returns the seed itself, or a randomly drawn one when unset.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return rand.Int63()
}
