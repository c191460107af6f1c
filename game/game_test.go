package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-arena/game/maze"
	"github.com/stretchr/testify/assert"
)

// corridor builds a single-column maze of n cells, with the given weight on
// the passage below each cell.
func corridor(n int, weights ...int) map[int]map[int]int {
	desc := make(map[int]map[int]int, n)
	for i := 0; i < n-1; i++ {
		w := 1
		if i < len(weights) {
			w = weights[i]
		}
		if desc[i] == nil {
			desc[i] = make(map[int]int)
		}
		if desc[i+1] == nil {
			desc[i+1] = make(map[int]int)
		}
		desc[i][i+1] = w
		desc[i+1][i] = w
	}
	return desc
}

func alwaysSouth(*Snapshot) Action { return ActionSouth }

func TestConfigValidation(t *testing.T) {
	base := func() Config {
		return Config{
			FixedAdjacency: corridor(5),
			NbCheese:       1,
			Synchronous:    true,
			Players:        []PlayerConfig{{Name: "rat", Turn: alwaysSouth}},
		}
	}

	t.Run("rejects an empty roster", func(t *testing.T) {
		cfg := base()
		cfg.Players = nil
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrNoPlayers)
	})

	t.Run("rejects a missing turn function", func(t *testing.T) {
		cfg := base()
		cfg.Players = []PlayerConfig{{Name: "rat"}}
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrMissingTurnFunc)
	})

	t.Run("rejects duplicate player names", func(t *testing.T) {
		cfg := base()
		cfg.Players = append(cfg.Players, PlayerConfig{Name: "rat", Turn: alwaysSouth})
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrDuplicatePlayerName)
	})

	t.Run("rejects negative time budgets", func(t *testing.T) {
		cfg := base()
		cfg.TurnTime = -time.Second
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrNegativeTimeBudget)
	})

	t.Run("rejects a non-positive cheese count", func(t *testing.T) {
		cfg := base()
		cfg.NbCheese = 0
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrInvalidCheeseCount)
	})

	t.Run("rejects an unknown representation", func(t *testing.T) {
		cfg := base()
		cfg.Representation = "hologram"
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrUnknownRepresentation)
	})

	t.Run("rejects duplicate fixed cheese", func(t *testing.T) {
		cfg := base()
		cfg.FixedCheese = []int{4, 4}
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrDuplicateCheese)
	})

	t.Run("rejects cheese on a spawn cell", func(t *testing.T) {
		cfg := base()
		cfg.FixedCheese = []int{2} // center of a 5-cell corridor
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrUnplaceableCheese)
	})

	t.Run("rejects more cheese than free cells", func(t *testing.T) {
		cfg := base()
		cfg.NbCheese = 5
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrNotEnoughFreeCells)
	})

	t.Run("rejects an out-of-grid placement", func(t *testing.T) {
		cfg := base()
		cfg.Players[0].Placement = Placement{Mode: PlaceCell, Cell: 99}
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrInvalidPlacement)
	})

	t.Run("every pre-game failure wraps the configuration sentinel", func(t *testing.T) {
		cfg := base()
		cfg.NbCheese = 0
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, ErrConfiguration)

		cfg = base()
		cfg.FixedAdjacency = map[int]map[int]int{0: {1: 1}, 1: {0: 2}}
		_, err = New(cfg, nil)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorIs(t, err, maze.ErrAsymmetricWeights)
	})
}

func TestCorridorWalk(t *testing.T) {
	var sawFinalStats atomic.Bool
	cfg := Config{
		FixedAdjacency: corridor(5),
		FixedCheese:    []int{4},
		Synchronous:    true,
		Players: []PlayerConfig{{
			Name: "rat",
			Team: "rats",
			Turn: func(s *Snapshot) Action {
				// Snapshots are copies, scribbling on them must be harmless.
				s.Cheese = nil
				s.PlayerLocations["rat"] = -42
				return ActionSouth
			},
			Postprocessing: func(s *Snapshot) {
				sawFinalStats.Store(s.FinalStats != nil)
			},
		}},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	stats, err := g.Start()
	assert.NoError(t, err)
	assert.True(t, sawFinalStats.Load())

	rat := stats.Players["rat"]
	assert.Equal(t, 2, stats.Turns)
	assert.Equal(t, 1.0, rat.Score)
	assert.Equal(t, 2, rat.Moves[ActionSouth])
	assert.Len(t, rat.TurnDurations, 2)
}

func TestGridCorridorScenario(t *testing.T) {
	// A corridor through a 5x5 grid: east along the top row, then south down
	// the last column. Eight moves from cell 0 to the cheese at cell 24.
	desc := make(map[int]map[int]int)
	link := func(u, v int) {
		if desc[u] == nil {
			desc[u] = make(map[int]int)
		}
		if desc[v] == nil {
			desc[v] = make(map[int]int)
		}
		desc[u][v] = 1
		desc[v][u] = 1
	}
	for c := 0; c < 4; c++ {
		link(c, c+1)
	}
	for c := 4; c < 24; c += 5 {
		link(c, c+5)
	}

	cfg := Config{
		FixedAdjacency: desc,
		FixedCheese:    []int{24},
		Synchronous:    true,
		Players: []PlayerConfig{{
			Name:      "rat",
			Team:      "rats",
			Placement: Placement{Mode: PlaceCell, Cell: 0},
			Turn: func(s *Snapshot) Action {
				if s.PlayerLocations["rat"] < 4 {
					return ActionEast
				}
				return ActionSouth
			},
		}},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)
	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 5, g.Height())

	stats, err := g.Start()
	assert.NoError(t, err)
	assert.Equal(t, 8, stats.Turns)
	assert.Equal(t, 1.0, stats.Players["rat"].Score)
	assert.Equal(t, 4, stats.Players["rat"].Moves[ActionEast])
	assert.Equal(t, 4, stats.Players["rat"].Moves[ActionSouth])
}

func TestMudCrossing(t *testing.T) {
	cfg := Config{
		FixedAdjacency: corridor(2, 3),
		FixedCheese:    []int{1},
		Synchronous:    true,
		Players: []PlayerConfig{{
			Name:      "rat",
			Team:      "rats",
			Turn:      alwaysSouth,
			Placement: Placement{Mode: PlaceCell, Cell: 0},
		}},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	stats, err := g.Start()
	assert.NoError(t, err)

	rat := stats.Players["rat"]
	// A passage of weight 3 costs one decision plus two turns stuck in mud.
	assert.Equal(t, 3, stats.Turns)
	assert.Equal(t, 1, rat.Moves[ActionSouth])
	assert.Equal(t, 2, rat.Moves[ActionMud])
	assert.Equal(t, 1.0, rat.Score)
}

func TestWallHit(t *testing.T) {
	var calls atomic.Int32
	cfg := Config{
		FixedAdjacency: corridor(2),
		FixedCheese:    []int{1},
		Synchronous:    true,
		Players: []PlayerConfig{{
			Name:      "rat",
			Team:      "rats",
			Placement: Placement{Mode: PlaceCell, Cell: 0},
			Turn: func(*Snapshot) Action {
				if calls.Add(1) == 1 {
					return ActionEast // out of a single-column maze
				}
				return ActionSouth
			},
		}},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	stats, err := g.Start()
	assert.NoError(t, err)

	rat := stats.Players["rat"]
	assert.Equal(t, 1, rat.Moves[ActionWall])
	assert.Equal(t, 0, rat.Moves[ActionEast])
	assert.Equal(t, 1, rat.Moves[ActionSouth])
	assert.Equal(t, 2, stats.Turns)
}

func TestSharedCheeseSplit(t *testing.T) {
	player := func(name, team string) PlayerConfig {
		return PlayerConfig{
			Name:      name,
			Team:      team,
			Turn:      alwaysSouth,
			Placement: Placement{Mode: PlaceCell, Cell: 0},
		}
	}
	cfg := Config{
		FixedAdjacency: corridor(2),
		FixedCheese:    []int{1},
		Synchronous:    true,
		Players:        []PlayerConfig{player("rat", "a"), player("python", "b")},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	stats, err := g.Start()
	assert.NoError(t, err)

	assert.Equal(t, 1, stats.Turns)
	assert.Equal(t, 0.5, stats.Players["rat"].Score)
	assert.Equal(t, 0.5, stats.Players["python"].Score)
	assert.Equal(t, map[string]float64{"a": 0.5, "b": 0.5}, g.TeamScores())
}

func TestUnassailableLeadEndsTheGame(t *testing.T) {
	cfg := Config{
		FixedAdjacency: corridor(6),
		FixedCheese:    []int{1, 2, 5},
		Synchronous:    true,
		Players: []PlayerConfig{
			{
				Name:      "leader",
				Team:      "a",
				Placement: Placement{Mode: PlaceCell, Cell: 0},
				Turn:      alwaysSouth,
			},
			{
				Name:      "idler",
				Team:      "b",
				Placement: Placement{Mode: PlaceCell, Cell: 3},
				Turn:      func(*Snapshot) Action { return ActionNothing },
			},
		},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	var frames []Frame
	collected := make(chan struct{})
	go func() {
		for f := range g.Frames() {
			frames = append(frames, f)
		}
		close(collected)
	}()

	stats, err := g.Start()
	assert.NoError(t, err)
	<-collected

	// After the leader's second cheese the trailing team cannot catch up
	// even with everything left on the board, so the game ends early.
	assert.Equal(t, 2, stats.Turns)
	assert.Equal(t, 2.0, stats.Players["leader"].Score)
	assert.Equal(t, 0.0, stats.Players["idler"].Score)

	last := frames[len(frames)-1]
	assert.True(t, last.Done)
	assert.Len(t, last.Cheese, 1)
}

func TestSynchronousTurnPacing(t *testing.T) {
	cfg := Config{
		FixedAdjacency: corridor(3),
		FixedCheese:    []int{2},
		Synchronous:    true,
		TurnTime:       50 * time.Millisecond,
		Players: []PlayerConfig{{
			Name:      "rat",
			Team:      "rats",
			Placement: Placement{Mode: PlaceCell, Cell: 0},
			Turn:      alwaysSouth,
		}},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	begin := time.Now()
	stats, err := g.Start()
	assert.NoError(t, err)

	// Two decision turns, each held for the full turn budget even though
	// collection is blocking.
	assert.Equal(t, 2, stats.Turns)
	assert.GreaterOrEqual(t, time.Since(begin), 100*time.Millisecond)
}

func TestAgentFaults(t *testing.T) {
	t.Run("a panic aborts the game by default", func(t *testing.T) {
		cfg := Config{
			FixedAdjacency: corridor(2),
			FixedCheese:    []int{1},
			Synchronous:    true,
			Players: []PlayerConfig{{
				Name:      "rat",
				Team:      "rats",
				Placement: Placement{Mode: PlaceCell, Cell: 0},
				Turn:      func(*Snapshot) Action { panic("boom") },
			}},
		}

		g, err := New(cfg, nil)
		assert.NoError(t, err)

		stats, err := g.Start()
		assert.ErrorIs(t, err, ErrAgentFault)
		assert.Empty(t, stats.Players)
	})

	t.Run("an invalid action is a fault too", func(t *testing.T) {
		cfg := Config{
			FixedAdjacency: corridor(2),
			FixedCheese:    []int{1},
			Synchronous:    true,
			Players: []PlayerConfig{{
				Name:      "rat",
				Team:      "rats",
				Placement: Placement{Mode: PlaceCell, Cell: 0},
				Turn:      func(*Snapshot) Action { return Action("moonwalk") },
			}},
		}

		g, err := New(cfg, nil)
		assert.NoError(t, err)

		_, err = g.Start()
		assert.ErrorIs(t, err, ErrAgentFault)
	})

	t.Run("an abort releases the surviving units", func(t *testing.T) {
		var released atomic.Bool
		cfg := Config{
			FixedAdjacency: corridor(3),
			FixedCheese:    []int{2},
			Synchronous:    true,
			Players: []PlayerConfig{
				{
					Name:      "bad",
					Team:      "a",
					Placement: Placement{Mode: PlaceCell, Cell: 0},
					Turn:      func(*Snapshot) Action { panic("boom") },
				},
				{
					Name:           "good",
					Team:           "b",
					Placement:      Placement{Mode: PlaceCell, Cell: 0},
					Turn:           alwaysSouth,
					Postprocessing: func(*Snapshot) { released.Store(true) },
				},
			},
		}

		g, err := New(cfg, nil)
		assert.NoError(t, err)

		_, err = g.Start()
		assert.ErrorIs(t, err, ErrAgentFault)
		// The healthy unit got its final snapshot and ran down instead of
		// waiting at the start barrier forever.
		assert.True(t, released.Load())
	})

	t.Run("faulty players idle when errors are tolerated", func(t *testing.T) {
		cfg := Config{
			FixedAdjacency:  corridor(2),
			FixedCheese:     []int{1},
			Synchronous:     true,
			ContinueOnError: true,
			Players: []PlayerConfig{
				{
					Name:      "bad",
					Team:      "a",
					Placement: Placement{Mode: PlaceCell, Cell: 0},
					Turn:      func(*Snapshot) Action { panic("boom") },
				},
				{
					Name:      "good",
					Team:      "b",
					Placement: Placement{Mode: PlaceCell, Cell: 0},
					Turn:      alwaysSouth,
				},
			},
		}

		g, err := New(cfg, nil)
		assert.NoError(t, err)

		stats, err := g.Start()
		assert.NoError(t, err)
		assert.Equal(t, 1.0, stats.Players["good"].Score)
		assert.Equal(t, 0.0, stats.Players["bad"].Score)
		assert.Equal(t, 1, stats.Players["bad"].Moves[ActionError])
	})
}

func TestAsynchronousMiss(t *testing.T) {
	var calls atomic.Int32
	cfg := Config{
		FixedAdjacency: corridor(2),
		FixedCheese:    []int{1},
		TurnTime:       10 * time.Millisecond,
		Players: []PlayerConfig{{
			Name:      "rat",
			Team:      "rats",
			Placement: Placement{Mode: PlaceCell, Cell: 0},
			Turn: func(*Snapshot) Action {
				if calls.Add(1) == 1 {
					time.Sleep(80 * time.Millisecond)
				}
				return ActionSouth
			},
		}},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	done := make(chan struct{})
	var stats *Stats
	go func() {
		stats, err = g.Start()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("a slow player stalled the game")
	}

	assert.NoError(t, err)
	rat := stats.Players["rat"]
	// The overdue first answer is discarded, never applied to a later turn.
	assert.GreaterOrEqual(t, rat.Moves[ActionMiss], 1)
	assert.Equal(t, 1, rat.Moves[ActionSouth])
	assert.Equal(t, 1.0, rat.Score)
}

func TestHungUnitNeverStallsTheGame(t *testing.T) {
	block := make(chan struct{}) // never closed
	cfg := Config{
		FixedAdjacency: corridor(2),
		FixedCheese:    []int{1},
		TurnTime:       5 * time.Millisecond,
		Players: []PlayerConfig{
			{
				Name:      "hung",
				Team:      "a",
				Placement: Placement{Mode: PlaceCell, Cell: 0},
				Turn: func(*Snapshot) Action {
					<-block
					return ActionNothing
				},
			},
			{
				Name:      "good",
				Team:      "b",
				Placement: Placement{Mode: PlaceCell, Cell: 0},
				Turn:      alwaysSouth,
			},
		},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	done := make(chan struct{})
	var stats *Stats
	go func() {
		stats, err = g.Start()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("a hung player stalled the game")
	}

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Players["hung"].Moves[ActionMiss], 1)
	assert.Equal(t, 1.0, stats.Players["good"].Score)
}

func TestFrames(t *testing.T) {
	cfg := Config{
		FixedAdjacency: corridor(3, 1, 2),
		FixedCheese:    []int{2},
		Synchronous:    true,
		Players: []PlayerConfig{{
			Name:      "rat",
			Team:      "rats",
			Placement: Placement{Mode: PlaceCell, Cell: 0},
			Turn:      alwaysSouth,
		}},
	}

	g, err := New(cfg, nil)
	assert.NoError(t, err)

	var frames []Frame
	collected := make(chan struct{})
	go func() {
		for f := range g.Frames() {
			frames = append(frames, f)
		}
		close(collected)
	}()

	_, err = g.Start()
	assert.NoError(t, err)
	<-collected

	assert.NotEmpty(t, frames)
	last := frames[len(frames)-1]
	assert.True(t, last.Done)
	assert.Empty(t, last.Cheese)
	assert.Equal(t, 2, last.PlayerLocations["rat"])
	assert.Equal(t, 1.0, last.TeamScores["rats"])

	// While crossing the weight-2 passage, the frame reports the target cell
	// and the remaining count.
	var sawCrossing bool
	for _, f := range frames {
		if f.MudCounts["rat"] > 0 {
			sawCrossing = true
			assert.Equal(t, 2, f.PlayerLocations["rat"])
		}
	}
	assert.True(t, sawCrossing)
}
