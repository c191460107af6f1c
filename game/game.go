// Package game runs maze matches: it generates or validates a maze, places
// players and cheese, and drives one goroutine-backed decision unit per
// player through synchronized turns until a team has won.
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/maze-arena/game/maze"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
)

// frameBuffer bounds the spectator frame channel; frames beyond it are
// dropped rather than slowing the scheduler.
const frameBuffer = 64

// Game is one maze match: the maze, the roster, the cheese and the scheduler
// driving the decision units. A Game is built by New and consumed by a single
// call to Start.
type Game struct {
	cfg    Config
	logger general_i.Logger

	maze   maze.Adjacency
	public maze.Graph
	width  int
	height int

	players map[string]*playerState
	order   []string
	teams   map[string][]string

	// teamOrder fixes the iteration order over teams, first registration first.
	teamOrder []string

	cheese []int
	turn   int
	done   bool
	stats  *Stats

	frames chan Frame
}

// New validates the configuration and builds a ready-to-start game: maze,
// player placement and cheese distribution all happen here, each on its own
// seeded random stream.
func New(cfg Config, logger general_i.Logger) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = noopLogger{}
	}

	g := &Game{
		cfg:     cfg,
		logger:  logger,
		players: make(map[string]*playerState, len(cfg.Players)),
		teams:   make(map[string][]string),
		stats:   &Stats{Players: make(map[string]*PlayerStats, len(cfg.Players))},
		frames:  make(chan Frame, frameBuffer),
	}

	var err error
	switch {
	case cfg.FixedAdjacency != nil:
		g.maze, g.width, g.height, err = maze.FromAdjacency(cfg.FixedAdjacency)
	case cfg.FixedMatrix != nil:
		g.maze, g.width, g.height, err = maze.FromMatrix(cfg.FixedMatrix)
	default:
		seed := resolveSeed(cfg.SeedMaze)
		logger.Info(fmt.Sprintf("generating %dx%d maze with seed %d", cfg.MazeWidth, cfg.MazeHeight, seed))
		g.width, g.height = cfg.MazeWidth, cfg.MazeHeight
		g.maze, err = maze.Generate(maze.GeneratorConfig{
			Width:          cfg.MazeWidth,
			Height:         cfg.MazeHeight,
			CellPercentage: cfg.CellPercentage,
			WallPercentage: cfg.WallPercentage,
			MudPercentage:  cfg.MudPercentage,
			MudRange:       cfg.MudRange,
			Rand:           rand.New(rand.NewSource(seed)),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	switch cfg.Representation {
	case RepresentationMatrix:
		g.public = g.maze.Matrix(g.width * g.height)
	default:
		g.public = g.maze
	}

	seedPlayers := resolveSeed(cfg.SeedPlayers)
	for i, p := range cfg.Players {
		if err := g.registerPlayer(p, rand.New(rand.NewSource(seedPlayers+int64(i)))); err != nil {
			return nil, err
		}
	}

	g.cheese, err = g.distributeCheese(rand.New(rand.NewSource(resolveSeed(cfg.SeedCheese))))
	if err != nil {
		return nil, err
	}

	return g, nil
}

// Maze returns the maze in the representation handed to decision functions.
func (g *Game) Maze() maze.Graph { return g.public }

// Width returns the maze width in cells.
func (g *Game) Width() int { return g.width }

// Height returns the maze height in cells.
func (g *Game) Height() int { return g.height }

// Frames returns the spectator channel. It is closed when the game ends.
func (g *Game) Frames() <-chan Frame { return g.frames }

// Start runs the match to completion and returns the aggregated statistics.
// On an agent fault with ContinueOnError disabled, it returns empty
// statistics and ErrAgentFault.
//
// Each turn, the scheduler dispatches per-player snapshots, releases every
// unit through the shared start barrier, waits out the turn budget, then
// collects one result per unit. A unit that misses its budget is marked
// lagging: a stand-in attends the barrier in its place and a drain notifier
// swallows its stale result, so the late answer is never applied to a turn it
// was not computed for. The unit is re-armed at the first dispatch after the
// drain completes.
func (g *Game) Start() (*Stats, error) {
	defer close(g.frames)

	start := newBarrier(len(g.order) + 1)
	resultLock := &sync.Mutex{}
	units := make(map[string]*unit, len(g.order))
	for _, name := range g.order {
		u := newUnit(g.players[name], start, resultLock, g.logger)
		units[name] = u
		go u.run()
	}

	ready := make(map[string]bool, len(g.order))
	drained := make(map[string]chan struct{}, len(g.order))
	for _, name := range g.order {
		ready[name] = true
		drained[name] = make(chan struct{}, 1)
	}

	g.publishFrame()

	for {
		finalPhase := g.done
		var final *Stats
		if finalPhase {
			final = g.stats
		}

		// Dispatch. A lagging unit is re-armed only here, once its stale
		// result has been drained, so the barrier counts exactly one
		// participant per unit every turn.
		for _, name := range g.order {
			u := units[name]
			if !ready[name] {
				select {
				case <-drained[name]:
					ready[name] = true
					u.turnEnd <- struct{}{}
				default:
				}
			}
			if ready[name] {
				u.in <- g.snapshotFor(name, final)
			} else {
				go start.Wait()
			}
		}
		start.Wait()

		// The budget is a pacing floor in both collection modes; only the
		// postprocessing dispatch runs unpaced.
		if !finalPhase {
			if g.turn == 0 {
				time.Sleep(g.cfg.PreprocessingTime)
			} else {
				time.Sleep(g.cfg.TurnTime)
			}
		}

		results := make(map[string]unitResult, len(g.order))
		if g.cfg.Synchronous || finalPhase {
			for _, name := range g.order {
				if !ready[name] {
					continue
				}
				results[name] = <-units[name].out
				units[name].turnEnd <- struct{}{}
			}
		} else {
			// Players crossing mud answer instantly, wait for them first.
			for _, name := range g.order {
				if ready[name] && g.players[name].mud.Crossing() {
					results[name] = <-units[name].out
					units[name].turnEnd <- struct{}{}
				}
			}
			// The lock pins every remaining unit on one side of the readiness
			// check: a result is either fully published here or drained later,
			// never half-observed.
			resultLock.Lock()
			for _, name := range g.order {
				if _, got := results[name]; got {
					continue
				}
				if !ready[name] {
					results[name] = unitResult{action: ActionMiss}
					continue
				}
				select {
				case res := <-units[name].out:
					units[name].turnEnd <- struct{}{}
					results[name] = res
				default:
					results[name] = unitResult{action: ActionMiss}
					ready[name] = false
					go drainStale(units[name], drained[name])
				}
			}
			resultLock.Unlock()
		}

		if !g.cfg.ContinueOnError {
			for _, name := range g.order {
				if results[name].action.isFault() {
					g.logger.Error(fmt.Sprintf("aborting game on turn %d: player %q faulted", g.turn, name))
					if !finalPhase {
						g.releaseUnits(units, ready, start)
					}
					return &Stats{Players: make(map[string]*PlayerStats)}, ErrAgentFault
				}
			}
		}

		if finalPhase {
			break
		}

		g.stats.Turns = g.turn
		submitted := make(map[string]Action, len(g.order))
		for _, name := range g.order {
			submitted[name] = results[name].action
		}
		effective := g.applyActions(submitted)
		g.recordTurn(results, effective)
		g.publishFrame()
	}

	for team, score := range g.TeamScores() {
		g.logger.Info(fmt.Sprintf("game over after %d turns, team %q scored %g", g.stats.Turns, team, score))
	}
	return g.stats, nil
}

// recordTurn folds one turn's results into the statistics. Preprocessing
// results only contribute their duration; a directional move that bounced is
// counted as a wall hit.
func (g *Game) recordTurn(results map[string]unitResult, effective map[string]Action) {
	for _, name := range g.order {
		res := results[name]
		st := g.stats.Players[name]
		switch res.action {
		case ActionPreprocessing, ActionPreprocessingError:
			if res.measured {
				st.PreprocessingDuration = res.duration
			}
		default:
			key := res.action
			if res.action.isMove() && effective[name] == ActionWall {
				key = ActionWall
			}
			st.Moves[key]++
			if res.measured {
				st.TurnDurations = append(st.TurnDurations, res.duration)
			}
		}
		st.Score = g.players[name].score
	}
}

// releaseUnits hands every responsive unit a final snapshot so its goroutine
// runs down and exits when the match aborts. Lagging units stay parked at
// their drain rendezvous and are abandoned; the postprocessing results are
// discarded.
func (g *Game) releaseUnits(units map[string]*unit, ready map[string]bool, start *barrier) {
	final := &Stats{Players: make(map[string]*PlayerStats)}
	for _, name := range g.order {
		if ready[name] {
			units[name].in <- g.snapshotFor(name, final)
		} else {
			go start.Wait()
		}
	}
	start.Wait()
	for _, name := range g.order {
		if ready[name] {
			<-units[name].out
			units[name].turnEnd <- struct{}{}
		}
	}
}

// drainStale consumes the overdue result of a lagging unit and flags it as
// re-armable. The stale action itself is discarded; the unit stays parked at
// its turn-end rendezvous until the scheduler re-arms it at a dispatch.
func drainStale(u *unit, drained chan struct{}) {
	<-u.out
	drained <- struct{}{}
}

// noopLogger keeps the engine usable without a logging backend.
type noopLogger struct{}

func (noopLogger) Info(string)    {}
func (noopLogger) Warning(string) {}
func (noopLogger) Error(string)   {}
