package game

import (
	"fmt"
	"math"
	"math/rand"
)

// playerState is the live state of one registered player, mutated only by
// the evaluator between turns.
type playerState struct {
	name            string
	team            string
	location        int
	initialLocation int
	score           float64
	mud             MudState

	turn           TurnFunc
	preprocessing  PreprocessingFunc
	postprocessing PostprocessingFunc
}

// registerPlayer validates one player registration, places it in the maze
// and adds it to the roster. Each registration draws from its own random
// stream so placement stays reproducible regardless of registration order
// elsewhere.
func (g *Game) registerPlayer(cfg PlayerConfig, rng *rand.Rand) error {
	if _, taken := g.players[cfg.Name]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicatePlayerName, cfg.Name)
	}

	location, err := g.placePlayer(cfg, rng)
	if err != nil {
		return err
	}

	g.players[cfg.Name] = &playerState{
		name:            cfg.Name,
		team:            cfg.Team,
		location:        location,
		initialLocation: location,
		mud:             MudState{Target: NoTarget},
		turn:            cfg.Turn,
		preprocessing:   cfg.Preprocessing,
		postprocessing:  cfg.Postprocessing,
	}
	g.order = append(g.order, cfg.Name)
	if _, known := g.teams[cfg.Team]; !known {
		g.teamOrder = append(g.teamOrder, cfg.Team)
	}
	g.teams[cfg.Team] = append(g.teams[cfg.Team], cfg.Name)
	g.stats.Players[cfg.Name] = newPlayerStats()
	return nil
}

// placePlayer resolves the initial location of a player according to its
// placement mode.
func (g *Game) placePlayer(cfg PlayerConfig, rng *rand.Rand) (int, error) {
	switch cfg.Placement.Mode {
	case PlaceRandom:
		vertices := g.maze.Vertices()
		if len(vertices) == 0 {
			return 0, fmt.Errorf("%w: maze has no reachable cells", ErrInvalidPlacement)
		}
		return vertices[rng.Intn(len(vertices))], nil

	case PlaceSame:
		if len(g.order) == 0 {
			return 0, fmt.Errorf("%w: player %q cannot reuse a previous location, none registered yet", ErrInvalidPlacement, cfg.Name)
		}
		return g.players[g.order[len(g.order)-1]].location, nil

	case PlaceCenter, "":
		return (g.height/2)*g.width + g.width/2, nil

	case PlaceCell:
		cell := cfg.Placement.Cell
		if cell < 0 || cell >= g.width*g.height {
			return 0, fmt.Errorf("%w: cell %d for player %q", ErrInvalidPlacement, cell, cfg.Name)
		}
		if _, reachable := g.maze[cell]; reachable {
			return cell, nil
		}
		nearest := g.nearestCell(cell)
		g.logger.Warning(fmt.Sprintf("player %q cannot start at unreachable cell %d, starting at closest cell %d", cfg.Name, cell, nearest))
		return nearest, nil

	default:
		return 0, fmt.Errorf("%w: unknown placement mode %q", ErrInvalidPlacement, cfg.Placement.Mode)
	}
}

// nearestCell returns the maze cell closest to the given grid cell by
// Euclidean distance on grid coordinates.
func (g *Game) nearestCell(cell int) int {
	row, col := cell/g.width, cell%g.width
	best, bestDist := 0, math.Inf(1)
	for _, v := range g.maze.Vertices() {
		vRow, vCol := v/g.width, v%g.width
		dist := math.Hypot(float64(vRow-row), float64(vCol-col))
		if dist < bestDist {
			best, bestDist = v, dist
		}
	}
	return best
}
