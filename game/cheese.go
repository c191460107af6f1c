package game

import (
	"fmt"
	"math/rand"
)

// distributeCheese places the requested number of cheese on maze cells that
// no player spawns on, sampling without replacement from a random stream
// dedicated to the distributor.
func (g *Game) distributeCheese(rng *rand.Rand) ([]int, error) {
	spawns := make(map[int]bool, len(g.order))
	for _, name := range g.order {
		spawns[g.players[name].location] = true
	}

	free := make([]int, 0, len(g.maze))
	for _, v := range g.maze.Vertices() {
		if !spawns[v] {
			free = append(free, v)
		}
	}

	// A fixed list takes priority over random distribution.
	if g.cfg.FixedCheese != nil {
		seen := make(map[int]bool, len(g.cfg.FixedCheese))
		for _, c := range g.cfg.FixedCheese {
			if seen[c] {
				return nil, fmt.Errorf("%w: cell %d", ErrDuplicateCheese, c)
			}
			seen[c] = true
			if _, reachable := g.maze[c]; !reachable || spawns[c] {
				return nil, fmt.Errorf("%w: cell %d", ErrUnplaceableCheese, c)
			}
		}
		return append([]int(nil), g.cfg.FixedCheese...), nil
	}

	if len(free) < g.cfg.NbCheese {
		return nil, fmt.Errorf("%w: %d free, %d requested", ErrNotEnoughFreeCells, len(free), g.cfg.NbCheese)
	}
	rng.Shuffle(len(free), func(i, j int) {
		free[i], free[j] = free[j], free[i]
	})
	return free[:g.cfg.NbCheese], nil
}
