package agents

import (
	"math/rand"

	"github.com/beka-birhanu/maze-arena/game"
)

// NewRandom builds an agent that moves to a uniformly random neighbor every
// turn, staying put only when the current cell has none.
func NewRandom(rng *rand.Rand) Agent {
	return Agent{
		Turn: func(s *game.Snapshot) game.Action {
			location := s.PlayerLocations[s.Name]
			neighbors := s.Maze.Neighbors(location)
			if len(neighbors) == 0 {
				return game.ActionNothing
			}
			return actionTo(location, neighbors[rng.Intn(len(neighbors))], s.Width)
		},
	}
}

// NewExplorer builds an agent that walks randomly but prefers cells it has
// not visited yet, which covers the maze much faster than a plain random walk.
func NewExplorer(rng *rand.Rand) Agent {
	visited := make(map[int]bool)
	return Agent{
		Preprocessing: func(s *game.Snapshot) {
			visited[s.PlayerLocations[s.Name]] = true
		},
		Turn: func(s *game.Snapshot) game.Action {
			location := s.PlayerLocations[s.Name]
			visited[location] = true
			neighbors := s.Maze.Neighbors(location)
			if len(neighbors) == 0 {
				return game.ActionNothing
			}
			var unvisited []int
			for _, n := range neighbors {
				if !visited[n] {
					unvisited = append(unvisited, n)
				}
			}
			candidates := neighbors
			if len(unvisited) > 0 {
				candidates = unvisited
			}
			return actionTo(location, candidates[rng.Intn(len(candidates))], s.Width)
		},
	}
}
